package snippet

import (
	"fmt"

	"github.com/chazu/verdict/loader"
	"github.com/chazu/verdict/relation"
)

// ViolationError reports a relationship assertion that failed against two
// already-loaded classes. Offender is the loaded class to name in the
// verification diagnostic (always the parent side).
type ViolationError struct {
	Child    string
	Parent   string
	Offender loader.Class
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	return fmt.Sprintf("snippet: class %s is not a subtype of %s", e.Child, e.Parent)
}

// Process resolves every assertion in pairs against the loaded-class view.
// Pairs are independent of each other and may be checked in any order:
//
//   - parent not loaded: defer to the relationship store
//   - parent loaded and an interface: trivially satisfied
//   - child not loaded: defer to the relationship store
//   - both loaded: check the hierarchy predicate; a failure aborts the
//     pass immediately and the remaining pairs are not evaluated
//
// Deferral does not distinguish which side was unresolved; the store
// re-checks once the classes load. Returns a *ViolationError on the first
// failed check, nil otherwise.
func Process(pairs []NamePair, view loader.View, store *relation.Store) error {
	for _, p := range pairs {
		parent := view.Loaded(p.Parent)
		if parent == nil {
			store.Record(p.Child, p.Parent)
			continue
		}
		if parent.IsInterface() {
			// Interfaces are always acceptable supertypes; don't record.
			continue
		}

		child := view.Loaded(p.Child)
		if child == nil {
			store.Record(p.Child, p.Parent)
			continue
		}

		if !view.SameOrSuperclassOf(parent, child) {
			return &ViolationError{Child: p.Child, Parent: p.Parent, Offender: parent}
		}
	}
	return nil
}
