package snippet

import (
	"errors"
	"testing"

	"github.com/chazu/verdict/loader"
	"github.com/chazu/verdict/relation"
)

func newStore() *relation.Store {
	return relation.NewStore(loader.CategoryCustom)
}

func TestProcess_BothLoadedValidRelationship(t *testing.T) {
	r := loader.NewRegistry()
	object := r.DefineClass("java/lang/Object", nil)
	base := r.DefineClass("com/example/Base", object)
	r.DefineClass("com/example/App", base)

	store := newStore()
	pairs := []NamePair{{Child: "com/example/App", Parent: "com/example/Base"}}

	if err := Process(pairs, r, store); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}

func TestProcess_BothLoadedInvalidRelationship(t *testing.T) {
	r := loader.NewRegistry()
	object := r.DefineClass("java/lang/Object", nil)
	base := r.DefineClass("com/example/Base", object)
	r.DefineClass("com/example/App", object) // not a subclass of Base

	store := newStore()
	pairs := []NamePair{{Child: "com/example/App", Parent: "com/example/Base"}}

	err := Process(pairs, r, store)
	var verr *ViolationError
	if !errors.As(err, &verr) {
		t.Fatalf("Process = %v, want *ViolationError", err)
	}
	if verr.Offender != base {
		t.Errorf("Offender = %v, want the parent class", verr.Offender)
	}
}

// The first violation aborts processing; later pairs are not evaluated.
func TestProcess_FailFast(t *testing.T) {
	r := loader.NewRegistry()
	object := r.DefineClass("java/lang/Object", nil)
	r.DefineClass("com/example/Base", object)
	r.DefineClass("com/example/App", object)

	store := newStore()
	pairs := []NamePair{
		{Child: "com/example/App", Parent: "com/example/Base"}, // fails
		{Child: "com/example/Later", Parent: "com/example/Unloaded"},
	}

	if err := Process(pairs, r, store); err == nil {
		t.Fatal("Process should fail on the first pair")
	}
	// The second pair would have been deferred; fail-fast means it wasn't.
	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}

func TestProcess_DefersWhenParentUnloaded(t *testing.T) {
	r := loader.NewRegistry()
	store := newStore()
	pairs := []NamePair{{Child: "com/example/App", Parent: "com/example/Base"}}

	if err := Process(pairs, r, store); err != nil {
		t.Fatalf("Process: %v", err)
	}
	parents, _, ok := store.Pending("com/example/App")
	if !ok {
		t.Fatal("expected a pending entry for the child")
	}
	if len(parents) != 1 || parents[0] != "com/example/Base" {
		t.Errorf("pending parents = %v", parents)
	}
}

func TestProcess_DefersWhenChildUnloaded(t *testing.T) {
	r := loader.NewRegistry()
	object := r.DefineClass("java/lang/Object", nil)
	r.DefineClass("com/example/Base", object)

	store := newStore()
	pairs := []NamePair{{Child: "com/example/App", Parent: "com/example/Base"}}

	if err := Process(pairs, r, store); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if _, _, ok := store.Pending("com/example/App"); !ok {
		t.Fatal("expected a pending entry for the unloaded child")
	}
}

// A loaded interface parent always satisfies the assertion: no deferral,
// no failure, no store entry, regardless of the hierarchy predicate.
func TestProcess_InterfaceParentIsPermissive(t *testing.T) {
	r := loader.NewRegistry()
	r.DefineInterface("java/io/Serializable")

	store := newStore()
	pairs := []NamePair{
		// Child isn't even loaded.
		{Child: "com/example/App", Parent: "java/io/Serializable"},
	}

	if err := Process(pairs, r, store); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}

func TestProcess_InterfaceParentWithUnrelatedLoadedChild(t *testing.T) {
	r := loader.NewRegistry()
	object := r.DefineClass("java/lang/Object", nil)
	r.DefineClass("com/example/App", object)
	r.DefineInterface("com/example/Marker")

	store := newStore()
	pairs := []NamePair{{Child: "com/example/App", Parent: "com/example/Marker"}}

	if err := Process(pairs, r, store); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}
