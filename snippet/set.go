// Package snippet records tentative class-relationship assertions made
// while verifying one class, resolves them against the loaded-class view,
// and encodes unresolved sets into position-independent blobs for the
// shared cache.
package snippet

import "github.com/chazu/verdict/names"

// Pair is one relationship assertion: child must be a subtype of (or the
// same as) parent. Indices refer to the set's name table; child and
// parent are not interchangeable.
type Pair struct {
	Child  names.Index
	Parent names.Index
}

// NamePair is a relationship assertion with the names resolved, the form
// consumed by Process and produced by Decode.
type NamePair struct {
	Child  string
	Parent string
}

// Set is the deduplicated snippet collection for one verification pass.
// Like the name table it borrows, it is pass-local and unsynchronized.
type Set struct {
	table *names.Table
	seen  map[Pair]struct{}
	order []Pair
}

// NewSet creates an empty set over the given name table.
func NewSet(table *names.Table) *Set {
	return &Set{table: table}
}

// Record adds the (child, parent) pair if it is not already present.
// Returns whether the pair was newly added.
func (s *Set) Record(child, parent names.Index) bool {
	if s.seen == nil {
		s.seen = make(map[Pair]struct{})
	}
	p := Pair{Child: child, Parent: parent}
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.order = append(s.order, p)
	return true
}

// Count returns the number of distinct pairs recorded.
func (s *Set) Count() int {
	return len(s.order)
}

// Names returns the set's name table.
func (s *Set) Names() *names.Table {
	return s.table
}

// NamePairs resolves every recorded pair to class-name strings, in
// recording order.
func (s *Set) NamePairs() []NamePair {
	pairs := make([]NamePair, len(s.order))
	for i, p := range s.order {
		pairs[i] = NamePair{
			Child:  s.table.Name(p.Child),
			Parent: s.table.Name(p.Parent),
		}
	}
	return pairs
}
