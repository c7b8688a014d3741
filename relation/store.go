// Package relation keeps the per-classloader table of pending class
// relationships: for each child class name, the parent obligations that
// could not be checked yet because one side was not loaded. Entries live
// from the first deferral until the child validates successfully, or
// until the owning classloader is destroyed.
package relation

import (
	"sync"

	"github.com/chazu/verdict/loader"
)

// Flags records shortcut obligations on an entry, replacing graph nodes.
type Flags uint8

const (
	// MustBeInterface marks a name that, once loaded, must turn out to be
	// an interface. Set when an already-validated child accepted this name
	// provisionally as an unloaded parent.
	MustBeInterface Flags = 1 << iota

	// ParentIsThrowable marks that the child must be a subtype of
	// java/lang/Throwable. Throwable never gets an explicit parent node.
	ParentIsThrowable
)

// entry holds the pending obligations for one child class name.
// Parents are kept sorted by non-decreasing name length with no
// duplicates; the ordering only speeds up the duplicate check during
// insertion and carries no semantic meaning.
type entry struct {
	name  string
	head  nodeRef
	flags Flags
}

// Store is the relationship table for one classloader. All mutation runs
// under a single mutex; verification threads for distinct classes may
// record and validate concurrently under the same loader.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	nodes   *arena
	minPool int
}

// NewStore creates a store for a loader of the given category. The table
// and node pool themselves are allocated lazily on the first Record.
func NewStore(category loader.Category) *Store {
	return &Store{minPool: category.PoolMinimum()}
}

// NewStoreWithPoolMinimum creates a store with an explicit node-pool
// minimum, overriding the category heuristic.
func NewStoreWithPoolMinimum(min int) *Store {
	if min < 1 {
		min = 1
	}
	return &Store{minPool: min}
}

// Record registers a pending relationship: child must be a subtype of (or
// the same as) parent once both are loaded. Recording the same pair again
// is a no-op. If parent is java/lang/Throwable, the entry's
// ParentIsThrowable flag is set instead of adding a node.
func (s *Store) Record(childName, parentName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findOrCreateLocked(childName)

	if parentName == loader.ThrowableName {
		e.flags |= ParentIsThrowable
		return
	}

	s.insertParentLocked(e, parentName)
}

// findOrCreateLocked returns the entry for childName, creating the table
// and the entry as needed. Caller holds s.mu.
func (s *Store) findOrCreateLocked(childName string) *entry {
	if s.entries == nil {
		s.entries = make(map[string]*entry)
		s.nodes = newArena(s.minPool)
	}
	e, ok := s.entries[childName]
	if !ok {
		e = &entry{name: childName, head: nilRef}
		s.entries[childName] = e
	}
	return e
}

// insertParentLocked splices parentName into e's length-ordered parent
// list, keeping the list duplicate-free. Caller holds s.mu.
func (s *Store) insertParentLocked(e *entry, parentName string) {
	prev := nilRef
	walk := e.head
	for walk != nilRef {
		node := s.nodes.at(walk)
		if len(node.name) > len(parentName) {
			// Every remaining node is longer; parentName is absent.
			break
		}
		if node.name == parentName {
			// Already recorded, skip.
			return
		}
		prev = walk
		walk = node.next
	}

	ref := s.nodes.alloc(parentName)
	s.nodes.at(ref).next = walk
	if prev == nilRef {
		e.head = ref
	} else {
		s.nodes.at(prev).next = ref
	}
}

// removeLocked releases every parent node of e and removes the entry from
// the table. Caller holds s.mu.
func (s *Store) removeLocked(e *entry) {
	for ref := e.head; ref != nilRef; {
		next := s.nodes.at(ref).next
		s.nodes.release(ref)
		ref = next
	}
	e.head = nilRef
	delete(s.entries, e.name)
}

// Pending returns the recorded parent names (in list order) and flags for
// a child, and whether an entry exists at all.
func (s *Store) Pending(childName string) ([]string, Flags, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[childName]
	if !ok {
		return nil, 0, false
	}
	var parents []string
	for ref := e.head; ref != nilRef; ref = s.nodes.at(ref).next {
		parents = append(parents, s.nodes.at(ref).name)
	}
	return parents, e.flags, true
}

// Len returns the number of child entries with pending obligations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Destroy releases every remaining entry and the node pool. Called once,
// when the owning classloader is destroyed; entries still present here
// belong to classes that were never loaded.
func (s *Store) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		s.removeLocked(e)
	}
	s.entries = nil
	s.nodes = nil
}
