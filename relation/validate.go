package relation

import "github.com/chazu/verdict/loader"

// Validate checks every pending obligation recorded for a class that just
// finished loading. It must be called before the class becomes visible to
// other threads.
//
// Each obligation is resolved in turn, short-circuiting on the first
// failure:
//
//   - A parent that is still not loaded has to be an interface once it
//     does load (the child is a loaded non-matching class already), so
//     the obligation is forwarded: the parent's own entry gets
//     MustBeInterface.
//   - A loaded interface parent always passes.
//   - A loaded class parent must be the same as or a superclass of child.
//
// On full success the child's entry is released; the store then holds no
// trace of the child and it is never revisited. On failure the entry is
// left in place and the class that violated the relationship is returned
// so the caller can name it in the verification error. Returns nil on
// success.
func (s *Store) Validate(view loader.View, childName string, child loader.Class) loader.Class {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[childName]
	if !ok {
		// Nothing recorded for this class, or it already validated.
		return nil
	}

	// The class is invalid if it was required to be an interface but isn't.
	if e.flags&MustBeInterface != 0 && !child.IsInterface() {
		return child
	}

	if e.flags&ParentIsThrowable != 0 {
		// Throwable is a required class and is always loaded.
		throwable := view.Throwable()
		if !view.SameOrSuperclassOf(throwable, child) {
			return throwable
		}
	}

	for ref := e.head; ref != nilRef; ref = s.nodes.at(ref).next {
		parentName := s.nodes.at(ref).name
		parent := view.Loaded(parentName)

		if parent == nil {
			// The child is loaded and is not a subclass of this parent,
			// so the relationship can only hold if the parent turns out
			// to be an interface. Forward that obligation.
			pe := s.findOrCreateLocked(parentName)
			pe.flags |= MustBeInterface
		} else if parent.IsInterface() {
			// Interfaces are always acceptable supertypes under the
			// relaxed verifier type check.
		} else if !view.SameOrSuperclassOf(parent, child) {
			return parent
		}
	}

	// All obligations held; the child is fully resolved.
	s.removeLocked(e)
	return nil
}
