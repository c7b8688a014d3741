package loader

import "sync"

// ---------------------------------------------------------------------------
// Registry: in-memory loaded-class table
// ---------------------------------------------------------------------------

// ThrowableName is the internal name of java/lang/Throwable.
const ThrowableName = "java/lang/Throwable"

// LoadedClass is the registry's concrete class representation.
type LoadedClass struct {
	name       string
	iface      bool
	superclass *LoadedClass
}

// Name returns the fully-qualified internal class name.
func (c *LoadedClass) Name() string { return c.name }

// IsInterface reports whether the class is an interface.
func (c *LoadedClass) IsInterface() bool { return c.iface }

// Superclass returns the direct superclass, or nil for a root class.
func (c *LoadedClass) Superclass() *LoadedClass { return c.superclass }

// Registry tracks the classes loaded under one classloader.
// It's thread-safe for concurrent access.
type Registry struct {
	mu        sync.RWMutex
	classes   map[string]*LoadedClass
	throwable *LoadedClass
}

// NewRegistry creates a registry pre-populated with java/lang/Throwable,
// mirroring the host runtime where Throwable is a required class loaded
// before any verification runs.
func NewRegistry() *Registry {
	r := &Registry{
		classes: make(map[string]*LoadedClass),
	}
	r.throwable = r.DefineClass(ThrowableName, nil)
	return r
}

// DefineClass registers a loaded class with the given superclass.
// Returns the new class handle.
func (r *Registry) DefineClass(name string, superclass *LoadedClass) *LoadedClass {
	c := &LoadedClass{name: name, superclass: superclass}
	r.mu.Lock()
	r.classes[name] = c
	r.mu.Unlock()
	return c
}

// DefineInterface registers a loaded interface.
func (r *Registry) DefineInterface(name string) *LoadedClass {
	c := &LoadedClass{name: name, iface: true}
	r.mu.Lock()
	r.classes[name] = c
	r.mu.Unlock()
	return c
}

// Loaded returns the class registered under name, or nil.
func (r *Registry) Loaded(name string) Class {
	r.mu.RLock()
	c, ok := r.classes[name]
	r.mu.RUnlock()
	if !ok {
		// An explicit nil interface, not a typed nil pointer.
		return nil
	}
	return c
}

// SameOrSuperclassOf reports whether super is sub or one of its superclasses.
func (r *Registry) SameOrSuperclassOf(super, sub Class) bool {
	target, ok := super.(*LoadedClass)
	if !ok {
		return false
	}
	current, ok := sub.(*LoadedClass)
	if !ok {
		return false
	}
	for ; current != nil; current = current.superclass {
		if current == target {
			return true
		}
	}
	return false
}

// Throwable returns the pre-loaded java/lang/Throwable class.
func (r *Registry) Throwable() Class {
	return r.throwable
}

// Len returns the number of loaded classes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}
