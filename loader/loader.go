// Package loader defines the loaded-class view consumed by relationship
// verification, plus an in-memory registry implementing it. The registry
// stands in for the class-loading subsystem: it answers "is this name
// loaded?" and supplies the definitive hierarchy predicate.
package loader

// Class is a handle to a loaded class.
type Class interface {
	// Name returns the fully-qualified internal name, e.g. "java/lang/Object".
	Name() string

	// IsInterface reports whether the class is an interface.
	IsInterface() bool
}

// View is the loaded-class lookup consulted while resolving and validating
// relationships. Implementations provide their own consistency guarantees;
// the verification core takes no additional locks around these calls.
type View interface {
	// Loaded returns the class loaded under this view's loader for the
	// given name, or nil if no such class has been loaded yet.
	Loaded(name string) Class

	// SameOrSuperclassOf reports whether super is the same class as sub
	// or one of its superclasses. Interfaces are not consulted here.
	SameOrSuperclassOf(super, sub Class) bool

	// Throwable returns the loaded java/lang/Throwable class. It is a
	// required class and is always loaded before verification begins.
	Throwable() Class
}

// Category classifies a classloader for sizing heuristics. The bootstrap
// loaders see far more classes than a typical application-defined loader,
// so their relationship node pools start larger. This is purely a
// performance heuristic.
type Category int

const (
	// CategoryCustom is any user-defined classloader.
	CategoryCustom Category = iota

	// CategorySystem is the bootstrap/system classloader.
	CategorySystem

	// CategoryExtension is the extension (platform) classloader.
	CategoryExtension

	// CategoryApplication is the application classloader.
	CategoryApplication
)

// PoolMinimum returns the minimum node-pool capacity for the category.
func (c Category) PoolMinimum() int {
	switch c {
	case CategorySystem:
		return 200
	case CategoryExtension:
		return 50
	case CategoryApplication:
		return 100
	default:
		return 20
	}
}

// String implements the Stringer interface.
func (c Category) String() string {
	switch c {
	case CategorySystem:
		return "system"
	case CategoryExtension:
		return "extension"
	case CategoryApplication:
		return "application"
	default:
		return "custom"
	}
}
