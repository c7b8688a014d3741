package loader

import "testing"

func TestRegistry_ThrowablePreloaded(t *testing.T) {
	r := NewRegistry()

	c := r.Loaded(ThrowableName)
	if c == nil {
		t.Fatal("Throwable should be loaded from the start")
	}
	if c != r.Throwable() {
		t.Error("Loaded and Throwable return different handles")
	}
	if c.IsInterface() {
		t.Error("Throwable should not be an interface")
	}
}

func TestRegistry_LoadedReturnsNilForUnknown(t *testing.T) {
	r := NewRegistry()
	if c := r.Loaded("com/example/Nope"); c != nil {
		t.Errorf("Loaded = %v, want nil", c)
	}
}

func TestRegistry_SameOrSuperclassOf(t *testing.T) {
	r := NewRegistry()
	object := r.DefineClass("java/lang/Object", nil)
	base := r.DefineClass("com/example/Base", object)
	app := r.DefineClass("com/example/App", base)
	other := r.DefineClass("com/example/Other", object)

	if !r.SameOrSuperclassOf(app, app) {
		t.Error("a class should be same-or-superclass of itself")
	}
	if !r.SameOrSuperclassOf(base, app) {
		t.Error("Base should be a superclass of App")
	}
	if !r.SameOrSuperclassOf(object, app) {
		t.Error("Object should be a superclass of App")
	}
	if r.SameOrSuperclassOf(app, base) {
		t.Error("App is not a superclass of Base")
	}
	if r.SameOrSuperclassOf(other, app) {
		t.Error("Other is unrelated to App")
	}
}

func TestRegistry_ThrowableHierarchy(t *testing.T) {
	r := NewRegistry()
	throwable := r.Loaded(ThrowableName).(*LoadedClass)
	exception := r.DefineClass("java/lang/Exception", throwable)

	if !r.SameOrSuperclassOf(r.Throwable(), exception) {
		t.Error("Exception should be a subtype of Throwable")
	}
}

func TestCategory_PoolMinimum(t *testing.T) {
	if CategorySystem.PoolMinimum() <= CategoryCustom.PoolMinimum() {
		t.Error("system loader should start with a larger pool than a custom loader")
	}
	if CategoryCustom.PoolMinimum() < 1 {
		t.Error("pool minimum should be at least 1")
	}
}
