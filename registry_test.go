package framesmith

import "testing"

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	h := NewHeader("eth", 0, nil)
	if err := r.Register(h); err != nil {
		t.Fatal(err)
	}
	got, ok := r.Lookup("eth")
	if !ok || got != h {
		t.Fatal("want registered header to be found by name")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("want false for an unregistered name")
	}
}

func TestRegistryDuplicateNameRejected(t *testing.T) {
	r := NewRegistry()
	r.Register(NewHeader("eth", 0, nil))
	if err := r.Register(NewHeader("eth", 0, nil)); err == nil {
		t.Fatal("want error registering a duplicate name")
	}
}

func TestRegistryFreezeRejectsFurtherRegistration(t *testing.T) {
	r := NewRegistry()
	if r.Frozen() {
		t.Fatal("want a fresh registry to be unfrozen")
	}
	r.Freeze()
	if !r.Frozen() {
		t.Fatal("want Frozen true after Freeze")
	}
	if err := r.Register(NewHeader("eth", 0, nil)); err == nil {
		t.Error("want registration to fail once frozen")
	}
}

func TestRegistryFreezeIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	r.Freeze()
	if !r.Frozen() {
		t.Error("want Frozen to remain true")
	}
}
