package typeid

import "testing"

func TestNewValidate(t *testing.T) {
	id := NewObjectID()
	if err := Validate(id, PrefixObject); err != nil {
		t.Fatalf("Validate(%q) error = %v", id, err)
	}
	if err := Validate(id, PrefixSession); err == nil {
		t.Errorf("Validate(%q, %q) = nil, want prefix error", id, PrefixSession)
	}
	if err := Validate("not-an-id", PrefixObject); err == nil {
		t.Error("Validate(garbage) = nil, want error")
	}
	if NewObjectID() == id {
		t.Error("NewObjectID() returned duplicate id")
	}
}
