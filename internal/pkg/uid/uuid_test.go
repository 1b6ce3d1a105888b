package uid

import "testing"

func TestUUIDGenerate(t *testing.T) {
	g := NewUUID()

	a, b := g.Generate(), g.Generate()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if !Valid(a) || !Valid(b) {
		t.Fatalf("generated ids must be valid UUIDs: %s %s", a, b)
	}
}

func TestValid(t *testing.T) {
	if Valid("not-a-uuid") {
		t.Fatalf("expected invalid")
	}
	if !Valid("0190b2a4-7c1e-7b5e-9f2a-3c4d5e6f7a8b") {
		t.Fatalf("expected valid")
	}
}
