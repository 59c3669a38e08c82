package polaroid

import "testing"

func TestShareCode(t *testing.T) {
	img, err := ShareCode("https://example.com/polaroid", 96)
	if err != nil {
		t.Fatalf("ShareCode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 96 {
		t.Errorf("bounds = %v, want 96x96", b)
	}
	if _, err := ShareCode("", 96); err == nil {
		t.Error("expected an error for an empty url")
	}
}
