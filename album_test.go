package polaroid

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultAlbum(t *testing.T) {
	a := DefaultAlbum()
	if a.Len() != 5 {
		t.Fatalf("Len = %d, want 5", a.Len())
	}
	c := a.Catalog()
	for i, want := range testMessages {
		if got := c.Message(i); got != want {
			t.Errorf("Message(%d) = %q, want %q", i, got, want)
		}
	}
	if c.Message(7) != "You're amazing!" {
		t.Errorf("Message(7) = %q", c.Message(7))
	}
	for i, src := range a.Sources() {
		if !strings.HasPrefix(src, "https://images.unsplash.com/photo-") {
			t.Errorf("source %d = %q", i, src)
		}
	}
}

func TestParseAlbum(t *testing.T) {
	data := []byte(`
fallback: "Hello"
photos:
  - source: https://example.com/a.jpg
    message: "First"
  - source: ./b.png
`)
	a, err := ParseAlbum(data)
	if err != nil {
		t.Fatalf("ParseAlbum: %v", err)
	}
	if a.Len() != 2 || a.Photos[1].Source != "./b.png" {
		t.Fatalf("album = %+v", a)
	}
	c := a.Catalog()
	if c.Message(0) != "First" || c.Message(1) != "Hello" {
		t.Errorf("messages = %q, %q", c.Message(0), c.Message(1))
	}
}

func TestParseAlbumErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no photos", "photos: []\n"},
		{"missing source", "photos:\n  - message: hi\n"},
		{"unknown key", "photos:\n  - source: a.png\n    caption: hi\n"},
		{"not yaml", "photos: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAlbum([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if _, err := ParseAlbum([]byte("photos: []\n")); !errors.Is(err, ErrNoPhotos) {
		t.Errorf("empty album error = %v, want ErrNoPhotos", err)
	}
}

func TestLoadAlbum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "album.yaml")
	if err := os.WriteFile(path, []byte("photos:\n  - source: a.png\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := LoadAlbum(path)
	if err != nil {
		t.Fatalf("LoadAlbum: %v", err)
	}
	if a.Len() != 1 || a.Catalog().Message(0) != DefaultFallbackMessage {
		t.Errorf("album = %+v", a)
	}
	if _, err := LoadAlbum(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
