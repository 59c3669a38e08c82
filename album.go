package polaroid

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AlbumPhoto is one entry of an album: where its image comes from and the
// message revealed when it is clicked.
type AlbumPhoto struct {
	Source  string `yaml:"source"`
	Message string `yaml:"message,omitempty"`
}

// Album is the content of a stack. Entry i becomes the photo with index i.
type Album struct {
	Fallback string       `yaml:"fallback,omitempty"`
	Photos   []AlbumPhoto `yaml:"photos"`
}

func unsplash(id string) string {
	return "https://images.unsplash.com/" + id + "?w=500&auto=format&fit=crop"
}

// DefaultAlbum returns the built-in five photos and messages.
func DefaultAlbum() Album {
	return Album{
		Fallback: DefaultFallbackMessage,
		Photos: []AlbumPhoto{
			{Source: unsplash("photo-1504593811423-6dd665756598"), Message: "You are my sunshine!"},
			{Source: unsplash("photo-1500648767791-00dcc994a43e"), Message: "My favorite person in the whole world!"},
			{Source: unsplash("photo-1499952127939-9bbf5af6c51c"), Message: "You make my heart skip a beat!"},
			{Source: unsplash("photo-1530785602389-075941b8b170"), Message: "My one and only!"},
			{Source: unsplash("photo-1580489944761-15a19d654956"), Message: "You are the cutest!"},
		},
	}
}

// LoadAlbum reads a YAML album file.
func LoadAlbum(path string) (Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Album{}, fmt.Errorf("polaroid: read album: %w", err)
	}
	a, err := ParseAlbum(data)
	if err != nil {
		return Album{}, fmt.Errorf("polaroid: album %s: %w", path, err)
	}
	return a, nil
}

// ParseAlbum decodes a YAML album. Unknown keys are rejected. An album must
// contain at least one photo.
//
//	fallback: "You're amazing!"
//	photos:
//	  - source: https://example.com/a.jpg
//	    message: "You are my sunshine!"
//	  - source: ./b.png
func ParseAlbum(data []byte) (Album, error) {
	var a Album
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		return Album{}, fmt.Errorf("decode: %w", err)
	}
	if len(a.Photos) == 0 {
		return Album{}, ErrNoPhotos
	}
	for i, p := range a.Photos {
		if strings.TrimSpace(p.Source) == "" {
			return Album{}, fmt.Errorf("photo %d: missing source", i)
		}
	}
	return a, nil
}

// Len returns the number of photos.
func (a Album) Len() int {
	return len(a.Photos)
}

// Catalog builds the message catalog, index-aligned with the photos.
func (a Album) Catalog() *Catalog {
	msgs := make([]string, len(a.Photos))
	for i, p := range a.Photos {
		msgs[i] = p.Message
	}
	return NewCatalog(msgs, a.Fallback)
}

// Sources returns the image sources in photo order.
func (a Album) Sources() []string {
	out := make([]string, len(a.Photos))
	for i, p := range a.Photos {
		out[i] = p.Source
	}
	return out
}
