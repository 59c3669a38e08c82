package polaroid

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTextureSize      = 512
	defaultFetchConcurrency = 4
	defaultFetchTimeout     = 15 * time.Second
	maxImageBytes           = 32 << 20
)

// LoadedImage is the outcome of fetching one photo's image.
type LoadedImage struct {
	Index  int
	Source string
	Image  image.Image
	Err    error
}

// Loader fetches photo images from URLs or local files, crops them to a
// centered square and resizes them to Size x Size. Loading is best-effort:
// failures are reported and logged but never stop other fetches.
type Loader struct {
	Client      *http.Client
	Size        int
	Concurrency int
	Timeout     time.Duration
	// Logger receives failures. Nil disables logging.
	Logger *log.Logger
}

// NewLoader returns a loader with the given settings; non-positive values
// take their defaults.
func NewLoader(size, concurrency int, timeout time.Duration, logger *log.Logger) *Loader {
	if size <= 0 {
		size = defaultTextureSize
	}
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Loader{
		Client:      &http.Client{Timeout: timeout},
		Size:        size,
		Concurrency: concurrency,
		Timeout:     timeout,
		Logger:      logger,
	}
}

// Start fetches every source in the background and delivers one result per
// non-empty source on the returned channel, in completion order. Empty
// sources are skipped; their photos keep the placeholder. The channel is
// buffered to len(sources) so the fetchers never wait on the consumer, and
// is closed once all fetches have finished or ctx is done.
func (l *Loader) Start(ctx context.Context, sources []string) <-chan LoadedImage {
	out := make(chan LoadedImage, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.Concurrency)
	go func() {
		defer close(out)
		for i, src := range sources {
			if gctx.Err() != nil {
				break
			}
			if strings.TrimSpace(src) == "" {
				continue
			}
			g.Go(func() error {
				img, err := l.Load(gctx, src)
				if err != nil && l.Logger != nil {
					l.Logger.Printf("image %d: %v", i, err)
				}
				out <- LoadedImage{Index: i, Source: src, Image: img, Err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return out
}

// Load fetches, decodes and prepares a single image.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	rc, err := l.open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(io.LimitReader(rc, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("polaroid: decode %s: %w", src, err)
	}
	return prepareImage(img, l.Size), nil
}

func (l *Loader) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, fmt.Errorf("polaroid: open image: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("polaroid: fetch %s: %w", src, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polaroid: fetch %s: %w", src, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("polaroid: fetch %s: status %s", src, resp.Status)
	}
	return resp.Body, nil
}

// prepareImage crops img to its largest centered square and scales it to
// size x size.
func prepareImage(img image.Image, size int) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	if side <= 0 {
		return img
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	sq := transform.Crop(img, image.Rect(x0, y0, x0+side, y0+side))
	if side == size {
		return sq
	}
	return transform.Resize(sq, size, size, transform.Linear)
}
