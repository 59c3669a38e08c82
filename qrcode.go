package polaroid

import (
	"errors"
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultShareCodeSize = 128

// ShareCode encodes url as a QR code image of size x size pixels. It is drawn
// in a screen corner so the stack can be opened on a phone.
func ShareCode(url string, size int) (image.Image, error) {
	if url == "" {
		return nil, errors.New("polaroid: share code: empty url")
	}
	if size <= 0 {
		size = defaultShareCodeSize
	}
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("polaroid: share code: %w", err)
	}
	return q.Image(size), nil
}
