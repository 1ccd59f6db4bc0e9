package storage

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/studiobook/internal/httperr"
)

const (
	MaxUploadBytes = 5 << 20
	MaxImageWidth  = 1280
	webpQuality    = 80
)

var (
	ErrImageTooLarge      = httperr.ErrInvalidState("image_too_large", "Image must be at most 5MB")
	ErrUnsupportedImage   = httperr.ErrInvalidState("unsupported_image", "Only JPEG, PNG and WebP images are allowed")
	ErrStorageUnavailable = errors.New("image storage is not configured")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ToWebP validates an uploaded image, scales it down to MaxImageWidth
// and re-encodes it as WebP.
func ToWebP(data []byte) ([]byte, error) {
	if len(data) > MaxUploadBytes {
		return nil, ErrImageTooLarge
	}
	if !allowedTypes[http.DetectContentType(data)] {
		return nil, ErrUnsupportedImage
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img := resize(src, MaxImageWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
