package blurhash

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// EncodeImage converts img to non-premultiplied RGBA and encodes it.
func EncodeImage(img image.Image, componentsX, componentsY int) (string, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return "", fmt.Errorf("%w: empty image %v", ErrSizeMismatch, b)
	}
	// Clone yields a tightly packed NRGBA at the origin (Stride == 4*w).
	nrgba := imaging.Clone(img)
	return Encode(nrgba.Pix, b.Dx(), b.Dy(), componentsX, componentsY)
}

// DecodeImage decodes hash into a width by height NRGBA image.
func DecodeImage(hash string, width, height int, punch float64) (*image.NRGBA, error) {
	pix, err := Decode(hash, width, height, punch)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * bytesPerPixel,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
