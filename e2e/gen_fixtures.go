//go:build ignore

// gen_fixtures writes small test images for the E2E smoke test and prints
// the blurhash each one should produce under the default profile.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/blurhash-cli/internal/pipeline"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
)

type fixture struct {
	rel string
	img *image.NRGBA
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]

	fixtures := []fixture{
		{"banner.jpg", gradient(400, 225)},
		{"logo.png", stripes(100, 100)},
	}
	for i := 1; i <= 3; i++ {
		fixtures = append(fixtures, fixture{
			fmt.Sprintf("cards/card-%d.png", i),
			solidWithBorder(200, 150, uint8(i*60)),
		})
	}

	prof := profile.Get(profile.DefaultName)
	for _, f := range fixtures {
		path := filepath.Join(dir, f.rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			panic(err)
		}
		write(path, f.img)

		hash, err := pipeline.EncodeSource(f.img, prof)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-20s %s\n", f.rel, hash)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(fixtures), dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// stripes has strong horizontal frequency content, which exercises the
// AC terms more than a smooth gradient.
func stripes(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 220, G: 60, B: 30, A: 255}
			if (x/10)%2 == 1 {
				c = color.NRGBA{R: 20, G: 40, B: 160, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func write(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	switch filepath.Ext(path) {
	case ".jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		panic(err)
	}
}
