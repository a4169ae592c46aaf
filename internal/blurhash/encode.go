// Package blurhash implements the BlurHash placeholder format: a 2-D DCT
// of an RGBA image over a small component grid, quantized and written
// as a short base83 string, plus the inverse transform.
//
// All functions are pure.  Encode and Decode sum in a fixed order, so
// identical input gives bit-identical output on a given platform.
package blurhash

import (
	"fmt"
	"math"

	"github.com/AnyUserName/blurhash-cli/internal/base83"
	"github.com/AnyUserName/blurhash-cli/internal/srgb"
)

const (
	bytesPerPixel = 4
	maxComponents = 9
	minHashLen    = 6
)

// EncodedLen returns the hash length for an x by y component grid.
func EncodedLen(componentsX, componentsY int) int {
	// size flag (1) + max (1) + DC (4) + 2 per AC term.
	return 4 + 2*componentsX*componentsY
}

// Encode computes the BlurHash of a row-major, non-premultiplied RGBA
// buffer.  Alpha is ignored.  componentsX and componentsY set the number
// of horizontal and vertical frequencies kept, each in [1, 9].
func Encode(pixels []byte, width, height, componentsX, componentsY int) (string, error) {
	if componentsX < 1 || componentsX > maxComponents || componentsY < 1 || componentsY > maxComponents {
		return "", fmt.Errorf("%w: %dx%d, each must be 1-%d",
			ErrRange, componentsX, componentsY, maxComponents)
	}
	if width <= 0 || height <= 0 || len(pixels) != width*height*bytesPerPixel {
		return "", fmt.Errorf("%w: %d bytes for %dx%d image",
			ErrSizeMismatch, len(pixels), width, height)
	}

	factors := computeFactors(pixels, width, height, componentsX, componentsY)
	dc := factors[0]
	ac := factors[1:]

	buf := make([]byte, 0, EncodedLen(componentsX, componentsY))

	sizeFlag := (componentsX - 1) + (componentsY-1)*9
	buf = append(buf, base83.Encode(sizeFlag, 1)...)

	maximum := 1.0
	if len(ac) > 0 {
		var actualMax float64
		for _, f := range ac {
			actualMax = math.Max(actualMax, math.Abs(f[0]))
			actualMax = math.Max(actualMax, math.Abs(f[1]))
			actualMax = math.Max(actualMax, math.Abs(f[2]))
		}
		quantisedMax := int(clamp(math.Floor(actualMax*166-0.5), 0, 82))
		maximum = float64(quantisedMax+1) / 166
		buf = append(buf, base83.Encode(quantisedMax, 1)...)
	} else {
		buf = append(buf, base83.Encode(0, 1)...)
	}

	buf = append(buf, base83.Encode(encodeDC(dc), 4)...)
	for _, f := range ac {
		buf = append(buf, base83.Encode(encodeAC(f, maximum), 2)...)
	}
	return string(buf), nil
}

// computeFactors returns one linear RGB triple per grid cell, row-major
// with x fastest.  Index 0 is the DC term.
func computeFactors(pixels []byte, width, height, nx, ny int) [][3]float64 {
	cosX := cosTable(nx, width)
	cosY := cosTable(ny, height)

	factors := make([][3]float64, nx*ny)
	scale := 1 / float64(width*height)
	stride := width * bytesPerPixel

	for j := 0; j < ny; j++ {
		cyBase := j * height
		for i := 0; i < nx; i++ {
			cxBase := i * width
			var r, g, b float64
			for y := 0; y < height; y++ {
				fy := cosY[cyBase+y]
				row := y * stride
				for x := 0; x < width; x++ {
					basis := cosX[cxBase+x] * fy
					off := row + x*bytesPerPixel
					r += basis * srgb.ToLinear(pixels[off])
					g += basis * srgb.ToLinear(pixels[off+1])
					b += basis * srgb.ToLinear(pixels[off+2])
				}
			}

			norm := 2.0
			if i == 0 && j == 0 {
				norm = 1
			}
			f := norm * scale
			factors[j*nx+i] = [3]float64{r * f, g * f, b * f}
		}
	}
	return factors
}

// cosTable returns cos(π·k·p/size) for k in [0, n) and p in [0, size),
// laid out as table[k*size+p].
func cosTable(n, size int) []float64 {
	t := make([]float64, n*size)
	for k := 0; k < n; k++ {
		for p := 0; p < size; p++ {
			t[k*size+p] = math.Cos(math.Pi * float64(k) * float64(p) / float64(size))
		}
	}
	return t
}

func encodeDC(c [3]float64) int {
	r := srgb.FromLinear(c[0])
	g := srgb.FromLinear(c[1])
	b := srgb.FromLinear(c[2])
	return r<<16 | g<<8 | b
}

func encodeAC(c [3]float64, maximum float64) int {
	q := func(v float64) int {
		return int(clamp(math.Floor(srgb.SignPow(v/maximum, 0.5)*9+9.5), 0, 18))
	}
	return q(c[0])*19*19 + q(c[1])*19 + q(c[2])
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
