package blurhash

import (
	"fmt"
	"math"

	"github.com/AnyUserName/blurhash-cli/internal/base83"
	"github.com/AnyUserName/blurhash-cli/internal/srgb"
)

// Hash is the dequantized content of a BlurHash string.
type Hash struct {
	ComponentsX int
	ComponentsY int
	// Maximum is the AC scale recovered from the quantized max field.
	Maximum float64
	// Colors holds one linear RGB triple per component, row-major with
	// x fastest.  Colors[0] is the DC term.
	Colors [][3]float64
}

// Validate checks that hash is long enough and that its length matches
// the component grid declared by its first character.  No other field
// is read.
func Validate(hash string) error {
	_, _, err := components(hash)
	return err
}

// Components returns the component grid declared by a valid hash.
func Components(hash string) (x, y int, err error) {
	return components(hash)
}

func components(hash string) (int, int, error) {
	if len(hash) < minHashLen {
		return 0, 0, fmt.Errorf("%w: length %d, need at least %d", ErrLength, len(hash), minHashLen)
	}
	sizeFlag, err := base83.Decode(hash[:1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: size flag: %w", ErrFormat, err)
	}
	nx := sizeFlag%9 + 1
	ny := sizeFlag/9 + 1
	if want := EncodedLen(nx, ny); len(hash) != want {
		return 0, 0, fmt.Errorf("%w: length %d, %dx%d grid needs %d",
			ErrFormat, len(hash), nx, ny, want)
	}
	return nx, ny, nil
}

// Parse validates hash and dequantizes every component.
func Parse(hash string) (*Hash, error) {
	return parse(hash, 1)
}

// parse dequantizes hash, scaling AC terms by punch.
func parse(hash string, punch float64) (*Hash, error) {
	nx, ny, err := components(hash)
	if err != nil {
		return nil, err
	}

	field := func(lo, hi int) (int, error) {
		v, err := base83.Decode(hash[lo:hi])
		if err != nil {
			return 0, fmt.Errorf("%w: field [%d:%d]: %w", ErrFormat, lo, hi, err)
		}
		return v, nil
	}

	quantisedMax, err := field(1, 2)
	if err != nil {
		return nil, err
	}
	h := &Hash{
		ComponentsX: nx,
		ComponentsY: ny,
		Maximum:     float64(quantisedMax+1) / 166,
		Colors:      make([][3]float64, nx*ny),
	}

	dc, err := field(2, 6)
	if err != nil {
		return nil, err
	}
	h.Colors[0] = decodeDC(dc)

	scale := h.Maximum * punch
	for i := 1; i < nx*ny; i++ {
		v, err := field(4+2*i, 6+2*i)
		if err != nil {
			return nil, err
		}
		h.Colors[i] = decodeAC(v, scale)
	}
	return h, nil
}

// AverageColor returns the DC term of hash as sRGB bytes.
func AverageColor(hash string) ([3]uint8, error) {
	if _, _, err := components(hash); err != nil {
		return [3]uint8{}, err
	}
	v, err := base83.Decode(hash[2:6])
	if err != nil {
		return [3]uint8{}, fmt.Errorf("%w: DC field: %w", ErrFormat, err)
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// Decode reconstructs a width by height RGBA buffer from hash.  punch
// scales the AC terms to exaggerate contrast; values <= 0 mean 1.
// Alpha is always 255.
func Decode(hash string, width, height int, punch float64) ([]byte, error) {
	if punch <= 0 {
		punch = 1
	}
	h, err := parse(hash, punch)
	if err != nil {
		return nil, err
	}
	return h.Render(width, height)
}

// Render reconstructs a width by height RGBA buffer from the parsed
// components.
func (h *Hash) Render(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	nx, ny := h.ComponentsX, h.ComponentsY

	// cos(π·x·i/width), laid out [i*width+x].
	cosX := make([]float64, nx*width)
	for i := 0; i < nx; i++ {
		for x := 0; x < width; x++ {
			cosX[i*width+x] = math.Cos(math.Pi * float64(x) * float64(i) / float64(width))
		}
	}
	cosY := make([]float64, ny*height)
	for j := 0; j < ny; j++ {
		for y := 0; y < height; y++ {
			cosY[j*height+y] = math.Cos(math.Pi * float64(y) * float64(j) / float64(height))
		}
	}

	pix := make([]byte, width*height*bytesPerPixel)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b float64
			for j := 0; j < ny; j++ {
				fy := cosY[j*height+y]
				for i := 0; i < nx; i++ {
					basis := cosX[i*width+x] * fy
					c := h.Colors[j*nx+i]
					r += c[0] * basis
					g += c[1] * basis
					b += c[2] * basis
				}
			}

			off := (y*width + x) * bytesPerPixel
			pix[off] = uint8(srgb.FromLinear(r))
			pix[off+1] = uint8(srgb.FromLinear(g))
			pix[off+2] = uint8(srgb.FromLinear(b))
			pix[off+3] = 255
		}
	}
	return pix, nil
}

func decodeDC(v int) [3]float64 {
	return [3]float64{
		srgb.ToLinear(uint8(v >> 16)),
		srgb.ToLinear(uint8(v >> 8)),
		srgb.ToLinear(uint8(v)),
	}
}

func decodeAC(v int, scale float64) [3]float64 {
	q := func(c int) float64 {
		return srgb.SignPow((float64(c)-9)/9, 2) * scale
	}
	return [3]float64{q(v / (19 * 19)), q((v / 19) % 19), q(v % 19)}
}
