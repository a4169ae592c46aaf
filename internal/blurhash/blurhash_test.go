package blurhash

import (
	"errors"
	"hash/crc32"
	"testing"

	"github.com/AnyUserName/blurhash-cli/internal/base83"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const woltHash = "LEHV6nWB2yk8pyo0adR*.7kCMdnj"

func solidPixels(w, h int, r, g, b uint8) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
	}
	return pix
}

func gradientPixels(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 4
			pix[off] = uint8(x * 255 / max(w-1, 1))
			pix[off+1] = uint8(y * 255 / max(h-1, 1))
			pix[off+2] = 128
			pix[off+3] = 255
		}
	}
	return pix
}

// patternPixels fills every byte, alpha included, with a quadratic
// sequence so that no row or column is uniform.
func patternPixels(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = byte((i*i*31 + i*7) % 256)
	}
	return pix
}

// ─── encode ──────────────────────────────────────────────────

func TestEncode_ReferenceVectors(t *testing.T) {
	cases := []struct {
		name   string
		side   int
		rgb    [3]uint8
		cx, cy int
		want   string
	}{
		{"red_1x1", 1, [3]uint8{255, 0, 0}, 1, 1, "00TI:j"},
		{"white_1x1", 1, [3]uint8{255, 255, 255}, 1, 1, "00TSUA"},
		{"black_1x1", 1, [3]uint8{0, 0, 0}, 1, 1, "000000"},
		{"red_8x8", 8, [3]uint8{255, 0, 0}, 1, 1, "00TI:j"},
		// A single pixel sees basis 1 everywhere, so the AC term is 2×DC.
		{"red_1x1_2x1", 1, [3]uint8{255, 0, 0}, 2, 1, "1~TI:j|c"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pix := solidPixels(c.side, c.side, c.rgb[0], c.rgb[1], c.rgb[2])
			got, err := Encode(pix, c.side, c.side, c.cx, c.cy)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEncode_ComponentsAndLength(t *testing.T) {
	pix := gradientPixels(6, 5)
	for cy := 1; cy <= 9; cy++ {
		for cx := 1; cx <= 9; cx++ {
			hash, err := Encode(pix, 6, 5, cx, cy)
			require.NoError(t, err)
			require.Len(t, hash, EncodedLen(cx, cy))
			require.NoError(t, Validate(hash))

			gx, gy, err := Components(hash)
			require.NoError(t, err)
			require.Equal(t, [2]int{cx, cy}, [2]int{gx, gy})
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	pix := gradientPixels(32, 24)
	h1, err := Encode(pix, 32, 24, 4, 3)
	require.NoError(t, err)
	h2, err := Encode(pix, 32, 24, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestEncode_IgnoresAlpha(t *testing.T) {
	opaque := gradientPixels(8, 8)
	transparent := append([]byte(nil), opaque...)
	for i := 3; i < len(transparent); i += 4 {
		transparent[i] = 0
	}
	h1, err := Encode(opaque, 8, 8, 3, 3)
	require.NoError(t, err)
	h2, err := Encode(transparent, 8, 8, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestEncode_RangeError(t *testing.T) {
	pix := solidPixels(2, 2, 1, 2, 3)
	for _, c := range [][2]int{{0, 3}, {3, 0}, {10, 1}, {1, 10}, {-1, -1}} {
		_, err := Encode(pix, 2, 2, c[0], c[1])
		assert.ErrorIs(t, err, ErrRange, "components %v", c)
	}
}

func TestEncode_SizeMismatch(t *testing.T) {
	pix := solidPixels(2, 2, 1, 2, 3)

	_, err := Encode(pix[:len(pix)-1], 2, 2, 1, 1)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Encode(pix, 3, 2, 1, 1)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Encode(nil, 0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

// ─── validate ────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(woltHash))

	x, y, err := Components(woltHash)
	require.NoError(t, err)
	assert.Equal(t, 4, x)
	assert.Equal(t, 3, y)

	assert.ErrorIs(t, Validate(""), ErrLength)
	assert.ErrorIs(t, Validate("00000"), ErrLength)
	// '0' declares a 1x1 grid, which needs exactly 6 characters.
	assert.ErrorIs(t, Validate("0000000"), ErrFormat)
	assert.ErrorIs(t, Validate(woltHash[:len(woltHash)-2]), ErrFormat)

	err = Validate("!00000")
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, base83.ErrInvalidCharacter)
}

func TestValidate_LengthRule(t *testing.T) {
	// Every size flag is accepted exactly at its own length.
	for flag := 0; flag < 81; flag++ {
		nx, ny := flag%9+1, flag/9+1
		n := EncodedLen(nx, ny)
		hash := base83.Encode(flag, 1)
		for len(hash) < n+1 {
			hash += "0"
		}
		assert.NoError(t, Validate(hash[:n]), "flag %d", flag)
		assert.Error(t, Validate(hash[:n+1]), "flag %d", flag)
	}
}

// ─── decode ──────────────────────────────────────────────────

func TestDecode_WoltHash(t *testing.T) {
	pix, err := Decode(woltHash, 32, 32, 0)
	require.NoError(t, err)
	require.Len(t, pix, 4096)
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("alpha at %d = %d", i, pix[i])
		}
	}
}

func TestDecode_WoltHashPixels(t *testing.T) {
	pix, err := Decode(woltHash, 32, 32, 1)
	require.NoError(t, err)

	assert.Equal(t, []byte{135, 164, 177, 255}, pix[:4], "pixel (0,0)")
	off := (16*32 + 16) * 4
	assert.Equal(t, []byte{158, 125, 108, 255}, pix[off:off+4], "pixel (16,16)")
	assert.Equal(t, uint32(0x2e7c2958), crc32.ChecksumIEEE(pix))

	punched, err := Decode(woltHash, 32, 32, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xec9f6f9f), crc32.ChecksumIEEE(punched))
}

func TestDecode_OutputShape(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {7, 3}, {3, 7}, {20, 20}} {
		pix, err := Decode(woltHash, dims[0], dims[1], 1)
		require.NoError(t, err)
		assert.Len(t, pix, dims[0]*dims[1]*4)
	}
}

func TestDecode_SolidRed(t *testing.T) {
	pix, err := Decode("00TI:j", 4, 4, 1)
	require.NoError(t, err)
	for i := 0; i < len(pix); i += 4 {
		require.Equal(t, []byte{255, 0, 0, 255}, pix[i:i+4], "pixel %d", i/4)
	}
}

func TestRoundTrip_SinglePixel(t *testing.T) {
	for _, c := range [][3]uint8{{255, 0, 0}, {0, 0, 0}, {255, 255, 255}, {12, 200, 77}} {
		hash, err := Encode(solidPixels(1, 1, c[0], c[1], c[2]), 1, 1, 1, 1)
		require.NoError(t, err)
		pix, err := Decode(hash, 1, 1, 1)
		require.NoError(t, err)
		for ch := 0; ch < 3; ch++ {
			assert.InDelta(t, int(c[ch]), int(pix[ch]), 1, "color %v channel %d", c, ch)
		}
	}
}

func TestDecode_Punch(t *testing.T) {
	base, err := Decode(woltHash, 16, 16, 1)
	require.NoError(t, err)

	zero, err := Decode(woltHash, 16, 16, 0)
	require.NoError(t, err)
	assert.Equal(t, base, zero, "punch 0 means default")

	// Punch is a true multiplier: even values are not bumped to the next odd.
	two, err := Decode(woltHash, 16, 16, 2)
	require.NoError(t, err)
	three, err := Decode(woltHash, 16, 16, 3)
	require.NoError(t, err)
	assert.NotEqual(t, base, two)
	assert.NotEqual(t, two, three)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode("00000", 4, 4, 1)
	assert.ErrorIs(t, err, ErrLength)

	_, err = Decode("0000000", 4, 4, 1)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Decode(woltHash, 0, 4, 1)
	assert.ErrorIs(t, err, ErrDimensions)

	_, err = Decode(woltHash, 4, -1, 1)
	assert.ErrorIs(t, err, ErrDimensions)

	// Structurally valid, but an AC field holds a byte outside the alphabet.
	bad := woltHash[:len(woltHash)-1] + "\x01"
	require.NoError(t, Validate(bad))
	_, err = Decode(bad, 4, 4, 1)
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, base83.ErrInvalidCharacter)

	// Bad byte in the DC field.
	bad = woltHash[:3] + "\"" + woltHash[4:]
	_, err = Decode(bad, 4, 4, 1)
	assert.True(t, errors.Is(err, base83.ErrInvalidCharacter))
}

// ─── parse / inspect helpers ─────────────────────────────────

func TestParse(t *testing.T) {
	h, err := Parse(woltHash)
	require.NoError(t, err)
	assert.Equal(t, 4, h.ComponentsX)
	assert.Equal(t, 3, h.ComponentsY)
	assert.Len(t, h.Colors, 12)

	q, err := base83.Decode(woltHash[1:2])
	require.NoError(t, err)
	assert.InDelta(t, float64(q+1)/166, h.Maximum, 1e-15)

	// Decoding via Parse+Render matches Decode with punch 1.
	want, err := Decode(woltHash, 9, 5, 1)
	require.NoError(t, err)
	got, err := h.Render(9, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, dims := range [][2]int{{0, 5}, {9, 0}, {-1, 5}, {9, -3}} {
		_, err := h.Render(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrDimensions, "%dx%d", dims[0], dims[1])
	}
}

func TestAverageColor(t *testing.T) {
	c, err := AverageColor("00TI:j")
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{255, 0, 0}, c)

	pix := gradientPixels(16, 16)
	hash, err := Encode(pix, 16, 16, 4, 4)
	require.NoError(t, err)
	c, err = AverageColor(hash)
	require.NoError(t, err)
	// Blue is constant at 128 across the gradient.
	assert.InDelta(t, 128, int(c[2]), 1)

	_, err = AverageColor("abc")
	assert.ErrorIs(t, err, ErrLength)
}

func BenchmarkEncode_64x64_4x3(b *testing.B) {
	pix := gradientPixels(64, 64)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(pix, 64, 64, 4, 3)
	}
}

func BenchmarkDecode_32x32(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(woltHash, 32, 32, 1)
	}
}
