package pipeline

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 85}))
}

// fixtureDir lays out: banner.jpg, cards/card-1.png, cards/card-2.PNG,
// notes.txt, and .hidden/skip.png.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "banner.jpg"), gradient(200, 100))
	writePNG(t, filepath.Join(dir, "cards", "card-1.png"), gradient(40, 30))
	writePNG(t, filepath.Join(dir, "cards", "card-2.PNG"), gradient(12, 60))
	writePNG(t, filepath.Join(dir, ".hidden", "skip.png"), gradient(4, 4))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	return dir
}

func TestScanImages(t *testing.T) {
	dir := fixtureDir(t)
	sources, err := ScanImages(dir)
	require.NoError(t, err)

	got := map[string]string{}
	for _, s := range sources {
		got[s.Key] = s.Format
		assert.Positive(t, s.Size, s.Key)
	}
	assert.Equal(t, map[string]string{
		"banner":       "jpeg",
		"cards/card-1": "png",
		"cards/card-2": "png",
	}, got)
}

func TestEncodeSource_Downscales(t *testing.T) {
	p := profile.Get("balanced")
	big := gradient(640, 480)

	hash, err := EncodeSource(big, p)
	require.NoError(t, err)
	x, y, err := blurhash.Components(hash)
	require.NoError(t, err)
	assert.Equal(t, [2]int{p.ComponentsX, p.ComponentsY}, [2]int{x, y})

	// Small inputs are encoded as-is.
	small := gradient(20, 10)
	want, err := blurhash.EncodeImage(small, p.ComponentsX, p.ComponentsY)
	require.NoError(t, err)
	got, err := EncodeSource(small, p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPipelineRun(t *testing.T) {
	in := fixtureDir(t)
	out := t.TempDir()

	p := New(Config{
		InputDir:     in,
		OutputDir:    out,
		Profile:      profile.Get("balanced"),
		Workers:      2,
		Placeholders: true,
	})
	m, err := p.Run()
	require.NoError(t, err)
	require.Len(t, m.Assets, 3)
	assert.Equal(t, 3, m.Stats.TotalAssets)
	require.NotNil(t, m.BuildInfo)
	assert.Equal(t, 2, m.BuildInfo.Workers)

	for key, a := range m.Assets {
		require.NoError(t, blurhash.Validate(a.BlurHash), key)
		assert.Equal(t, 4, a.ComponentsX, key)
		assert.Equal(t, 3, a.ComponentsY, key)
		assert.Len(t, a.SourceHash, 16, key)
		require.NotNil(t, a.AvgColor, key)
		require.NotEmpty(t, a.Placeholders, key)

		for _, ph := range a.Placeholders {
			info, err := os.Stat(filepath.Join(out, ph.Path))
			require.NoError(t, err, ph.Path)
			assert.Equal(t, ph.Size, info.Size(), ph.Path)
			assert.Equal(t, "png", ph.Format)
		}
	}

	banner := m.Assets["banner"]
	assert.Equal(t, 200, banner.Original.Width)
	assert.InDelta(t, 2.0, banner.AspectRatio, 1e-9)
	// 32 and retina 64; both fit in a 200px original.
	assert.Len(t, banner.Placeholders, 2)
	assert.Equal(t, 16, banner.Placeholders[0].Height)
}

func TestPipelineRun_HashesOnly(t *testing.T) {
	in := fixtureDir(t)
	out := t.TempDir()

	m, err := New(Config{InputDir: in, OutputDir: out, Profile: profile.Get("minimal")}).Run()
	require.NoError(t, err)
	for key, a := range m.Assets {
		assert.Empty(t, a.Placeholders, key)
		assert.Len(t, a.BlurHash, blurhash.EncodedLen(3, 3), key)
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPipelineRun_Empty(t *testing.T) {
	_, err := New(Config{InputDir: t.TempDir(), OutputDir: t.TempDir(), Profile: profile.Get("")}).Run()
	assert.Error(t, err)
}

func TestPipelineRun_AllFail(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0o644))
	_, err := New(Config{InputDir: in, OutputDir: t.TempDir(), Profile: profile.Get("balanced")}).Run()
	assert.ErrorContains(t, err, "all 1 images failed")
}
