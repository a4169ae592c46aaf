package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/encoder"
	"github.com/AnyUserName/blurhash-cli/internal/hasher"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: read, fingerprint, decode,
// downscale, blurhash, and optional placeholder renders.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW := bounds.Dx()
	origH := bounds.Dy()
	if origW <= 0 || origH <= 0 {
		result.err = fmt.Errorf("decode %s: empty image", src.RelPath)
		return result
	}

	hash, err := EncodeSource(img, cfg.Profile)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}

	avg, err := blurhash.AverageColor(hash)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:  origW,
			Height: origH,
			Format: src.Format,
			Size:   src.Size,
		},
		BlurHash:    hash,
		ComponentsX: cfg.Profile.ComponentsX,
		ComponentsY: cfg.Profile.ComponentsY,
		AspectRatio: float64(origW) / float64(origH),
		AvgColor:    &avg,
		SourceHash:  hasher.ContentHash(data, 16),
	}

	if !cfg.Placeholders {
		return result
	}

	enc := registry.Get(cfg.Profile.Format)
	if enc == nil {
		enc = registry.Get("png")
	}

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	for _, w := range cfg.Profile.EffectiveWidths(origW) {
		// Proportional height.
		h := int(float64(origH) * float64(w) / float64(origW))
		if h < 1 {
			h = 1
		}

		rendered, err := blurhash.DecodeImage(hash, w, h, cfg.Profile.Punch)
		if err != nil {
			result.err = fmt.Errorf("render %s@%dx%d: %w", src.Key, w, h, err)
			return result
		}

		out, err := enc.Encode(rendered, 0)
		if err != nil {
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[blurhash] warn: encode %s@%dx%d as %s: %v\n",
					src.Key, w, h, enc.Format(), err)
			}
			continue
		}

		contentHash := hasher.ContentHash(out, 16)

		// key.w.h.hash.ext
		fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
			filepath.Base(src.Key), w, h, contentHash[:8], enc.Extension())
		relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

		if err := os.WriteFile(filepath.Join(cfg.OutputDir, relPath), out, 0o644); err != nil {
			result.err = fmt.Errorf("write %s: %w", relPath, err)
			return result
		}

		result.asset.Placeholders = append(result.asset.Placeholders, manifest.Placeholder{
			Format: enc.Format(),
			Width:  w,
			Height: h,
			Size:   int64(len(out)),
			Hash:   contentHash,
			Path:   relPath,
		})
	}

	return result
}

// EncodeSource downscales img to the profile's source box (never
// upscaling) and computes its blurhash.
func EncodeSource(img image.Image, p profile.Profile) (string, error) {
	b := img.Bounds()
	if p.MaxSourceDim > 0 && (b.Dx() > p.MaxSourceDim || b.Dy() > p.MaxSourceDim) {
		img = imaging.Fit(img, p.MaxSourceDim, p.MaxSourceDim, imaging.Box)
	}
	return blurhash.EncodeImage(img, p.ComponentsX, p.ComponentsY)
}
