package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/hasher"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a manifest's hashes and check placeholder files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifestPath, err := resolveManifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	out := cmd.OutOrStdout()
	errs := validateManifest(m, filepath.Dir(manifestPath))
	if len(errs) == 0 {
		fmt.Fprintln(out, "  ✓ Manifest is valid")
		fmt.Fprintf(out, "  ✓ %d assets, %d placeholders: all hashes decode, all files present\n",
			m.Stats.TotalAssets, m.Stats.TotalPlaceholders)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		asset := m.Assets[key]

		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		// The hash must parse fully, not just pass the length check.
		h, err := blurhash.Parse(asset.BlurHash)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		} else if h.ComponentsX != asset.ComponentsX || h.ComponentsY != asset.ComponentsY {
			errs = append(errs, fmt.Sprintf("asset %q: hash declares %dx%d components, manifest says %dx%d",
				key, h.ComponentsX, h.ComponentsY, asset.ComponentsX, asset.ComponentsY))
		} else if asset.AvgColor != nil {
			avg, err := blurhash.AverageColor(asset.BlurHash)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q: avg_color: %v", key, err))
			} else if avg != *asset.AvgColor {
				errs = append(errs, fmt.Sprintf("asset %q: avg_color %v does not match hash %v",
					key, *asset.AvgColor, avg))
			}
		}

		seenPaths := map[string]bool{}
		for i, p := range asset.Placeholders {
			if p.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: empty format", key, i))
			}
			if p.Width <= 0 || p.Height <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: invalid dimensions %dx%d",
					key, i, p.Width, p.Height))
			}
			if p.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: missing hash", key, i))
			}
			if p.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: missing path", key, i))
				continue
			}

			if seenPaths[p.Path] {
				errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: duplicate path %q", key, i, p.Path))
			}
			seenPaths[p.Path] = true

			fullPath := filepath.Join(baseDir, p.Path)
			info, err := os.Stat(fullPath)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: file not found: %s", key, i, p.Path))
				continue
			}
			if p.Size > 0 && info.Size() != p.Size {
				errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, p.Size, info.Size()))
			}
			if p.Hash != "" {
				if got, err := fileHash(fullPath, len(p.Hash)); err != nil {
					errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: %v", key, i, err))
				} else if got != p.Hash {
					errs = append(errs, fmt.Sprintf("asset %q placeholder[%d]: content hash mismatch: manifest=%s, disk=%s",
						key, i, p.Hash, got))
				}
			}
		}
	}

	// Verify stats consistency.
	placeholderCount := 0
	for _, a := range m.Assets {
		placeholderCount += len(a.Placeholders)
	}
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalPlaceholders != placeholderCount {
		errs = append(errs, fmt.Sprintf("stats.total_placeholders mismatch: %d != %d", m.Stats.TotalPlaceholders, placeholderCount))
	}

	return errs
}

func fileHash(path string, hexLen int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return hasher.ContentHashReader(f, hexLen)
}
