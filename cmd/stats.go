package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := resolveManifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

// resolveManifestPath accepts a manifest file or an output directory
// holding a plain or zstd manifest.
func resolveManifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range []string{manifest.FileName, manifest.FileName + ".zst"} {
		p := filepath.Join(path, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no %s in %s", manifest.FileName, path)
}

func printStats(out io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(out, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(out, "  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Fprintf(out, "  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(out, "  Components:       %d x %d\n", m.BuildInfo.ComponentsX, m.BuildInfo.ComponentsY)
	}
	fmt.Fprintln(out)

	s := m.Stats
	fmt.Fprintf(out, "  Total assets:       %d\n", s.TotalAssets)
	fmt.Fprintf(out, "  Total placeholders: %d\n", s.TotalPlaceholders)
	fmt.Fprintf(out, "  Input size:         %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(out, "  Hash bytes:         %s\n", formatBytes(int64(s.TotalHashBytes)))
	fmt.Fprintf(out, "  Placeholder size:   %s\n", formatBytes(s.TotalPlaceholderBytes))
	fmt.Fprintln(out)

	assets := lo.Values(m.Assets)

	// Per-grid breakdown.
	grids := lo.CountValuesBy(assets, func(a manifest.Asset) string {
		return fmt.Sprintf("%dx%d", a.ComponentsX, a.ComponentsY)
	})
	gridKeys := lo.Keys(grids)
	sort.Strings(gridKeys)
	fmt.Fprintln(out, "  Component grids:")
	for _, g := range gridKeys {
		fmt.Fprintf(out, "    %-5s  %4d assets\n", g, grids[g])
	}
	fmt.Fprintln(out)

	// Per-source-format breakdown.
	formats := lo.CountValuesBy(assets, func(a manifest.Asset) string { return a.Original.Format })
	formatKeys := lo.Keys(formats)
	sort.Strings(formatKeys)
	fmt.Fprintln(out, "  Source formats:")
	for _, f := range formatKeys {
		fmt.Fprintf(out, "    %-6s  %4d files\n", f, formats[f])
	}
	fmt.Fprintln(out)

	// Warnings.
	var warnings []string
	keys := lo.Keys(m.Assets)
	sort.Strings(keys)
	for _, key := range keys {
		if err := blurhash.Validate(m.Assets[key].BlurHash); err != nil {
			warnings = append(warnings, fmt.Sprintf("asset %q: %v", key, err))
		}
	}
	if len(warnings) > 0 {
		fmt.Fprintf(out, "  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "    ⚠ %s\n", w)
		}
		fmt.Fprintln(out)
	}
}
