package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/AnyUserName/blurhash-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	buildOutDir       string
	buildProfile      string
	buildWorkers      int
	buildWidths       []int
	buildX            int
	buildY            int
	buildMaxSize      int
	buildPunch        float64
	buildPlaceholders bool
	buildCompress     bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Compute blurhashes for a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
computes a BlurHash and average color per image, optionally renders
placeholder files, and writes a manifest.

Placeholder filenames are content-addressed: <key>.<w>.<h>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./blurhash_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "balanced", "blurhash profile")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntSliceVar(&buildWidths, "widths", nil, "placeholder widths (overrides profile)")
	buildCmd.Flags().IntVarP(&buildX, "components-x", "x", 0, "horizontal components 1-9 (0 = profile default)")
	buildCmd.Flags().IntVarP(&buildY, "components-y", "y", 0, "vertical components 1-9 (0 = profile default)")
	buildCmd.Flags().IntVar(&buildMaxSize, "max-size", -1, "downscale sources to fit this box (0 = off, -1 = profile default)")
	buildCmd.Flags().Float64Var(&buildPunch, "punch", 0, "placeholder contrast (0 = profile default)")
	buildCmd.Flags().BoolVar(&buildPlaceholders, "placeholders", true, "render placeholder images next to the manifest")
	buildCmd.Flags().BoolVar(&buildCompress, "zstd", false, "write the manifest zstd-compressed (.json.zst)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile.
	prof, err := resolveProfile(buildProfile, buildX, buildY, buildMaxSize)
	if err != nil {
		return err
	}
	if buildWidths != nil {
		prof.Widths = buildWidths
	}
	if buildPunch > 0 {
		prof.Punch = buildPunch
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (components=%dx%d, max-size=%d, widths=%v)",
		prof.Name, prof.ComponentsX, prof.ComponentsY, prof.MaxSourceDim, prof.Widths)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:     absInput,
		OutputDir:    absOutput,
		Profile:      prof,
		Workers:      buildWorkers,
		Verbose:      verbose,
		Placeholders: buildPlaceholders,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	name := manifest.FileName
	if buildCompress {
		name += ".zst"
	}
	manifestPath := filepath.Join(absOutput, name)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	var manifestSize int64
	if info, err := os.Stat(manifestPath); err == nil {
		manifestSize = info.Size()
	}

	printBuildReport(cmd.OutOrStdout(), m, name, manifestSize, time.Since(start))
	return nil
}

func printBuildReport(out io.Writer, m *manifest.Manifest, manifestName string, manifestSize int64, elapsed time.Duration) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "╔══════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║             blurhash build complete              ║")
	fmt.Fprintln(out, "╚══════════════════════════════════════════════════╝")
	fmt.Fprintln(out)

	stats := m.Stats
	avgHash := float64(0)
	if stats.TotalAssets > 0 {
		avgHash = float64(stats.TotalHashBytes) / float64(stats.TotalAssets)
	}

	fmt.Fprintf(out, "  Assets:        %d\n", stats.TotalAssets)
	fmt.Fprintf(out, "  Input size:    %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Fprintf(out, "  Hash size:     %s (avg %.1f chars)\n", formatBytes(int64(stats.TotalHashBytes)), avgHash)
	if stats.TotalPlaceholders > 0 {
		fmt.Fprintf(out, "  Placeholders:  %d (%s)\n", stats.TotalPlaceholders, formatBytes(stats.TotalPlaceholderBytes))
	}
	fmt.Fprintf(out, "  Time:          %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Fprintf(out, "  Workers:       %d\n", m.BuildInfo.Workers)
	}
	fmt.Fprintln(out)

	// First 10 assets by key.
	if len(m.Assets) > 0 {
		keys := make([]string, 0, len(m.Assets))
		for k := range m.Assets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := len(keys)
		if n > 10 {
			n = 10
		}
		fmt.Fprintf(out, "  Hashes (%d of %d):\n", n, len(keys))
		for _, k := range keys[:n] {
			fmt.Fprintf(out, "    %-40s %s\n", truncKey(k, 40), m.Assets[k].BlurHash)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "  Manifest:      %s (%s)\n", manifestName, formatBytes(manifestSize))
	fmt.Fprintln(out)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
