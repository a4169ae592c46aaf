package cmd

import (
	"fmt"
	"io"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <hash>",
	Short: "Validate a BlurHash and print its decoded fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	hash := args[0]
	out := cmd.OutOrStdout()

	h, err := blurhash.Parse(hash)
	if err != nil {
		fmt.Fprintf(out, "  ✗ %s\n", err)
		return fmt.Errorf("invalid blurhash: %w", err)
	}
	avg, err := blurhash.AverageColor(hash)
	if err != nil {
		return err
	}

	printInspect(out, hash, h, avg)
	return nil
}

func printInspect(out io.Writer, hash string, h *blurhash.Hash, avg [3]uint8) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  ✓ Valid blurhash (%d chars)\n", len(hash))
	fmt.Fprintf(out, "  Components:    %d x %d (%d AC terms)\n",
		h.ComponentsX, h.ComponentsY, h.ComponentsX*h.ComponentsY-1)
	fmt.Fprintf(out, "  AC maximum:    %.4f\n", h.Maximum)
	fmt.Fprintf(out, "  Average color: #%02x%02x%02x  rgb(%d, %d, %d)\n",
		avg[0], avg[1], avg[2], avg[0], avg[1], avg[2])
	fmt.Fprintln(out)

	if !verbose {
		return
	}
	fmt.Fprintln(out, "  Coefficients (linear RGB):")
	for j := 0; j < h.ComponentsY; j++ {
		for i := 0; i < h.ComponentsX; i++ {
			c := h.Colors[j*h.ComponentsX+i]
			fmt.Fprintf(out, "    [%d,%d] %+.4f %+.4f %+.4f\n", i, j, c[0], c[1], c[2])
		}
	}
	fmt.Fprintln(out)
}
