package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/encoder"
	"github.com/spf13/cobra"
)

var (
	decodeWidth   int
	decodeHeight  int
	decodePunch   float64
	decodeOut     string
	decodeQuality int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hash>",
	Short: "Render a BlurHash into a PNG or JPEG placeholder",
	Long: `Reconstructs a blurred width x height image from a BlurHash and
writes it to --out.  The output format follows the file extension
(.png, .jpg, .jpeg).  --punch > 1 exaggerates contrast.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().IntVarP(&decodeWidth, "width", "W", 32, "output width in pixels")
	decodeCmd.Flags().IntVarP(&decodeHeight, "height", "H", 32, "output height in pixels")
	decodeCmd.Flags().Float64Var(&decodePunch, "punch", 1, "AC contrast multiplier (<= 0 means 1)")
	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "placeholder.png", "output file")
	decodeCmd.Flags().IntVarP(&decodeQuality, "quality", "q", 0, "JPEG quality 1-100 (0 = default)")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	hash := args[0]

	enc, err := encoder.NewRegistry().ForPath(decodeOut)
	if err != nil {
		return err
	}

	img, err := blurhash.DecodeImage(hash, decodeWidth, decodeHeight, decodePunch)
	if err != nil {
		return fmt.Errorf("decode %q: %w", hash, err)
	}

	data, err := enc.Encode(img, decodeQuality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := os.WriteFile(decodeOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", decodeOut, err)
	}

	logVerbose("wrote %s (%dx%d %s, %s)", decodeOut, decodeWidth, decodeHeight, enc.Format(), formatBytes(int64(len(data))))
	return nil
}
