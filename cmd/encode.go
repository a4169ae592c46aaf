package cmd

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/AnyUserName/blurhash-cli/internal/pipeline"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	encodeProfile string
	encodeX       int
	encodeY       int
	encodeMaxSize int
)

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Print the BlurHash of an image file",
	Long: `Decodes an image (png, jpeg, gif, webp, bmp, tiff), downscales it to
fit --max-size, and prints its BlurHash.  Component counts default to
the selected profile.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeProfile, "profile", "p", profile.DefaultName, "blurhash profile")
	encodeCmd.Flags().IntVarP(&encodeX, "components-x", "x", 0, "horizontal components 1-9 (0 = profile default)")
	encodeCmd.Flags().IntVarP(&encodeY, "components-y", "y", 0, "vertical components 1-9 (0 = profile default)")
	encodeCmd.Flags().IntVar(&encodeMaxSize, "max-size", -1, "downscale source to fit this box first (0 = off, -1 = profile default)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	prof, err := resolveProfile(encodeProfile, encodeX, encodeY, encodeMaxSize)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	logVerbose("source: %s %dx%d, components %dx%d, max-size %d",
		format, img.Bounds().Dx(), img.Bounds().Dy(), prof.ComponentsX, prof.ComponentsY, prof.MaxSourceDim)

	hash, err := pipeline.EncodeSource(img, prof)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// resolveProfile applies flag overrides to a named profile.  Zero
// components and negative maxSize keep the profile value.
func resolveProfile(name string, x, y, maxSize int) (profile.Profile, error) {
	if !lo.Contains(profile.Names(), name) {
		return profile.Profile{}, fmt.Errorf("unknown profile %q (available: %s)",
			name, strings.Join(profile.Names(), ", "))
	}
	prof := profile.Get(name)
	if x > 0 {
		prof.ComponentsX = x
	}
	if y > 0 {
		prof.ComponentsY = y
	}
	if maxSize >= 0 {
		prof.MaxSourceDim = maxSize
	}
	return prof, nil
}
