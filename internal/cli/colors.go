package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/source"
)

// colorsCommand creates the colors command, which prints the theme an
// image would give a card.
func (c *CLI) colorsCommand() *cobra.Command {
	var (
		cf      cacheFlags
		asJSON  bool
		buckets int
	)

	cmd := &cobra.Command{
		Use:   "colors <image>",
		Short: "Show the card colors extracted from an image",
		Example: `  joinpreview colors cover.png
  joinpreview colors https://example.com/cover.jpg --buckets 8
  joinpreview colors cover.png --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinner(ctx, os.Stderr, "Loading "+args[0])
			spin.Start()
			img, theme, err := runner.LoadImage(ctx, args[0])
			spin.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(theme)
			}

			out := c.Out
			if img == nil {
				printInfo(out, "No image, using fallback colors")
			} else {
				b := img.Pixels.Bounds()
				printSuccess(out, "%s", StyleHighlight.Render(img.Ref))
				printDetail(out, "%dx%d · %s", b.Dx(), b.Dy(), img.ContentType)
			}
			printTheme(out, theme)
			if theme == palette.FallbackTheme() && img != nil {
				printWarning(out, "No dominant colors found, using fallback colors")
			}

			if buckets > 0 && img != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, StyleTitle.Render("Dominant buckets"))
				list := palette.Buckets(source.Pixels(img.Pixels))
				for i, bk := range list {
					if i >= buckets {
						break
					}
					printKeyValue(out, fmt.Sprintf("#%d", i+1), swatch(bk.Color)+" "+StyleDim.Render(fmt.Sprintf("%d px", bk.Count)))
				}
			}
			return nil
		},
	}

	cf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the theme as JSON")
	cmd.Flags().IntVar(&buckets, "buckets", 0, "also list the N largest color buckets")

	return cmd
}
