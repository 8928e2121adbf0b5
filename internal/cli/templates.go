package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/joinpreview/pkg/pipeline"
	"github.com/matzehuels/joinpreview/pkg/templates"
)

// templatesCommand creates the templates command.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the card templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range templates.All() {
				name := StyleHighlight.Render(fmt.Sprintf("%-8s", k))
				if k == pipeline.DefaultTemplate {
					name += StyleDim.Render(" (default)")
				}
				fmt.Fprintln(c.Out, name)
				printDetail(c.Out, "%s", templateBlurbs[k])
			}
			return nil
		},
	}
}

func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, len(templates.All()))
	for _, k := range templates.All() {
		out = append(out, fmt.Sprintf("%s\t%s", k, templateBlurbs[k]))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
}
