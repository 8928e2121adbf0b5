package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	var noDesc bool

	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for joinpreview.

  bash:        source <(joinpreview completion bash)
  zsh:         joinpreview completion zsh > "${fpath[1]}/_joinpreview"
  fish:        joinpreview completion fish | source
  powershell:  joinpreview completion powershell | Out-String | Invoke-Expression

Template and format flags complete to their allowed values.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.Out, !noDesc)
			case "zsh":
				if noDesc {
					return root.GenZshCompletionNoDesc(c.Out)
				}
				return root.GenZshCompletion(c.Out)
			case "fish":
				return root.GenFishCompletion(c.Out, !noDesc)
			case "powershell":
				if noDesc {
					return root.GenPowerShellCompletion(c.Out)
				}
				return root.GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "omit completion descriptions")

	return cmd
}
