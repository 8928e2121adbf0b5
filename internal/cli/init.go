package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/joinpreview/pkg/errors"
	joinio "github.com/matzehuels/joinpreview/pkg/io"
)

const defaultInputFile = "world.toml"

// initCommand creates the init command, which writes a sample input file.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a sample card input file",
		Example: `  joinpreview init
  joinpreview init cards/lobby.toml
  joinpreview init -   # print to stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultInputFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				return joinio.WriteSampleInput(c.Out)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
			}
			if err := joinio.WriteSampleInput(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess(c.Out, "Wrote %s", StyleHighlight.Render(path))
			printNextStep(c.Out, "Render it", fmt.Sprintf("%s render %s", appName, path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
