package cli

import (
	"os"

	"github.com/spf13/cobra"

	joinio "github.com/matzehuels/joinpreview/pkg/io"
	"github.com/matzehuels/joinpreview/pkg/pipeline"
)

// cardFlags are the card content flags shared by render, layout and watch.
// Flags that were set override the input file.
type cardFlags struct {
	world       string
	image       string
	players     []string
	playersFile string
	dark        bool
	showAll     bool
	template    string
}

func (f *cardFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.world, "world", "", "world name shown as the card title")
	fs.StringVar(&f.image, "image", "", "cover image: file path, http(s) URL or data: URI")
	fs.StringArrayVarP(&f.players, "player", "p", nil, "player name (repeatable)")
	fs.StringVar(&f.playersFile, "players-file", "", "file with one player name per line")
	fs.BoolVar(&f.dark, "dark", false, "use the dark background")
	fs.BoolVar(&f.showAll, "show-all", false, "show every player instead of a \"+N more\" chip")
	fs.StringVarP(&f.template, "template", "t", "", "template: modern (default), minimal, bold")

	_ = cmd.RegisterFlagCompletionFunc("template", completeTemplates)
}

// input reads the input file at path (if any) and applies the flags that
// were set on cmd.
func (f *cardFlags) input(cmd *cobra.Command, path string) (*joinio.Input, error) {
	in := &joinio.Input{}
	if path != "" {
		var err error
		if in, err = joinio.ReadInput(path); err != nil {
			return nil, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("world") {
		in.WorldName = f.world
	}
	if fs.Changed("image") {
		in.Image = f.image
	}
	if fs.Changed("dark") {
		in.Dark = f.dark
	}
	if fs.Changed("show-all") {
		in.ShowAll = f.showAll
	}
	if fs.Changed("template") {
		in.Template = f.template
	}

	// --player and --players-file together replace the file's roster.
	if fs.Changed("player") || fs.Changed("players-file") {
		players := append([]string(nil), f.players...)
		if f.playersFile != "" {
			fromFile, err := readPlayersFile(f.playersFile)
			if err != nil {
				return nil, err
			}
			players = append(players, fromFile...)
		}
		in.Players = players
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// options reads the card input and maps it to pipeline options.
func (f *cardFlags) options(cmd *cobra.Command, path string) (pipeline.Options, error) {
	in, err := f.input(cmd, path)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.OptionsFromInput(in), nil
}

func readPlayersFile(path string) ([]string, error) {
	if path == "-" {
		return joinio.ReadPlayers(os.Stdin)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return joinio.ReadPlayers(fh)
}

// inputArg returns the optional input file argument.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
