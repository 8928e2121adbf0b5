package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/joinpreview/pkg/errors"
)

// Input is the content of one card as stored in an input file.
type Input struct {
	WorldName string   `toml:"world_name" json:"world_name"`
	Image     string   `toml:"image,omitempty" json:"image,omitempty"`
	Players   []string `toml:"players" json:"players"`
	Dark      bool     `toml:"dark_mode" json:"dark_mode"`
	ShowAll   bool     `toml:"show_all_players" json:"show_all_players"`
	Template  string   `toml:"template,omitempty" json:"template,omitempty"`
}

// Format is an input file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension. Unknown extensions
// are read as TOML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// ReadInput reads and validates the input file at path. "-" reads TOML
// from stdin.
func ReadInput(path string) (*Input, error) {
	if path == "-" {
		return DecodeInput(os.Stdin, FormatTOML)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	in, err := DecodeInput(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// DecodeInput decodes and validates an input from r.
func DecodeInput(r io.Reader, format Format) (*Input, error) {
	var in Input
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json input")
		}
	default:
		md, err := toml.NewDecoder(r).Decode(&in)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml input")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown input key %q", undecoded[0].String())
		}
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Validate checks field values and trims player names. Blank player
// entries are dropped.
func (in *Input) Validate() error {
	if err := errors.ValidateWorldName(in.WorldName); err != nil {
		return err
	}
	if err := errors.ValidateImageRef(in.Image); err != nil {
		return err
	}
	players := in.Players[:0]
	for _, p := range in.Players {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := errors.ValidatePlayerName(p); err != nil {
			return err
		}
		players = append(players, p)
	}
	in.Players = players
	return nil
}

// ReadPlayers reads one player name per line. Blank lines and lines
// starting with # are skipped.
func ReadPlayers(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := errors.ValidatePlayerName(line); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

// SampleInput returns the starter card written by [WriteSampleInput].
func SampleInput() Input {
	return Input{
		WorldName: "My Amazing World",
		Players:   []string{"Player 1", "Player 2", "Player 3"},
		Dark:      true,
		Template:  "modern",
	}
}

// WriteSampleInput writes the sample input as TOML.
func WriteSampleInput(w io.Writer) error {
	if _, err := io.WriteString(w, "# joinpreview card input\n"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(SampleInput())
}
