package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/joinpreview/pkg/errors"
)

func TestDefaultFilename(t *testing.T) {
	tests := []struct {
		world, format, want string
	}{
		{"Sky Islands", "svg", "sky-islands.svg"},
		{"  Tom & Jerry's World!  ", "png", "tom-jerry-s-world.png"},
		{"", "svg", "preview.svg"},
		{"???", "png", "preview.png"},
		{"Ünïcode Wörld", "json", "ünïcode-wörld.json"},
		{"Café Lounge", "svg", "café-lounge.svg"},
		{"スカイアイランド", "svg", "スカイアイランド.svg"},
		{"東京 ワールド", "png", "東京-ワールド.png"},
		{"../a/b:c*?", "svg", "a-b-c.svg"},
		{".hidden\x00name", "svg", "hidden-name.svg"},
	}
	for _, tt := range tests {
		if got := DefaultFilename(tt.world, tt.format); got != tt.want {
			t.Errorf("DefaultFilename(%q, %q) = %q, want %q", tt.world, tt.format, got, tt.want)
		}
	}
}

func TestDefaultFilename_Long(t *testing.T) {
	got := DefaultFilename(strings.Repeat("a", 200), "svg")
	if len(got) != 64+len(".svg") {
		t.Errorf("len = %d", len(got))
	}

	got = DefaultFilename(strings.Repeat("東", 100), "svg")
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, ".svg")); n != 64 {
		t.Errorf("slug runes = %d, want 64", n)
	}

	got = DefaultFilename(strings.Repeat("a", 63)+" bc", "svg")
	if got != strings.Repeat("a", 63)+".svg" {
		t.Errorf("separator at the limit kept: %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "card.svg")
	if err := WriteFile(path, []byte("<svg/>")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "<svg/>" {
		t.Fatalf("ReadFile = %q, %v", got, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestDecodeInput_TOML(t *testing.T) {
	src := `
world_name = "Sky Islands"
image = "https://example.com/sky.png"
players = ["alice", "  bob ", "", "carol"]
dark_mode = true
show_all_players = true
template = "bold"
`
	in, err := DecodeInput(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if in.WorldName != "Sky Islands" || !in.Dark || !in.ShowAll || in.Template != "bold" {
		t.Errorf("got %+v", in)
	}
	if want := []string{"alice", "bob", "carol"}; !slices.Equal(in.Players, want) {
		t.Errorf("Players = %v, want %v", in.Players, want)
	}
}

func TestDecodeInput_JSON(t *testing.T) {
	src := `{"world_name": "J", "players": ["a"], "dark_mode": false}`
	in, err := DecodeInput(strings.NewReader(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if in.WorldName != "J" || len(in.Players) != 1 {
		t.Errorf("got %+v", in)
	}
}

func TestDecodeInput_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
	}{
		{"bad toml", "world_name = ", FormatTOML},
		{"unknown toml key", `world = "x"`, FormatTOML},
		{"unknown json key", `{"world": "x"}`, FormatJSON},
		{"bad image url", `image = "ftp://example.com/a.png"`, FormatTOML},
		{"control chars", "world_name = \"a\\u0007b\"", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInput(strings.NewReader(tt.src), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) == "" {
				t.Errorf("error %v has no code", err)
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.json")
	if err := os.WriteFile(path, []byte(`{"world_name": "File", "players": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := ReadInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if in.WorldName != "File" {
		t.Errorf("WorldName = %q", in.WorldName)
	}

	_, err = ReadInput(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestReadPlayers(t *testing.T) {
	got, err := ReadPlayers(strings.NewReader("alice\n\n# comment\n  bob  \n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"alice", "bob"}; !slices.Equal(got, want) {
		t.Errorf("ReadPlayers = %v, want %v", got, want)
	}
}

func TestWriteSampleInput_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSampleInput(&buf); err != nil {
		t.Fatal(err)
	}
	in, err := DecodeInput(&buf, FormatTOML)
	if err != nil {
		t.Fatalf("sample does not decode: %v", err)
	}
	want := SampleInput()
	if in.WorldName != want.WorldName || !slices.Equal(in.Players, want.Players) || in.Template != want.Template {
		t.Errorf("round trip = %+v, want %+v", in, want)
	}
}
