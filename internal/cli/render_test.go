package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/joinpreview/pkg/errors"
)

func writeInput(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "world.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRenderFromInputFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "cover.png"), color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	input := writeInput(t, dir, `
world_name = "Sky Islands"
image = "`+filepath.Join(dir, "cover.png")+`"
players = ["alice", "bob"]
dark_mode = true
template = "bold"
`)
	out := filepath.Join(dir, "out") + string(os.PathSeparator)

	stdout, err := run(t, "render", input, "-o", out, "-f", "svg,json", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}

	svg, err := os.ReadFile(filepath.Join(out, "sky-islands.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("Sky Islands")) {
		t.Error("svg missing world name")
	}

	data, err := os.ReadFile(filepath.Join(out, "sky-islands.json"))
	if err != nil {
		t.Fatal(err)
	}
	var desc map[string]any
	if err := json.Unmarshal(data, &desc); err != nil {
		t.Fatal(err)
	}
	if desc["template"] != "bold" {
		t.Errorf("template = %v", desc["template"])
	}

	if !strings.Contains(stdout, "sky-islands.svg") || !strings.Contains(stdout, "2 shown") {
		t.Errorf("summary = %q", stdout)
	}
}

func TestRenderFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, `
world_name = "From File"
players = ["alice"]
template = "modern"
`)
	path := filepath.Join(dir, "card.json")

	_, err := run(t, "render", input, "--world", "From Flags", "-t", "minimal",
		"-p", "carol", "-p", "dave", "-f", "json", "-o", path, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"From Flags", "minimal", "carol", "dave"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("json missing %q", want)
		}
	}
	if bytes.Contains(data, []byte("alice")) {
		t.Error("--player should replace the file roster")
	}
}

func TestRenderPlayersFile(t *testing.T) {
	dir := t.TempDir()
	players := filepath.Join(dir, "players.txt")
	if err := os.WriteFile(players, []byte("alice\n\n# comment\nbob\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "card.json")

	stdout, err := run(t, "render", "--world", "w", "--players-file", players, "-f", "json", "-o", path, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "2 shown") {
		t.Errorf("summary = %q", stdout)
	}
}

func TestRenderMissingImage(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.png")
	path := filepath.Join(dir, "card.svg")

	stdout, err := run(t, "render", "--world", "w", "--image", missing, "-o", path, "--no-cache")
	if err != nil {
		t.Fatalf("missing image should fall back, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("card not written: %v", err)
	}
	if !strings.Contains(stdout, "fallback colors") {
		t.Errorf("summary = %q", stdout)
	}

	_, err = run(t, "render", "--world", "w", "--image", missing, "-o", path, "--no-cache", "--require-image")
	if err == nil {
		t.Error("--require-image should fail on a missing image")
	}
}

func TestRenderInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad template", []string{"-t", "retro"}, errors.ErrCodeInvalidTemplate},
		{"bad format", []string{"-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad scale", []string{"--scale", "9"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--world", "w", "--no-cache", "-o", t.TempDir()}, tt.args...)
			_, err := run(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderMissingInputFile(t *testing.T) {
	_, err := run(t, "render", filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
