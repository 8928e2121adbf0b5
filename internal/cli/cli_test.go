package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/joinpreview/pkg/errors"
	joinio "github.com/matzehuels/joinpreview/pkg/io"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"render", "colors", "layout", "watch", "init", "templates", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"  ", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
		{"SVG, png ,", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "default names",
			output:  "",
			formats: []string{"svg", "png"},
			want:    map[string]string{"svg": "sky-islands.svg", "png": "sky-islands.png"},
		},
		{
			name:    "existing directory",
			output:  dir,
			formats: []string{"svg"},
			want:    map[string]string{"svg": filepath.Join(dir, "sky-islands.svg")},
		},
		{
			name:    "trailing separator",
			output:  "out/",
			formats: []string{"json"},
			want:    map[string]string{"json": filepath.Join("out", "sky-islands.json")},
		},
		{
			name:    "single file",
			output:  "card.image",
			formats: []string{"png"},
			want:    map[string]string{"png": "card.image"},
		},
		{
			name:    "extension replaced per format",
			output:  "card.svg",
			formats: []string{"svg", "png"},
			want:    map[string]string{"svg": "card.svg", "png": "card.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPaths(tt.output, "Sky Islands", tt.formats)
			if err != nil {
				t.Fatal(err)
			}
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("path[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CACHE_HOME only applies on unix")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(base, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestTemplatesCommand(t *testing.T) {
	out, err := run(t, "templates")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"modern", "minimal", "bold", "(default)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.toml")

	if _, err := run(t, "init", path); err != nil {
		t.Fatal(err)
	}
	in, err := joinio.ReadInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if in.WorldName != "My Amazing World" || len(in.Players) != 3 {
		t.Errorf("sample input = %+v", in)
	}

	_, err = run(t, "init", path)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init err = %v, want INVALID_PATH", err)
	}
	if _, err := run(t, "init", path, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestInitCommandStdout(t *testing.T) {
	out, err := run(t, "init", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `world_name = "My Amazing World"`) {
		t.Errorf("output = %q", out)
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	out, err := run(t, "layout", "-p", "alice", "-p", "bob", "-p", " ", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var rep layoutReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !slices.Equal(rep.Decision.Visible, []string{"alice", "bob"}) || rep.Decision.Hidden != 0 {
		t.Errorf("decision = %+v", rep.Decision)
	}
	if rep.Arrangement.Rows != 1 || len(rep.Arrangement.Chips) != 2 {
		t.Errorf("arrangement = %+v", rep.Arrangement)
	}
}

func TestLayoutCommandOverflow(t *testing.T) {
	args := []string{"layout"}
	for i := 0; i < 40; i++ {
		args = append(args, "-p", "Player"+strings.Repeat("x", i%5))
	}
	out, err := run(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "more") || !strings.Contains(out, "hidden") {
		t.Errorf("expected overflow chip and hidden count:\n%s", out)
	}
}

func TestCachePathCommand(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CACHE_HOME only applies on unix")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(base, appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCacheClearCommand(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CACHE_HOME only applies on unix")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	out, err := run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}

	// Populate the cache through a render, then clear it.
	dir := t.TempDir()
	if _, err := run(t, "render", "--world", "w", "-p", "a", "-o", dir+string(os.PathSeparator)); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("output = %q", out)
	}
}
