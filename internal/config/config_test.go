package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	input := `
width = 32
height = 16
background = "#FFFFFF"
color = "red"
tool = "line"
save_dir = "/tmp/art"
palette = "mine"
undo_window_ms = 250

[notify]
save = true
copy = false
export = true

[palettes.mine]
colors = ["#000000", "Sky: #88ccff"]
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 16 {
		t.Errorf("size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.BackgroundColor() != "#ffffff" || cfg.InkColor() != "#ff0000" {
		t.Errorf("colours %q %q", cfg.BackgroundColor(), cfg.InkColor())
	}
	if cfg.Tool != "line" || cfg.SaveDir != "/tmp/art" || cfg.Palette != "mine" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.UndoWindow() != 250*time.Millisecond {
		t.Errorf("undo window %v", cfg.UndoWindow())
	}
	if cfg.Scale != 10 || cfg.MaxImport != 100 {
		t.Errorf("defaults lost: scale %d max_import %d", cfg.Scale, cfg.MaxImport)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy || !cfg.Notify.Export {
		t.Errorf("notify %+v", cfg.Notify)
	}
	if got := cfg.Palettes["mine"].Colors; len(got) != 2 || got[1] != "Sky: #88ccff" {
		t.Errorf("palette %v", got)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for input, key := range map[string]string{
		"width = 0":            "width",
		`background = "nope"`: "background",
		"scale = -1":           "scale",
		"history_limit = -2":   "history_limit",
		"mystery = 1":          "mystery",
	} {
		_, err := Parse(strings.NewReader(input))
		if err == nil {
			t.Fatalf("Parse(%q) succeeded", input)
		}
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("Parse(%q) error %q does not name %s", input, err, key)
		}
	}
}

func TestCircular(t *testing.T) {
	cfg := New()
	cfg.Width = 12
	cfg.Palette = "custom"
	cfg.Notify.Copy = true
	cfg.Palettes["custom"] = Palette{Colors: []string{"#112233", "#445566"}}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, cfg.String())
	}
	if cfg2.Width != 12 || cfg2.Palette != "custom" || cfg2.Notify != cfg.Notify {
		t.Errorf("round trip lost values: %+v", cfg2)
	}
	if got := cfg2.Palettes["custom"].Colors; len(got) != 2 || got[0] != "#112233" {
		t.Errorf("palette %v", got)
	}
}

func TestLoaderPrefersOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")
	override := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(override, []byte("width = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("v1", override).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 7 {
		t.Fatalf("width %d, want 7", cfg.Width)
	}
}

func TestLoaderDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")
	l := NewLoader("v1", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("found config %q in empty home", p)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 60 || cfg.Height != 30 {
		t.Fatalf("defaults %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg := New()
	cfg.Scale = 4
	if err := Save(DefaultPath(), cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "pixelart", "config.toml"); DefaultPath() != want {
		t.Fatalf("DefaultPath = %q, want %q", DefaultPath(), want)
	}
	got, err := NewLoader("v1", "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Scale != 4 {
		t.Fatalf("scale %d", got.Scale)
	}
}

func TestExpandHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	if got := ExpandHome("~/art"); got != filepath.Join(dir, "art") {
		t.Fatalf("ExpandHome(~/art) = %q", got)
	}
	if got := ExpandHome("~"); got != dir {
		t.Fatalf("ExpandHome(~) = %q", got)
	}
	if got := ExpandHome("/tmp/~x"); got != "/tmp/~x" {
		t.Fatalf("ExpandHome left %q", got)
	}
}
