package palette

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ext = ".palette"

// Loader finds palettes by name or path.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Inline holds palettes defined in the config file; they shadow every
	// other source.
	Inline map[string][]string
}

// NewLoader creates a Loader with the standard directories.
func NewLoader(configDir string, inline map[string][]string) *Loader {
	return &Loader{
		ConfigDir: filepath.Join(configDir, "palettes"),
		SystemDir: "/usr/share/pixelart/palettes",
		Inline:    inline,
	}
}

// Load resolves name in order: inline config palette, existing file path,
// embedded defaults, ConfigDir, SystemDir. An empty name is DefaultName.
func (l *Loader) Load(name string) (*Palette, error) {
	if name == "" {
		name = DefaultName
	}
	if entries, ok := l.Inline[name]; ok {
		return FromList(name, entries)
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(strings.TrimSuffix(filepath.Base(name), ext), name)
	}

	filename := name
	if !strings.HasSuffix(filename, ext) {
		filename += ext
	}
	short := strings.TrimSuffix(filename, ext)

	if f, err := embedded.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return Parse(short, f)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return parseFile(short, path)
		}
	}
	return nil, fmt.Errorf("palette %q not found", name)
}

// Names lists every palette Load can find by name, sorted.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	for name := range l.Inline {
		seen[name] = true
	}
	if entries, err := fs.ReadDir(embedded, "defaults"); err == nil {
		for _, e := range entries {
			seen[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
				seen[strings.TrimSuffix(e.Name(), ext)] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFile(name, path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(name, f)
}
