package mapconf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/match"
)

// Loader builds matches from map documents on disk.
type Loader struct {
	dir  string
	opts match.Options
}

// Result is the outcome of loading one map file. Match is nil only when the
// file could not be read or parsed.
type Result struct {
	Path  string
	Match *match.Match
	Err   error
}

// NewLoader creates a loader for the maps in dir. opts is the template for
// every match it creates; the match id is taken from each document.
func NewLoader(dir string, opts match.Options) *Loader {
	return &Loader{dir: dir, opts: opts}
}

// Dir returns the maps directory.
func (l *Loader) Dir() string { return l.dir }

// IsMapFile reports whether name looks like a map document.
func IsMapFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFile reads, builds and loads one map. The returned match carries every
// diagnostic; the error is non-nil when the file is unreadable or a fatal
// diagnostic was recorded.
func (l *Loader) LoadFile(path string) (*match.Match, error) {
	log.Trace("Loading map file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.LoadBytes(data, path)
}

// LoadBytes is LoadFile for a document already in memory. name is used in
// diagnostics and as the fallback match id.
func (l *Loader) LoadBytes(data []byte, name string) (*match.Match, error) {
	doc, err := Parse(data)
	if err != nil {
		log.Trace("  FAILED to parse: %v", err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	opts := l.opts
	opts.ID = doc.Name
	if opts.ID == "" {
		opts.ID = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	m := match.New(opts)
	Build(m, doc, name)
	log.Trace("  Built %d elements from %s", doc.Len(), name)

	if err := m.Load(); err != nil {
		return m, err
	}
	return m, nil
}

// LoadDir loads every map document in the directory, in name order. A
// missing directory yields no results.
func (l *Loader) LoadDir() ([]Result, error) {
	if l.dir == "" {
		log.Trace("Maps directory not configured, skipping")
		return nil, nil
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Trace("  Maps directory does not exist: %s", l.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read maps directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsMapFile(entry.Name()) {
			log.Trace("  Skipping non-YAML: %s", entry.Name())
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		path := filepath.Join(l.dir, name)
		m, err := l.LoadFile(path)
		if err != nil {
			log.Warn("Failed to load map %s: %v", name, err)
		}
		results = append(results, Result{Path: path, Match: m, Err: err})
	}
	log.Trace("Total maps loaded: %d", len(results))
	return results, nil
}
