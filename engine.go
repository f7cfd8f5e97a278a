// Package entforge implements a small template engine for code generation:
// {{ expression }} interpolation with pipe filters, {% if %}/{% for %} blocks,
// and an engine that loads template files and caches parsed templates.
package entforge

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

var ValidFileExtensions = []string{".stub", ".tmpl"}

// Engine loads named templates from a filesystem and keeps a parse cache for
// anonymous templates parsed from raw strings. All maps are guarded by mu, so
// a single Engine may serve concurrent renders.
type Engine struct {
	dirPrefix string
	fs        fs.FS
	mu        sync.Mutex
	templates map[string]*Template
	cache     map[string]*Template
}

// NewEngine creates a new engine pointing to a directory with template files.
func NewEngine(dir string) *Engine {
	return NewEngineFS(os.DirFS(dir))
}

// NewEngineFS creates a new engine pointing to a filesystem.
// When using embed.FS, pass the embedded folder as prefix.
func NewEngineFS(fsys fs.FS, prefix ...string) *Engine {
	var dirPrefix string
	if len(prefix) > 0 {
		dirPrefix = prefix[0]
	}
	return &Engine{
		dirPrefix: dirPrefix,
		fs:        fsys,
		templates: map[string]*Template{},
		cache:     map[string]*Template{},
	}
}

// Load reads and parses all files with a valid extension from the fs
// (recursive). Any parse failure aborts the load; the previously loaded set
// stays untouched.
func (e *Engine) Load() error {
	loaded := map[string]*Template{}
	err := fs.WalkDir(e.fs, ".", func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(ValidFileExtensions, ext) {
			return nil
		}
		f, err := e.fs.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		name := e.nameFromPath(path)
		tmpl, err := ParseNamed(name, string(raw))
		if err != nil {
			return err
		}
		loaded[name] = tmpl
		return nil
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	for name, tmpl := range loaded {
		e.templates[name] = tmpl
	}
	e.mu.Unlock()
	return nil
}

// Template returns a loaded template by name.
func (e *Engine) Template(name string) (*Template, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tmpl, ok := e.templates[normalizeName(name)]
	return tmpl, ok
}

// Names returns the names of all loaded templates, sorted.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse parses raw template text, caching the result by content. Repeated
// parses of identical text return the same Template; since parsing is pure, a
// racing double parse would be wasteful but not incorrect, so the lock is not
// held across the parse itself.
func (e *Engine) Parse(raw string) (*Template, error) {
	e.mu.Lock()
	if tmpl, ok := e.cache[raw]; ok {
		e.mu.Unlock()
		return tmpl, nil
	}
	e.mu.Unlock()

	tmpl, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if cached, ok := e.cache[raw]; ok {
		tmpl = cached
	} else {
		e.cache[raw] = tmpl
	}
	e.mu.Unlock()
	return tmpl, nil
}

// Render renders the template identified by entry (e.g. "model") into writer
// with the given context.
func (e *Engine) Render(w io.Writer, entry string, ctx Context) error {
	tmpl, ok := e.Template(entry)
	if !ok {
		return fmt.Errorf("entforge: template %s not loaded", entry)
	}
	return tmpl.Execute(w, ctx)
}

// RenderString renders the named template and returns the output.
func (e *Engine) RenderString(entry string, ctx Context) (string, error) {
	tmpl, ok := e.Template(entry)
	if !ok {
		return "", fmt.Errorf("entforge: template %s not loaded", entry)
	}
	return tmpl.Render(ctx)
}

// nameFromPath converts a filesystem path to a template name, relative to the
// engine dir.
func (e *Engine) nameFromPath(path string) string {
	rel := path
	if e.dirPrefix != "" {
		r, err := filepath.Rel(e.dirPrefix, path)
		if err != nil {
			r = filepath.Base(path)
		}
		rel = r
	}
	return normalizeName(filepath.ToSlash(rel))
}

// normalizeName: trim quotes/spaces, drop the extension, normalize slashes
func normalizeName(n string) string {
	n = strings.TrimSpace(n)
	n = strings.Trim(n, `"' `)
	n = strings.TrimSuffix(n, filepath.Ext(n))
	return filepath.ToSlash(n)
}
