// Package render executes text/template templates for composers, with a
// helper function set for naming conventions and an optional gofmt pass.
package render

import (
	"bytes"
	"fmt"
	"go/format"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

// Renderer parses templates once and caches them by name.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: FuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string. The name is the cache key
// and appears in error messages.
func (r *Renderer) RenderString(name, text string, data any) ([]byte, error) {
	tmpl, err := r.lookup("string:"+name, func() (*template.Template, error) {
		return template.New(name).Funcs(r.funcMap).Parse(text)
	})
	if err != nil {
		return nil, err
	}
	return execute(tmpl, data)
}

// RenderFS renders the template stored at path in fsys (typically an
// embed.FS holding a generator's templates).
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.lookup("fs:"+path, func() (*template.Template, error) {
		text, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template '%s': %w", path, err)
		}
		return template.New(path).Funcs(r.funcMap).Parse(string(text))
	})
	if err != nil {
		return nil, err
	}
	return execute(tmpl, data)
}

// RenderGo renders like RenderFS and formats the result as Go source.
func (r *Renderer) RenderGo(fsys fs.FS, path string, data any) ([]byte, error) {
	out, err := r.RenderFS(fsys, path, data)
	if err != nil {
		return nil, err
	}
	formatted, err := format.Source(out)
	if err != nil {
		return nil, fmt.Errorf("template '%s' produced invalid Go: %w", path, err)
	}
	return formatted, nil
}

func (r *Renderer) lookup(key string, parse func() (*template.Template, error)) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", strings.SplitN(key, ":", 2)[1], err)
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}
