package gosource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Module describes the go.mod that governs a compiled package.
type Module struct {
	Path      string // module path, e.g. "github.com/user/repo"
	GoVersion string // go directive, empty when absent
	Dir       string // folder holding go.mod
}

// ImportPath returns the import path of the package in dir, which must lie
// inside the module.
func (m *Module) ImportPath(dir string) string {
	rel, err := filepath.Rel(m.Dir, dir)
	if err != nil || rel == "." {
		return m.Path
	}
	return path.Join(m.Path, filepath.ToSlash(rel))
}

// ReadModule parses the go.mod in dir. It returns fs.ErrNotExist (wrapped)
// when dir has none.
func ReadModule(dir string) (*Module, error) {
	modPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(modPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}

	modFile, err := modfile.ParseLax(modPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}
	if modFile.Module == nil {
		return nil, fmt.Errorf("failed to parse go.mod: %s has no module directive", modPath)
	}

	m := &Module{Path: modFile.Module.Mod.Path, Dir: dir}
	if modFile.Go != nil {
		m.GoVersion = modFile.Go.Version
	}
	return m, nil
}

// moduleFinder resolves the nearest enclosing module of a folder, caching
// every folder it visits.
type moduleFinder struct {
	cache map[string]*Module
}

func newModuleFinder() *moduleFinder {
	return &moduleFinder{cache: make(map[string]*Module)}
}

// find returns nil without error when no go.mod encloses dir.
func (f *moduleFinder) find(dir string) (*Module, error) {
	var visited []string
	for {
		if m, ok := f.cache[dir]; ok {
			f.fill(visited, m)
			return m, nil
		}
		visited = append(visited, dir)

		m, err := ReadModule(dir)
		if err == nil {
			f.fill(visited, m)
			return m, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			f.fill(visited, nil)
			return nil, nil
		}
		dir = parent
	}
}

func (f *moduleFinder) fill(dirs []string, m *Module) {
	for _, d := range dirs {
		f.cache[d] = m
	}
}
