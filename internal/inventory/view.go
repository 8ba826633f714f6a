package inventory

import (
	"path/filepath"

	"github.com/simonhull/firebird-suite/quill/pkg/gosource"
)

type inventoryData struct {
	Project  string
	Prefix   string
	Package  string
	Packages []packageView
}

type packageView struct {
	Name       string
	ImportPath string
	Dir        string
	Types      []typeView
}

type typeView struct {
	Name    string
	Kind    string
	Doc     string
	Fields  []string
	Methods []string
}

// packageViews flattens the model for the template. Directories are made
// relative to wd so the output does not depend on where the repo lives.
// The package in skipDir, where the inventory itself is written, is left out
// so a rerun over the same tree produces the same file.
func packageViews(project *gosource.Project, wd, skipDir string) []packageView {
	views := make([]packageView, 0, len(project.Packages))
	for _, pkg := range project.Packages {
		if filepath.Clean(pkg.Dir) == filepath.Clean(skipDir) {
			continue
		}
		view := packageView{
			Name:       pkg.Name,
			ImportPath: pkg.ImportPath,
			Dir:        relative(pkg.Dir, wd),
		}
		for _, t := range pkg.Types {
			tv := typeView{
				Name: t.Name,
				Kind: string(t.Kind),
				Doc:  t.Doc,
			}
			for _, f := range t.Fields {
				tv.Fields = append(tv.Fields, f.Name)
			}
			for _, m := range t.Methods {
				tv.Methods = append(tv.Methods, m.Name)
			}
			view.Types = append(view.Types, tv)
		}
		views = append(views, view)
	}
	return views
}

func relative(dir, wd string) string {
	if wd == "" {
		return filepath.ToSlash(dir)
	}
	rel, err := filepath.Rel(wd, dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	return filepath.ToSlash(rel)
}
