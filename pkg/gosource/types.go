package gosource

// Project is the model produced by Compiler: every package found in the
// compiled files, in the order their first file was seen.
type Project struct {
	Packages []*Package `yaml:"packages"`
}

// Package groups the files of one Go package living in one folder.
type Package struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
	// ImportPath is derived from the enclosing go.mod, empty outside a module.
	ImportPath string  `yaml:"import_path,omitempty"`
	Files      []*File `yaml:"files"`
	Types      []*Type `yaml:"types,omitempty"`
}

// File is a single compiled source file.
type File struct {
	Path      string      `yaml:"path"`
	Doc       string      `yaml:"doc,omitempty"`
	Imports   []string    `yaml:"imports,omitempty"`
	Functions []*Function `yaml:"functions,omitempty"`
}

// TypeKind classifies a declared type.
type TypeKind string

const (
	KindStruct    TypeKind = "struct"
	KindInterface TypeKind = "interface"
	KindAlias     TypeKind = "alias"
	KindNamed     TypeKind = "named"
)

// Type is a top-level type declaration.
type Type struct {
	Name     string    `yaml:"name"`
	Kind     TypeKind  `yaml:"kind"`
	Doc      string    `yaml:"doc,omitempty"`
	File     string    `yaml:"file"`
	Exported bool      `yaml:"exported"`
	Fields   []*Field  `yaml:"fields,omitempty"`
	Methods  []*Method `yaml:"methods,omitempty"`
	// Underlying is the source text of the right-hand side for named and
	// alias types.
	Underlying string `yaml:"underlying,omitempty"`
}

// Field is a struct field or an interface method/embedded element.
type Field struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Tag      string `yaml:"tag,omitempty"`
	Embedded bool   `yaml:"embedded,omitempty"`
}

// Method is a function declared with a receiver.
type Method struct {
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
	Pointer   bool   `yaml:"pointer,omitempty"`
}

// Function is a top-level function without a receiver.
type Function struct {
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
}

// Type looks up a declared type by name across all packages.
func (p *Project) Type(name string) (*Type, bool) {
	for _, pkg := range p.Packages {
		for _, t := range pkg.Types {
			if t.Name == name {
				return t, true
			}
		}
	}
	return nil, false
}
