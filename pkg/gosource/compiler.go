// Package gosource compiles Go source files into a Project model describing
// their packages, declared types, fields and methods.
package gosource

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/model"
	"github.com/simonhull/firebird-suite/quill/pkg/params"
)

// Compiler parses Go files with go/parser. It never type-checks, so files
// with unresolved imports still compile into a model.
type Compiler struct {
	logger  logger.Logger
	workers int
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithWorkers sets how many files are parsed concurrently. Zero or less
// means runtime.NumCPU().
func WithWorkers(n int) CompilerOption {
	return func(c *Compiler) {
		c.workers = n
	}
}

// NewCompiler creates a Compiler. A nil logger is silent.
func NewCompiler(log logger.Logger, opts ...CompilerOption) *Compiler {
	if log == nil {
		log = logger.NewSilent()
	}
	c := &Compiler{logger: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile parses files in order and returns a *Project. The first file that
// fails to parse aborts compilation with a *model.CompileError.
func (c *Compiler) Compile(files []string, p params.Parameters) (model.Model, error) {
	fset := token.NewFileSet()
	proj := &Project{}

	index := make(map[string]*Package)
	methods := make(map[*Package]map[string][]*Method)
	modules := newModuleFinder()
	parsed := c.parseAll(fset, files)

	for i, path := range files {
		if p.Verbose {
			c.logger.Debug("Compiling file: " + path)
		}

		astFile, err := parsed[i].file, parsed[i].err
		if err != nil {
			return nil, &model.CompileError{File: path, Err: err}
		}

		dir := filepath.Dir(path)
		key := dir + "\x00" + astFile.Name.Name
		pkg, ok := index[key]
		if !ok {
			pkg = &Package{Name: astFile.Name.Name, Dir: dir}
			if pkg.ImportPath, err = importPath(modules, dir); err != nil {
				return nil, &model.CompileError{File: path, Err: err}
			}
			index[key] = pkg
			methods[pkg] = make(map[string][]*Method)
			proj.Packages = append(proj.Packages, pkg)
		}

		file := &File{Path: path, Doc: strings.TrimSpace(astFile.Doc.Text())}
		for _, imp := range astFile.Imports {
			if v, err := strconv.Unquote(imp.Path.Value); err == nil {
				file.Imports = append(file.Imports, v)
			}
		}

		for _, decl := range astFile.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok == token.TYPE {
					pkg.Types = append(pkg.Types, typeSpecs(d, path)...)
				}
			case *ast.FuncDecl:
				if d.Recv == nil || len(d.Recv.List) == 0 {
					file.Functions = append(file.Functions, &Function{
						Name:      d.Name.Name,
						Signature: signature(d.Type),
					})
					continue
				}
				recv, pointer := receiverName(d.Recv.List[0].Type)
				methods[pkg][recv] = append(methods[pkg][recv], &Method{
					Name:      d.Name.Name,
					Signature: signature(d.Type),
					Pointer:   pointer,
				})
			}
		}

		pkg.Files = append(pkg.Files, file)
	}

	// methods may be declared in a different file than their receiver type
	for _, pkg := range proj.Packages {
		for _, t := range pkg.Types {
			t.Methods = methods[pkg][t.Name]
		}
	}

	if p.Verbose {
		c.logger.Debug("Compiled packages", logger.F("packages", len(proj.Packages)), logger.F("files", len(files)))
	}

	return proj, nil
}

type parseResult struct {
	file *ast.File
	err  error
}

// parseAll parses files on a pool of workers. Results keep the order of
// files so the model does not depend on scheduling.
func (c *Compiler) parseAll(fset *token.FileSet, files []string) []parseResult {
	results := make([]parseResult, len(files))

	workers := c.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f, err := parser.ParseFile(fset, files[i], nil, parser.ParseComments)
				results[i] = parseResult{file: f, err: err}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// importPath is empty when no go.mod encloses dir.
func importPath(modules *moduleFinder, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	mod, err := modules.find(abs)
	if err != nil || mod == nil {
		return "", err
	}
	return mod.ImportPath(abs), nil
}

func typeSpecs(d *ast.GenDecl, path string) []*Type {
	var result []*Type
	for _, spec := range d.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		doc := ts.Doc
		if doc == nil && len(d.Specs) == 1 {
			doc = d.Doc
		}

		t := &Type{
			Name:     ts.Name.Name,
			Doc:      strings.TrimSpace(doc.Text()),
			File:     path,
			Exported: ts.Name.IsExported(),
		}

		switch expr := ts.Type.(type) {
		case *ast.StructType:
			t.Kind = KindStruct
			t.Fields = fieldList(expr.Fields)
		case *ast.InterfaceType:
			t.Kind = KindInterface
			t.Fields = fieldList(expr.Methods)
		default:
			t.Kind = KindNamed
			if ts.Assign.IsValid() {
				t.Kind = KindAlias
			}
			t.Underlying = types.ExprString(ts.Type)
		}

		result = append(result, t)
	}
	return result
}

func fieldList(list *ast.FieldList) []*Field {
	if list == nil {
		return nil
	}

	var fields []*Field
	for _, f := range list.List {
		typ := types.ExprString(f.Type)
		if fn, ok := f.Type.(*ast.FuncType); ok {
			typ = signature(fn)
		}

		tag := ""
		if f.Tag != nil {
			if v, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = v
			}
		}

		if len(f.Names) == 0 {
			fields = append(fields, &Field{Name: embeddedName(f.Type), Type: typ, Tag: tag, Embedded: true})
			continue
		}
		for _, name := range f.Names {
			fields = append(fields, &Field{Name: name.Name, Type: typ, Tag: tag})
		}
	}
	return fields
}

// signature renders a func type without its leading "func" keyword.
func signature(fn *ast.FuncType) string {
	return strings.TrimPrefix(types.ExprString(fn), "func")
}

func receiverName(expr ast.Expr) (name string, pointer bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		name, _ = receiverName(star.X)
		return name, true
	}
	return embeddedName(expr), false
}

// embeddedName strips pointers, package qualifiers and type arguments.
func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return types.ExprString(expr)
	}
}
