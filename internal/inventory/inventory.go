// Package inventory is quill's built-in generator. It scans Go sources and
// writes a single file listing every declared type, grouped by package.
//
// Generator-specific flags:
//
//	-input a,b     comma-separated root folders (default: config input)
//	-output dir    folder for the generated file (default: config output)
//	-package name  package clause of the generated file
//	-dry_run       report what would change without writing
//	-diff          print a diff for every changed file
//	-atomic        replace files via temp-file-and-rename
package inventory

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/simonhull/firebird-suite/quill/pkg/config"
	"github.com/simonhull/firebird-suite/quill/pkg/gosource"
	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/model"
	"github.com/simonhull/firebird-suite/quill/pkg/params"
	"github.com/simonhull/firebird-suite/quill/pkg/render"
	"github.com/simonhull/firebird-suite/quill/pkg/writer"
)

//go:embed templates/*.tmpl
var templates embed.FS

const templatePath = "templates/inventory.go.tmpl"

// Flags read from the invocation.
const (
	FlagInput   = "-input"
	FlagOutput  = "-output"
	FlagPackage = "-package"
	FlagDryRun  = "-dry_run"
	FlagDiff    = "-diff"
	FlagAtomic  = "-atomic"
)

const defaultPackage = "generated"

// Generator discovers folders, composes the inventory file and writes it.
type Generator struct {
	cfg      *config.Config
	renderer *render.Renderer
	fs       afero.Fs
	logger   logger.Logger
	out      io.Writer
}

// Option configures a Generator.
type Option func(*Generator)

// WithFs sets the filesystem artifacts are written to.
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) {
		g.fs = fs
	}
}

// WithLogger sets the writer's trace sink.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithOutput sets where -diff previews are printed.
func WithOutput(out io.Writer) Option {
	return func(g *Generator) {
		g.out = out
	}
}

// New creates a Generator. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Generator{
		cfg:      cfg,
		renderer: render.NewRenderer(),
		fs:       afero.NewOsFs(),
		logger:   logger.NewSilent(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Folders returns the -input folders, or the configured input, resolved
// against the working directory.
func (g *Generator) Folders(p params.Parameters) ([]string, error) {
	input := g.cfg.Input
	if value, ok := p.Get(FlagInput); ok {
		input = nil
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				input = append(input, part)
			}
		}
		if len(input) == 0 {
			return nil, fmt.Errorf("%s requires at least one folder", FlagInput)
		}
	}

	folders := make([]string, 0, len(input))
	for _, folder := range input {
		if !filepath.IsAbs(folder) {
			folder = filepath.Join(p.WorkingDirectory, folder)
		}
		folders = append(folders, folder)
	}
	return folders, nil
}

// Compose renders the inventory of a *gosource.Project.
func (g *Generator) Compose(m model.Model, p params.Parameters) ([]model.Artifact, error) {
	project, ok := m.(*gosource.Project)
	if !ok {
		return nil, fmt.Errorf("inventory needs a Go source model, got %T", m)
	}

	dir := g.outputDir(p)
	data := inventoryData{
		Project:  p.ProjectName,
		Prefix:   render.PascalCase(p.ProjectName),
		Package:  packageName(p.Lookup(FlagPackage, ""), dir),
		Packages: packageViews(project, p.WorkingDirectory, dir),
	}

	code, err := g.renderer.RenderGo(templates, templatePath, data)
	if err != nil {
		return nil, err
	}

	return []model.Artifact{{
		FilePath:   filepath.Join(dir, render.SnakeCase(p.ProjectName)+"_inventory.go"),
		SourceCode: string(code),
	}}, nil
}

// Write persists artifacts with the writer settings the flags ask for.
func (g *Generator) Write(artifacts []model.Artifact, p params.Parameters) (writer.Report, error) {
	opts := []writer.Option{
		writer.WithFs(g.fs),
		writer.WithLogger(g.logger),
		writer.WithDryRun(p.Has(FlagDryRun)),
		writer.WithAtomic(g.cfg.AtomicWrites || p.Has(FlagAtomic)),
	}
	if p.Has(FlagDiff) {
		opts = append(opts, writer.WithDiff(g.out))
	}
	return writer.New(opts...).Write(artifacts, p)
}

// Help documents the generator's own flags.
func (g *Generator) Help() string {
	return fmt.Sprintf(`-input [folders]
Comma-separated folders to scan. Default: %s

-output [folder]
Folder the inventory file is written to. Default: %s

-package [name]
Package clause of the generated file. Default: last element of the output folder.

-dry_run
List the files that would change without writing them.

-diff
Print a diff for every file that changes.

-atomic
Replace files by writing a temporary file and renaming it.

`, strings.Join(g.cfg.Input, ","), g.cfg.Output)
}

func (g *Generator) outputDir(p params.Parameters) string {
	dir := p.Lookup(FlagOutput, g.cfg.Output)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.WorkingDirectory, dir)
	}
	return dir
}

func packageName(flag, dir string) string {
	if flag != "" {
		return flag
	}
	name := strings.ReplaceAll(render.SnakeCase(filepath.Base(dir)), "_", "")
	if name == "" || !isIdentifier(name) {
		return defaultPackage
	}
	return name
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
