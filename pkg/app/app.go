// Package app runs the generator pipeline:
//
//	read parameters → (print help) → discover folders → find files →
//	compile → compose → write
//
// A generator plugs in by supplying a FolderProvider and a Composer. Every
// other stage has a default that can be replaced through options. Errors
// from any stage end the run unchanged; Run is the single place they are
// reported and turned into an exit code.
package app

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/quill/pkg/finder"
	"github.com/simonhull/firebird-suite/quill/pkg/gosource"
	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/model"
	"github.com/simonhull/firebird-suite/quill/pkg/output"
	"github.com/simonhull/firebird-suite/quill/pkg/params"
	"github.com/simonhull/firebird-suite/quill/pkg/writer"
)

// Exit codes returned by Run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// FolderProvider names the root folders to scan for a run.
type FolderProvider interface {
	Folders(p params.Parameters) ([]string, error)
}

// Composer turns the compiled model into generated files.
type Composer interface {
	Compose(m model.Model, p params.Parameters) ([]model.Artifact, error)
}

// HelpProvider is implemented by composers or folder providers that document
// their own flags. Its text is printed after the built-in usage.
type HelpProvider interface {
	Help() string
}

// FolderProviderFunc adapts a function to FolderProvider.
type FolderProviderFunc func(p params.Parameters) ([]string, error)

func (f FolderProviderFunc) Folders(p params.Parameters) ([]string, error) {
	return f(p)
}

// ComposerFunc adapts a function to Composer.
type ComposerFunc func(m model.Model, p params.Parameters) ([]model.Artifact, error)

func (f ComposerFunc) Compose(m model.Model, p params.Parameters) ([]model.Artifact, error) {
	return f(m, p)
}

// ParameterReader parses command-line tokens.
type ParameterReader interface {
	Read(args []string) (params.Parameters, error)
}

// FileFinder discovers source files below root folders.
type FileFinder interface {
	Find(folders []string, p params.Parameters) ([]string, error)
}

// FileWriter persists artifacts.
type FileWriter interface {
	Write(artifacts []model.Artifact, p params.Parameters) (writer.Report, error)
}

// Application wires the pipeline stages together.
type Application struct {
	folders  FolderProvider
	composer Composer
	compiler model.Compiler
	reader   ParameterReader
	finder   FileFinder
	writer   FileWriter

	out     io.Writer
	printer *output.Printer
	logger  logger.Logger
}

// New creates an Application. Without a FolderProvider and a Composer the
// pipeline still runs but scans nothing and writes nothing.
func New(opts ...Option) *Application {
	a := &Application{}
	for _, opt := range opts {
		opt(a)
	}

	if a.out == nil {
		a.out = os.Stdout
	}
	a.printer = output.New(a.out)
	if a.logger == nil {
		// stages gate their trace on Parameters.Verbose
		a.logger = logger.New(logger.LevelDebug, a.out)
	}
	if a.folders == nil {
		a.folders = FolderProviderFunc(func(params.Parameters) ([]string, error) { return nil, nil })
	}
	if a.composer == nil {
		a.composer = ComposerFunc(func(model.Model, params.Parameters) ([]model.Artifact, error) { return nil, nil })
	}
	if a.compiler == nil {
		a.compiler = gosource.NewCompiler(a.logger)
	}
	if a.reader == nil {
		a.reader = params.NewReader(params.WithLogger(a.logger))
	}
	if a.finder == nil {
		a.finder = finder.New(finder.WithLogger(a.logger))
	}
	if a.writer == nil {
		a.writer = writer.New(writer.WithLogger(a.logger))
	}

	return a
}

// Run executes the pipeline for args and returns the process exit code.
// Any error is printed to the application's output.
func (a *Application) Run(args []string) int {
	if _, err := a.Execute(args); err != nil {
		a.printer.Error(err.Error())
		return ExitFailure
	}
	return ExitSuccess
}

// Execute runs every stage and returns what the writer did. When the
// arguments ask for help, usage is printed and an empty report returned.
func (a *Application) Execute(args []string) (writer.Report, error) {
	p, err := a.reader.Read(args)
	if err != nil {
		return writer.Report{}, err
	}

	if p.PrintHelp {
		a.PrintHelp()
		return writer.Report{}, nil
	}

	folders, err := a.folders.Folders(p)
	if err != nil {
		return writer.Report{}, err
	}

	files, err := a.finder.Find(folders, p)
	if err != nil {
		return writer.Report{}, err
	}

	m, err := a.compiler.Compile(files, p)
	if err != nil {
		return writer.Report{}, err
	}
	if p.Verbose {
		a.dumpModel(m)
	}

	artifacts, err := a.composer.Compose(m, p)
	if err != nil {
		return writer.Report{}, err
	}

	return a.writer.Write(artifacts, p)
}

// PrintHelp prints the built-in usage followed by any text contributed by
// the folder provider or composer.
func (a *Application) PrintHelp() {
	a.printer.Plain(usage)
	for _, part := range []any{a.folders, a.composer} {
		if h, ok := part.(HelpProvider); ok {
			a.printer.Plain(h.Help())
		}
	}
}

func (a *Application) dumpModel(m model.Model) {
	out, err := yaml.Marshal(m)
	if err != nil {
		a.logger.Debug("Compiled model is not printable", logger.F("error", err))
		return
	}
	a.logger.Debug("Compiled model:\n" + string(out))
}

const usage = `Accepted arguments:

-project_name [name]
Project name to be used in generated files.
If not set, "GEN" is used as a default project name.

-verbose
Application prints additional verbose information: found input files and folders, successfully saved files etc.

-help
Print this message and exit.

`
