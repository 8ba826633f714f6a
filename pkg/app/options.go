package app

import (
	"io"

	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/model"
)

// Option configures an Application.
type Option func(*Application)

// WithFolderProvider sets the stage that names root folders.
func WithFolderProvider(fp FolderProvider) Option {
	return func(a *Application) {
		a.folders = fp
	}
}

// WithComposer sets the stage that produces artifacts.
func WithComposer(c Composer) Option {
	return func(a *Application) {
		a.composer = c
	}
}

// WithCompiler replaces the default Go source compiler.
func WithCompiler(c model.Compiler) Option {
	return func(a *Application) {
		a.compiler = c
	}
}

// WithReader replaces the parameter reader.
func WithReader(r ParameterReader) Option {
	return func(a *Application) {
		a.reader = r
	}
}

// WithFinder replaces the file finder.
func WithFinder(f FileFinder) Option {
	return func(a *Application) {
		a.finder = f
	}
}

// WithWriter replaces the file writer.
func WithWriter(w FileWriter) Option {
	return func(a *Application) {
		a.writer = w
	}
}

// WithOutput sets where help, errors and the default trace are printed.
func WithOutput(out io.Writer) Option {
	return func(a *Application) {
		a.out = out
	}
}

// WithLogger sets the trace sink handed to the default stages.
func WithLogger(l logger.Logger) Option {
	return func(a *Application) {
		a.logger = l
	}
}
