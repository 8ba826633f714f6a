// Package model defines the boundary between a generator pipeline and its
// collaborators: the compiler that turns source files into a Model, and the
// Artifacts that composers produce from it.
package model

import (
	"fmt"

	"github.com/simonhull/firebird-suite/quill/pkg/params"
)

// Model is the compiler's description of a project's declared entities. The
// pipeline never inspects it; composers type-assert it to whatever their
// compiler returns.
type Model any

// Compiler turns discovered source files into a Model.
type Compiler interface {
	Compile(files []string, p params.Parameters) (Model, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(files []string, p params.Parameters) (Model, error)

func (f CompilerFunc) Compile(files []string, p params.Parameters) (Model, error) {
	return f(files, p)
}

// CompileError reports a source file the compiler could not process.
type CompileError struct {
	File string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s: %v", e.File, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Artifact is one generated file: where it goes and what it contains.
// Artifacts compare equal when both fields match.
type Artifact struct {
	FilePath   string
	SourceCode string
}
