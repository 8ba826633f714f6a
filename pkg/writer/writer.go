// Package writer persists generated artifacts, touching only files whose
// content changed.
//
// Writing happens in two passes. The first creates the parent folder of every
// artifact, so a folder that cannot be created is reported before any file
// is written. The second compares each artifact with the file already on
// disk and skips it when the bytes are identical.
//
// Files are overwritten in place by default. WithAtomic switches to
// write-to-temp-then-rename for callers who cannot tolerate a truncated file
// when the process dies mid-write.
package writer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/model"
	"github.com/simonhull/firebird-suite/quill/pkg/params"
)

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// Report lists what a Write call did, in artifact order.
type Report struct {
	Created []string // folders created by the first pass
	Written []string // files whose content was (or, in dry-run, would be) written
	Skipped []string // files left alone because nothing changed
}

// Writer writes artifacts to a filesystem.
type Writer struct {
	fs     afero.Fs
	logger logger.Logger
	dryRun bool
	atomic bool
	diff   io.Writer
	differ *Differ
}

// Option configures a Writer.
type Option func(*Writer)

// WithFs replaces the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(w *Writer) {
		w.fs = fs
	}
}

// WithLogger sets the verbose trace sink.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		w.logger = l
	}
}

// WithDryRun reports what would change without creating folders or files.
func WithDryRun(dryRun bool) Option {
	return func(w *Writer) {
		w.dryRun = dryRun
	}
}

// WithAtomic writes each changed file to a temporary sibling and renames it
// into place.
func WithAtomic(atomic bool) Option {
	return func(w *Writer) {
		w.atomic = atomic
	}
}

// WithDiff prints a line diff of every changed file to out before it is
// written. A nil writer disables the preview.
func WithDiff(out io.Writer) Option {
	return func(w *Writer) {
		w.diff = out
	}
}

// New creates a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{
		fs:     afero.NewOsFs(),
		logger: logger.NewSilent(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.diff != nil {
		w.differ = NewDiffer()
	}
	return w
}

// Write persists artifacts. The first error stops the run: later artifacts
// are not attempted and folders already created stay in place.
func (w *Writer) Write(artifacts []model.Artifact, p params.Parameters) (Report, error) {
	var report Report

	if !w.dryRun {
		created, err := w.createFolders(artifacts, p.Verbose)
		report.Created = created
		if err != nil {
			return report, err
		}
	}

	for _, artifact := range artifacts {
		written, err := w.writeOne(artifact, p.Verbose)
		if err != nil {
			return report, err
		}
		if written {
			report.Written = append(report.Written, artifact.FilePath)
		} else {
			report.Skipped = append(report.Skipped, artifact.FilePath)
		}
	}

	return report, nil
}

func (w *Writer) createFolders(artifacts []model.Artifact, verbose bool) ([]string, error) {
	var created []string
	for _, artifact := range artifacts {
		dir := filepath.Dir(artifact.FilePath)

		exists, err := afero.DirExists(w.fs, dir)
		if err == nil && exists {
			continue
		}

		if verbose {
			w.logger.Debug("Creating folder: " + dir)
		}
		if err := w.fs.MkdirAll(dir, dirMode); err != nil {
			return created, fmt.Errorf("creating folder %s: %w", dir, err)
		}
		created = append(created, dir)
	}
	return created, nil
}

// writeOne reports whether the artifact needed writing.
func (w *Writer) writeOne(artifact model.Artifact, verbose bool) (bool, error) {
	path := artifact.FilePath
	content := []byte(artifact.SourceCode)

	if verbose {
		w.logger.Debug("Loading existing file: " + path)
	}

	// An unreadable file is treated as absent; the write below surfaces any
	// real permission problem.
	existing, readErr := afero.ReadFile(w.fs, path)
	if readErr == nil && bytes.Equal(existing, content) {
		if verbose {
			w.logger.Debug(fmt.Sprintf("File %s didn't change, skipping...", path))
		}
		return false, nil
	}

	if w.differ != nil {
		if readErr != nil {
			existing = nil
		}
		fmt.Fprint(w.diff, w.differ.Diff(path, existing, content))
	}

	if w.dryRun {
		if verbose {
			w.logger.Debug("Would write file: " + path)
		}
		return true, nil
	}

	if verbose {
		w.logger.Debug("Writing file: " + path)
	}

	var err error
	if w.atomic {
		err = w.replace(path, content)
	} else {
		err = afero.WriteFile(w.fs, path, content, fileMode)
	}
	if err != nil {
		return false, fmt.Errorf("writing file %s: %w", path, err)
	}
	return true, nil
}

// replace writes content next to path and renames it over the original.
func (w *Writer) replace(path string, content []byte) error {
	tmp, err := afero.TempFile(w.fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		w.fs.Remove(tmpName) // best effort
		return err
	}
	if err := tmp.Close(); err != nil {
		w.fs.Remove(tmpName)
		return err
	}
	if err := w.fs.Chmod(tmpName, fileMode); err != nil {
		w.fs.Remove(tmpName)
		return err
	}
	if err := w.fs.Rename(tmpName, path); err != nil {
		w.fs.Remove(tmpName)
		return err
	}
	return nil
}
