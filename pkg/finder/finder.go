// Package finder discovers the source files a generator should compile.
//
// Traversal is depth-first: the matching files of a folder come before the
// files of its subfolders, and subfolders are visited in the order the
// filesystem lists them. Overlapping roots are not deduplicated.
package finder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/params"
)

// DefaultExtension is the source suffix matched when none is configured.
const DefaultExtension = ".go"

// Finder walks input folders looking for files with a recognized extension.
type Finder struct {
	fs        afero.Fs
	extension string
	logger    logger.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithFs replaces the OS filesystem, e.g. with afero.NewMemMapFs in tests.
func WithFs(fs afero.Fs) Option {
	return func(f *Finder) {
		f.fs = fs
	}
}

// WithExtension sets the recognized source suffix (".swift", ".go", ...).
// Matching ignores case.
func WithExtension(ext string) Option {
	return func(f *Finder) {
		if ext != "" {
			f.extension = ext
		}
	}
}

// WithLogger sets the verbose trace sink.
func WithLogger(l logger.Logger) Option {
	return func(f *Finder) {
		f.logger = l
	}
}

// New creates a Finder.
func New(opts ...Option) *Finder {
	f := &Finder{
		fs:        afero.NewOsFs(),
		extension: DefaultExtension,
		logger:    logger.NewSilent(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Extension returns the suffix this Finder matches.
func (f *Finder) Extension() string {
	return f.extension
}

// Find returns every matching file below folders, in folder order. Relative
// folders resolve against p.WorkingDirectory. Any folder that cannot be listed
// aborts the whole search.
func (f *Finder) Find(folders []string, p params.Parameters) ([]string, error) {
	var files []string
	for _, folder := range folders {
		found, err := f.scan(f.absolute(folder, p.WorkingDirectory), p.Verbose)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func (f *Finder) scan(folder string, verbose bool) ([]string, error) {
	if verbose {
		f.logger.Debug("Scanning folder: " + folder)
	}

	files, subfolders, err := f.list(folder)
	if err != nil {
		return nil, err
	}

	if verbose && len(files) > 0 {
		f.logger.Debug("Found files:\n" + strings.Join(files, ",\n"))
	}
	if verbose && len(subfolders) > 0 {
		f.logger.Debug("Found subfolders:\n" + strings.Join(subfolders, ",\n"))
	}

	matched := make([]string, 0, len(files))
	for _, file := range files {
		if f.matches(file) {
			matched = append(matched, file)
		}
	}

	for _, sub := range subfolders {
		nested, err := f.scan(sub, verbose)
		if err != nil {
			return nil, err
		}
		matched = append(matched, nested...)
	}

	return matched, nil
}

// list partitions the immediate entries of folder into files and subfolders,
// keeping the order reported by the filesystem.
func (f *Finder) list(folder string) (files, subfolders []string, err error) {
	dir, err := f.fs.Open(folder)
	if err != nil {
		return nil, nil, fmt.Errorf("listing folder %s: %w", folder, err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, nil, fmt.Errorf("listing folder %s: %w", folder, err)
	}

	for _, name := range names {
		path := filepath.Join(folder, name)
		info, statErr := f.fs.Stat(path)
		if statErr == nil && info.IsDir() {
			subfolders = append(subfolders, path)
			continue
		}
		files = append(files, path)
	}

	return files, subfolders, nil
}

func (f *Finder) matches(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), strings.ToLower(f.extension))
}

// absolute resolves folder against the working directory: "" is the working
// directory itself, a leading "." is relative to it, anything else is taken
// as already absolute.
func (f *Finder) absolute(folder, workingDirectory string) string {
	switch {
	case folder == "":
		return workingDirectory
	case strings.HasPrefix(folder, "."):
		return filepath.Join(workingDirectory, folder)
	default:
		return folder
	}
}
