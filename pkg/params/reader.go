package params

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/firebird-suite/quill/pkg/logger"
)

// ErrMissingValue is matched by every MissingValueError.
var ErrMissingValue = errors.New("missing value")

// MissingValueError reports a named flag that requires a value but was the
// last token or was followed by another flag.
type MissingValueError struct {
	Flag string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s parameter found, but its value is absent", e.Flag)
}

// Is lets errors.Is(err, ErrMissingValue) match.
func (e *MissingValueError) Is(target error) bool {
	return target == ErrMissingValue
}

// Reader parses command-line tokens into Parameters.
type Reader struct {
	logger logger.Logger
	getwd  func() (string, error)
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets the sink for the verbose trace. The trace is only emitted
// when the parsed arguments turn verbose mode on.
func WithLogger(l logger.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = l
	}
}

// WithGetwd replaces os.Getwd as the source of the working directory.
func WithGetwd(getwd func() (string, error)) ReaderOption {
	return func(r *Reader) {
		r.getwd = getwd
	}
}

// NewReader creates a Reader.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		logger: logger.NewSilent(),
		getwd:  os.Getwd,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read scans args left to right. Index positions are relative to args as
// given, so callers decide whether the program name is included.
func (r *Reader) Read(args []string) (Parameters, error) {
	var (
		verbose     bool
		printHelp   bool
		projectName = DefaultProjectName
		raw         = make(map[string]string)
		trace       []string
	)

	for i, arg := range args {
		next, hasValue := valueAfter(args, i)

		switch arg {
		case FlagVerbose:
			verbose = true
		case FlagHelp:
			printHelp = true
		case FlagProjectName:
			if !hasValue {
				return Parameters{}, &MissingValueError{Flag: FlagProjectName}
			}
			projectName = next
			trace = append(trace, "Project name: "+next)
		}

		if !isFlag(arg) {
			continue
		}
		if hasValue {
			raw[arg] = next
			trace = append(trace, fmt.Sprintf("Found pair of arguments: %s = %s", arg, next))
		} else {
			raw[arg] = ""
			trace = append(trace, "Found argument: "+arg)
		}
	}

	wd, err := r.getwd()
	if err != nil {
		return Parameters{}, fmt.Errorf("resolving working directory: %w", err)
	}

	if verbose {
		for _, line := range trace {
			r.logger.Debug(line)
		}
		r.logger.Debug("Working directory: " + wd)
	}

	return New(projectName, verbose, printHelp, wd, raw), nil
}

// valueAfter returns the token following index i when it exists and is not
// itself a flag.
func valueAfter(args []string, i int) (string, bool) {
	if i+1 >= len(args) {
		return "", false
	}
	next := args[i+1]
	if isFlag(next) {
		return "", false
	}
	return next, true
}

func isFlag(arg string) bool {
	return strings.HasPrefix(arg, "-")
}
