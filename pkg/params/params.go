// Package params turns a generator's command-line tokens into Parameters.
//
// The grammar is deliberately loose: every token starting with "-" is a flag,
// a flag takes the following token as its value when that token is not a flag
// itself, and unknown flags are kept verbatim for composers to consume.
package params

import (
	"maps"
)

// DefaultProjectName is used when -project_name is absent.
const DefaultProjectName = "GEN"

// Well-known flags.
const (
	FlagVerbose     = "-verbose"
	FlagHelp        = "-help"
	FlagProjectName = "-project_name"
)

// Parameters is the read-only result of parsing one invocation.
type Parameters struct {
	ProjectName      string
	Verbose          bool
	PrintHelp        bool
	WorkingDirectory string

	raw map[string]string
}

// New builds Parameters from already-parsed values. raw is copied.
func New(projectName string, verbose, printHelp bool, workingDirectory string, raw map[string]string) Parameters {
	return Parameters{
		ProjectName:      projectName,
		Verbose:          verbose,
		PrintHelp:        printHelp,
		WorkingDirectory: workingDirectory,
		raw:              maps.Clone(raw),
	}
}

// Get returns the value recorded for a flag token, e.g. Get("-output").
// Flags given without a value report ("", true).
func (p Parameters) Get(flag string) (string, bool) {
	v, ok := p.raw[flag]
	return v, ok
}

// Has reports whether the flag token appeared at all.
func (p Parameters) Has(flag string) bool {
	_, ok := p.raw[flag]
	return ok
}

// Lookup returns the flag value, or fallback when the flag is absent or empty.
func (p Parameters) Lookup(flag, fallback string) string {
	if v := p.raw[flag]; v != "" {
		return v
	}
	return fallback
}

// Raw returns a copy of every flag/value pair seen on the command line.
func (p Parameters) Raw() map[string]string {
	return maps.Clone(p.raw)
}

// Equal compares two parameter sets. The working directory is ignored: two
// runs with the same arguments from different folders are the same request.
func (p Parameters) Equal(other Parameters) bool {
	return p.ProjectName == other.ProjectName &&
		p.Verbose == other.Verbose &&
		p.PrintHelp == other.PrintHelp &&
		maps.Equal(p.raw, other.raw)
}
