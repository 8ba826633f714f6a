package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/quill"
	"github.com/simonhull/firebird-suite/quill/internal/inventory"
	"github.com/simonhull/firebird-suite/quill/pkg/app"
	"github.com/simonhull/firebird-suite/quill/pkg/config"
	"github.com/simonhull/firebird-suite/quill/pkg/finder"
	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/output"
	"github.com/simonhull/firebird-suite/quill/pkg/params"
)

// versionArg, given as the first argument, prints the version instead of
// running the generator.
const versionArg = "version"

// argsTerminator is prepended to the arguments so cobra never matches a
// flag value such as "-project_name help" against a command name.
const argsTerminator = "--"

// RootCmd creates the quill command. Flags are not parsed by cobra: the
// generator grammar uses single-dash flags with optional values, so every
// argument is handed to the pipeline verbatim. The command has no
// subcommands; "quill version" is recognised from the first argument only.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quill [version] [-project_name name] [-verbose] [-help] [generator flags]",
		Short: "Scaffold Go source from the types declared in a project",
		Long: `Quill scans Go sources, compiles the declared packages and types into a
model and writes generated files from it. Files whose content did not change
are left untouched.

Defaults for the generator flags can be stored in quill.yml in the working
directory or in QUILL_* environment variables.

Run "quill -help" for the full list of flags, "quill version" for the version.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == argsTerminator {
				args = args[1:]
			}
			if len(args) > 0 && args[0] == versionArg {
				fmt.Fprintf(cmd.OutOrStdout(), "Quill v%s\n", quill.Version)
				return nil
			}
			return run(cmd.OutOrStdout(), args)
		},
	}

	return cmd
}

// Execute runs quill with the process arguments.
func Execute() error {
	return ExecuteArgs(os.Args[1:], os.Stdout)
}

// ExecuteArgs runs quill with args, printing to out. Any failure is reported
// on out and returned.
func ExecuteArgs(args []string, out io.Writer) error {
	cmd := RootCmd()
	cmd.SetOut(out)
	cmd.SetArgs(append([]string{argsTerminator}, args...))

	err := cmd.Execute()
	if err != nil {
		output.New(out).Error(err.Error())
	}
	return err
}

func run(out io.Writer, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}

	log := logger.ForVerbosity(hasFlag(args, params.FlagVerbose), out)
	printer := output.New(out)
	if cfg.Path != "" {
		printer.Info("Using config file: " + cfg.Path)
	}

	gen := inventory.New(cfg, inventory.WithLogger(log), inventory.WithOutput(out))
	a := app.New(
		app.WithOutput(out),
		app.WithLogger(log),
		app.WithFinder(finder.New(finder.WithExtension(cfg.Extension), finder.WithLogger(log))),
		app.WithFolderProvider(gen),
		app.WithComposer(gen),
		app.WithWriter(gen),
	)

	report, err := a.Execute(args)
	if err != nil {
		return err
	}

	if len(report.Written) == 0 && len(report.Skipped) == 0 {
		return nil
	}

	verb := "Wrote"
	dryRun := hasFlag(args, inventory.FlagDryRun)
	if dryRun {
		verb = "Would write"
	}
	printer.Success(fmt.Sprintf("%s %d file(s), %d unchanged", verb, len(report.Written), len(report.Skipped)))
	for _, path := range report.Written {
		printer.Step(path)
	}
	if dryRun {
		printer.Info("Dry run: no files were changed")
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}
