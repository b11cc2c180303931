package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version is the diffrefine version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// ExitError carries the exit code a command failed with.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string { return e.Err.Error() }
func (e ExitError) Unwrap() error { return e.Err }

func usageError(format string, args ...any) error {
	return ExitError{Code: 2, Err: fmt.Errorf(format, args...)}
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	root := newRootCommand()
	root.SetArgs(argv)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errW)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0, nil
	}

	code := 1
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	} else if isCobraUsageError(err) {
		code = 2
	}

	fmt.Fprintf(errW, "error: %v\n", err)
	if code == 2 {
		fmt.Fprintln(errW, "Run 'diffrefine --help' for usage.")
	}
	return code, err
}

// isCobraUsageError reports whether err is one of the errors cobra itself returns for bad invocations, which it does not type.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag")
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "diffrefine [flags] <left> <right>",
		Short: "diffrefine shows a refined, line-oriented diff of two files or directories.",
		Long: `diffrefine compares two files (or two directory trees) line by line and refines the result: whitespace-only changes,
single-line substitutions, re-wrapped lines, rule-based refactorings, and moved lines are recognized and reported as such.

Examples:
  diffrefine old.go new.go
  diffrefine --format side-by-side --width 160 old.go new.go
  diffrefine --include '**/*.go' --format markdown v1/ v2/ > report.md
  diffrefine --rules rules.toml --moves-first a.java b.java
  diffrefine rules check rules.toml`,
		Args:              exactArgs(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return ExitError{Code: 2, Err: err}
	})

	registerDiffFlags(root)
	root.RunE = runDiff

	root.AddCommand(newRulesCommand(), newVersionCommand())
	return root
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("%s: expected %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the diffrefine version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "diffrefine %s\n", Version)
			return nil
		},
	}
}
