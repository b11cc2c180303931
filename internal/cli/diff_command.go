package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/codalotl/diffrefine/internal/config"
	"github.com/codalotl/diffrefine/internal/diff"
	"github.com/codalotl/diffrefine/internal/dirdiff"
	"github.com/codalotl/diffrefine/internal/render"
	"github.com/codalotl/diffrefine/internal/report"
	"github.com/codalotl/diffrefine/internal/rules"
	"github.com/codalotl/diffrefine/internal/simplelogger"
)

func registerDiffFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("config", "", "config file (default: "+config.FileName+", then the user config dir)")
	fs.Bool("dump", false, "dump the refined edit list to stderr")
	config.RegisterFlags(fs)
}

// settings is everything runDiff needs, resolved from config and rules.
type settings struct {
	cfg    config.Config
	opts   diff.Options
	render render.Options
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	v := config.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return settings{}, fmt.Errorf("failed to bind flags: %w", err)
	}
	file, _ := cmd.Flags().GetString("config")
	if file == "" {
		file = config.FindFile()
	}
	cfg, err := config.Load(v, file)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return settings{}, ExitError{Code: 2, Err: err}
		}
		return settings{}, err
	}

	rs := rules.Default()
	if cfg.Rules != "" {
		if rs, err = rules.Load(cfg.Rules); err != nil {
			return settings{}, err
		}
	}
	if cfg.Normalize != "" {
		rs.Normalize = cfg.Normalize
	}
	compiled, err := rs.Compile()
	if err != nil {
		return settings{}, err
	}

	s := settings{cfg: cfg}
	compiled.Apply(&s.opts)
	s.opts.DetectMoves = cfg.Moves
	s.opts.MovesFirst = cfg.MovesFirst
	s.opts.AllowReplacements = cfg.Replacements

	out := cmd.OutOrStdout()
	s.render = render.Options{
		Context: cfg.Context,
		Color:   useColor(cfg.Color, out),
		Width:   cfg.Width,
	}
	if s.render.Width == 0 {
		s.render.Width = terminalWidth(out)
	}
	simplelogger.Log("cli: config %q, rules %q, format %s, color %v, width %d", file, cfg.Rules, cfg.Format, s.render.Color, s.render.Width)
	return s, nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	left, right := args[0], args[1]
	leftInfo, err := os.Stat(left)
	if err != nil {
		return err
	}
	rightInfo, err := os.Stat(right)
	if err != nil {
		return err
	}

	var results []dirdiff.FileResult
	switch {
	case leftInfo.IsDir() && rightInfo.IsDir():
		results, err = dirdiff.Compare(cmd.Context(), left, right, dirdiff.Options{
			Diff:    s.opts,
			Include: s.cfg.Include,
			Exclude: s.cfg.Exclude,
			Workers: s.cfg.Workers,
		})
		if err != nil {
			return err
		}
	case !leftInfo.IsDir() && !rightInfo.IsDir():
		r, err := compareFiles(left, right, s.opts)
		if err != nil {
			return err
		}
		results = []dirdiff.FileResult{r}
	default:
		return usageError("cannot compare a file with a directory: %s, %s", left, right)
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		dumpEdits(cmd.ErrOrStderr(), results)
	}
	return writeResults(cmd.OutOrStdout(), results, s, !leftInfo.IsDir(), left, right)
}

func compareFiles(left, right string, opts diff.Options) (dirdiff.FileResult, error) {
	leftData, err := os.ReadFile(left)
	if err != nil {
		return dirdiff.FileResult{}, err
	}
	rightData, err := os.ReadFile(right)
	if err != nil {
		return dirdiff.FileResult{}, err
	}
	r := dirdiff.FileResult{Path: right}
	if dirdiff.IsBinary(leftData) || dirdiff.IsBinary(rightData) {
		r.Binary = true
		r.Status = report.StatusModified
		if bytes.Equal(leftData, rightData) {
			r.Status = report.StatusUnchanged
		}
		return r, nil
	}
	r.Diff = diff.New(dirdiff.Lines(leftData), dirdiff.Lines(rightData), opts)
	r.Status = report.StatusUnchanged
	if r.Diff.HasChanges() {
		r.Status = report.StatusModified
	}
	return r, nil
}

// names returns the header names of r. Single-file comparisons use the arguments as given.
func names(r dirdiff.FileResult, single bool, left, right string) (string, string) {
	from, to := r.Path, r.Path
	if single {
		from, to = left, right
	}
	switch r.Status {
	case report.StatusAdded:
		from = ""
	case report.StatusDeleted:
		to = ""
	}
	return from, to
}

func writeResults(w io.Writer, results []dirdiff.FileResult, s settings, single bool, left, right string) error {
	switch s.cfg.Format {
	case "markdown", "html":
		var summaries []report.FileSummary
		for _, r := range results {
			summary := report.FileSummary{Path: r.Path, Status: r.Status}
			if r.Diff != nil {
				summary = report.Summarize(r.Path, r.Diff)
				summary.Status = r.Status
				if r.Status != report.StatusUnchanged {
					summary.Diff = render.Pretty(r.Diff, render.Options{Context: s.cfg.Context})
				}
			}
			summaries = append(summaries, summary)
		}
		md := report.Markdown(summaries)
		if s.cfg.Format == "markdown" {
			_, err := io.WriteString(w, md)
			return err
		}
		html, err := report.HTML(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	}

	for _, r := range results {
		if r.Status == report.StatusUnchanged {
			continue
		}
		from, to := names(r, single, left, right)
		if r.Binary {
			fmt.Fprintf(w, "Binary files %s and %s differ\n", from, to)
			continue
		}
		opts := s.render
		opts.FromName, opts.ToName = from, to

		var text string
		switch s.cfg.Format {
		case "annotated":
			text = render.Annotated(r.Diff, opts)
		case "side-by-side":
			text = render.SideBySide(r.Diff, opts)
		default:
			text = render.Pretty(r.Diff, opts)
		}
		if text != "" {
			fmt.Fprintln(w, text)
		}
	}
	return nil
}

func dumpEdits(w io.Writer, results []dirdiff.FileResult) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	for _, r := range results {
		if r.Diff == nil {
			continue
		}
		fmt.Fprintf(w, "== %s\n", r.Path)
		cfg.Fdump(w, r.Diff.Edits())
	}
}
