package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/sqlschema-compare/internal/app"
	apperrors "github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/reporting/text"
	"github.com/olusolaa/sqlschema-compare/internal/textdiff"
)

var diffOpts struct {
	unified        bool
	context        int
	width          int
	stats          bool
	noColor        bool
	algorithm      string
	ignorePatterns []string
}

var diffCmd = &cobra.Command{
	Use:   "diff FILE1 FILE2",
	Short: "Line-diffs two SQL files using the configured normalization policy.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig(viper.GetViper())
		if err != nil {
			printUserFacing(err)
			return err
		}

		policy := cfg.Diff.Policy
		flags := cmd.Flags()
		for name, target := range map[string]*bool{
			"ignore-whitespace":   &policy.IgnoreWhitespace,
			"ignore-case":         &policy.IgnoreCase,
			"ignore-blank-lines":  &policy.IgnoreBlankLines,
			"ignore-line-endings": &policy.IgnoreLineEndings,
			"ignore-comments":     &policy.IgnoreComments,
		} {
			if flags.Changed(name) {
				*target, _ = flags.GetBool(name)
			}
		}
		if flags.Changed("ignore-pattern") {
			policy.IgnorePatterns = diffOpts.ignorePatterns
		}

		algorithm := cfg.Diff.Algorithm
		if diffOpts.algorithm != "" {
			if algorithm, err = textdiff.ParseAlgorithm(diffOpts.algorithm); err != nil {
				return apperrors.WrapUserFacing(err, apperrors.CodeConfigValidation, "invalid --algorithm", "Use default, minimal, fast or none")
			}
		}

		left, err := os.ReadFile(args[0])
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, fmt.Sprintf("failed to read %s", args[0]))
		}
		right, err := os.ReadFile(args[1])
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, fmt.Sprintf("failed to read %s", args[1]))
		}

		out := cmd.OutOrStdout()
		if diffOpts.unified {
			udiff, err := textdiff.UnifiedDiff(string(left), string(right), args[0], args[1], diffOpts.context)
			if err != nil {
				return err
			}
			fmt.Fprint(out, udiff)
			return nil
		}

		engine, err := textdiff.New(policy, textdiff.WithAlgorithm(algorithm))
		if err != nil {
			printUserFacing(err)
			return err
		}
		if diffOpts.noColor {
			color.NoColor = true
		}

		res := engine.Compare(string(left), string(right))
		if res.Identical {
			fmt.Fprintln(out, "Files are identical under the current policy.")
		} else {
			text.WriteSideBySide(out, res, diffOpts.width)
		}
		if diffOpts.stats {
			st := res.Stats
			fmt.Fprintf(out, "\nalgorithm=%s similarity=%.3f blocks=%d/%d added=%d deleted=%d modified=%d\n",
				st.Algorithm, st.Ratio, st.DifferentBlocks, st.TotalBlocks, st.AddedLines, st.DeletedLines, st.ModifiedLines)
		}
		return nil
	},
}

func init() {
	f := diffCmd.Flags()
	f.BoolVarP(&diffOpts.unified, "unified", "u", false, "Print a unified diff of the raw files instead of the side-by-side view")
	f.IntVar(&diffOpts.context, "context", 3, "Context lines for --unified")
	f.IntVar(&diffOpts.width, "width", 60, "Column width of each side")
	f.BoolVar(&diffOpts.stats, "stats", false, "Print diff statistics")
	f.BoolVar(&diffOpts.noColor, "no-color", false, "Disable coloured output")
	f.StringVar(&diffOpts.algorithm, "algorithm", "", "Alignment algorithm (default, minimal, fast, none)")
	f.StringArrayVar(&diffOpts.ignorePatterns, "ignore-pattern", nil, "Ignore lines matching this regular expression (repeatable)")
	f.Bool("ignore-whitespace", false, "Collapse runs of whitespace and trim lines")
	f.Bool("ignore-case", false, "Compare lines case-insensitively")
	f.Bool("ignore-blank-lines", false, "Skip blank lines")
	f.Bool("ignore-line-endings", false, "Treat CRLF and LF as equal")
	f.Bool("ignore-comments", false, "Strip -- and single-line /* */ comments")
}
