package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	apperrors "github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/textdiff"
)

const ReporterTypeText = "text"

const defaultDiffWidth = 60

type Config struct {
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
	// ShowDiff prints a side-by-side diff below the table for every definition difference.
	ShowDiff  bool `yaml:"show_diff" mapstructure:"show_diff"`
	DiffWidth int  `yaml:"diff_width" mapstructure:"diff_width" validate:"omitempty,min=20,max=400"`
}

type Reporter struct {
	config           Config
	writer           io.Writer
	logger           ports.Logger
	engine           *textdiff.Engine
	includeIdentical bool
}

type Option func(*Reporter)

func WithWriter(w io.Writer) Option {
	return func(r *Reporter) { r.writer = w }
}

// WithDiffEngine sets the engine used for show_diff; the default ignores nothing.
func WithDiffEngine(e *textdiff.Engine) Option {
	return func(r *Reporter) { r.engine = e }
}

// WithIncludeIdentical lists identical objects in the table. They are always counted.
func WithIncludeIdentical(include bool) Option {
	return func(r *Reporter) { r.includeIdentical = include }
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	if cfg.DiffWidth <= 0 {
		cfg.DiffWidth = defaultDiffWidth
	}

	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		engine, err := textdiff.New(textdiff.DefaultPolicy())
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

var (
	red     = color.New(color.FgRed).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

func (r *Reporter) Report(ctx context.Context, results []domain.ComparisonResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No schema objects found on either side.")
		return nil
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "Schema Comparison Report")
	fmt.Fprintln(tw, "========================")
	fmt.Fprintln(tw, "Action\tType\tObject\tDetails")
	fmt.Fprintln(tw, "------\t----\t------\t-------")

	counts := make(map[domain.Action]int)
	for _, res := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		counts[res.Action]++
		if res.Action == domain.ActionIdentical && !r.includeIdentical {
			continue
		}
		status, details := r.describe(res)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, res.ObjectType, res.Identity, details)
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Results:\t%d\n", len(results))
	fmt.Fprintf(tw, "Identical:\t%s\n", green(counts[domain.ActionIdentical]))
	fmt.Fprintf(tw, "Different:\t%s\n", red(counts[domain.ActionDifferent]))
	fmt.Fprintf(tw, "Create (in source only):\t%s\n", yellow(counts[domain.ActionCreate]))
	fmt.Fprintf(tw, "Drop (in target only):\t%s\n", cyan(counts[domain.ActionDrop]))
	fmt.Fprintf(tw, "Errors:\t%s\n", magenta(counts[domain.ActionError]))
	if err := tw.Flush(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeReportError, "failed to write text report")
	}

	if r.config.ShowDiff {
		for _, res := range results {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.writeDefinitionDiff(res)
		}
	}
	r.logger.Debugf(ctx, "Text report written for %d results", len(results))
	return nil
}

func (r *Reporter) describe(res domain.ComparisonResult) (string, string) {
	switch res.Action {
	case domain.ActionDifferent:
		return red("[DIFFERENT]"), differenceDetails(res)
	case domain.ActionCreate:
		return yellow("[CREATE]"), oneSidedDetails("Only in source", res)
	case domain.ActionDrop:
		return cyan("[DROP]"), oneSidedDetails("Only in target", res)
	case domain.ActionIdentical:
		return green("[IDENTICAL]"), "No differences."
	case domain.ActionError:
		return magenta("[ERROR]"), errorDetails(res.Error)
	default:
		return "[UNKNOWN]", "Unknown comparison action."
	}
}

func differenceDetails(res domain.ComparisonResult) string {
	switch res.DifferenceKind {
	case domain.DiffTypeMismatch:
		return fmt.Sprintf("type mismatch: %s in source, %s in target", detailTypeCode(res.SourceDetail), detailTypeCode(res.TargetDetail))
	case domain.DiffDefinitionUnavailable:
		return "definition unavailable (encrypted or not visible)"
	}
	if len(res.Members) == 0 {
		return string(res.DifferenceKind)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", res.DifferenceKind)
	for i, m := range res.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		switch m.Kind {
		case domain.MemberOnlyInSource:
			b.WriteString("+" + m.Name)
		case domain.MemberOnlyInTarget:
			b.WriteString("-" + m.Name)
		default:
			b.WriteString("~" + m.Name)
		}
	}
	return b.String()
}

func detailTypeCode(d *domain.ObjectDetail) string {
	if d == nil || d.TypeCode == "" {
		return "?"
	}
	return d.TypeCode
}

func oneSidedDetails(prefix string, res domain.ComparisonResult) string {
	if res.Error != nil {
		return fmt.Sprintf("%s (detail unavailable: %v)", prefix, res.Error)
	}
	return prefix + "."
}

func errorDetails(err error) string {
	details := fmt.Sprintf("Comparison failed: %v", err)
	if appErr := (*apperrors.AppError)(nil); errors.As(err, &appErr) {
		if appErr.IsUserFacing {
			details += fmt.Sprintf(" (%s)", appErr.Message)
		}
	}
	return details
}

func (r *Reporter) writeDefinitionDiff(res domain.ComparisonResult) {
	if res.Action != domain.ActionDifferent || res.SourceDetail == nil || res.TargetDetail == nil {
		return
	}
	if res.DifferenceKind != domain.DiffDefinition && res.DifferenceKind != domain.DiffSessionFlags {
		return
	}
	diff := r.engine.Compare(res.SourceDetail.Definition, res.TargetDetail.Definition)
	fmt.Fprintf(r.writer, "\n--- %s %s (%s, similarity %.2f) ---\n", res.ObjectType, res.Identity, res.DifferenceKind, diff.Ratio)
	WriteSideBySide(r.writer, diff, r.config.DiffWidth)
}

// WriteSideBySide prints rendered rows in two columns of the given width,
// colouring changed rows by marker.
func WriteSideBySide(w io.Writer, res textdiff.Result, width int) {
	if width <= 0 {
		width = defaultDiffWidth
	}
	for i := range res.Source {
		left := fit(res.Source[i], width)
		right := fit(res.Target[i], width)
		fmt.Fprintf(w, "%s | %s\n", paint(left, res.Source[i]), paint(right, res.Target[i]))
	}
}

func paint(cell, rendered string) string {
	if len(rendered) < textdiff.MarkerWidth {
		return cell
	}
	switch rendered[:textdiff.MarkerWidth] {
	case textdiff.MarkerDelete:
		return red(cell)
	case textdiff.MarkerInsert:
		return green(cell)
	case textdiff.MarkerReplace:
		return yellow(cell)
	}
	return cell
}

// fit truncates or pads s to exactly width runes.
func fit(s string, width int) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	s = strings.TrimRight(s, "\r")
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
