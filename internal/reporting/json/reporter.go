package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/textdiff"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Compact bool `yaml:"compact" mapstructure:"compact"`
	// IncludeDiff adds a unified diff to every definition difference.
	IncludeDiff bool `yaml:"include_diff" mapstructure:"include_diff"`
}

type Reporter struct {
	config           Config
	writer           io.Writer
	logger           ports.Logger
	includeIdentical bool
}

type Option func(*Reporter)

func WithWriter(w io.Writer) Option {
	return func(r *Reporter) { r.writer = w }
}

// WithIncludeIdentical lists identical objects in results. They are always counted.
func WithIncludeIdentical(include bool) Option {
	return func(r *Reporter) { r.includeIdentical = include }
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type jsonReport struct {
	Summary jsonSummary      `json:"summary"`
	Results []jsonResultItem `json:"results"`
}

type jsonSummary struct {
	Total     int `json:"total"`
	Identical int `json:"identical"`
	Different int `json:"different"`
	Create    int `json:"create"`
	Drop      int `json:"drop"`
	Errors    int `json:"errors"`
}

type jsonResultItem struct {
	Action         domain.Action        `json:"action"`
	ObjectType     domain.ObjectType    `json:"object_type"`
	TypeCode       string               `json:"type_code,omitempty"`
	Schema         string               `json:"schema"`
	Name           string               `json:"name"`
	DifferenceKind string               `json:"difference_kind,omitempty"`
	Members        []jsonMember         `json:"members,omitempty"`
	Source         *domain.ObjectDetail `json:"source,omitempty"`
	Target         *domain.ObjectDetail `json:"target,omitempty"`
	Diff           string               `json:"diff,omitempty"`
	ErrorCode      string               `json:"error_code,omitempty"`
	ErrorMessage   string               `json:"error_message,omitempty"`
}

type jsonMember struct {
	Name string                  `json:"name"`
	Kind domain.MemberChangeKind `json:"kind"`
}

func (r *Reporter) Report(ctx context.Context, results []domain.ComparisonResult) error {
	report := jsonReport{
		Summary: jsonSummary{Total: len(results)},
		Results: make([]jsonResultItem, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}

		switch res.Action {
		case domain.ActionIdentical:
			report.Summary.Identical++
		case domain.ActionDifferent:
			report.Summary.Different++
		case domain.ActionCreate:
			report.Summary.Create++
		case domain.ActionDrop:
			report.Summary.Drop++
		case domain.ActionError:
			report.Summary.Errors++
		}
		if res.Action == domain.ActionIdentical && !r.includeIdentical {
			continue
		}

		item := jsonResultItem{
			Action:         res.Action,
			ObjectType:     res.ObjectType,
			TypeCode:       res.TypeCode,
			Schema:         res.Identity.Schema,
			Name:           res.Identity.Name,
			DifferenceKind: string(res.DifferenceKind),
			Source:         res.SourceDetail,
			Target:         res.TargetDetail,
		}
		for _, m := range res.Members {
			item.Members = append(item.Members, jsonMember{Name: m.Name, Kind: m.Kind})
		}
		if res.Error != nil {
			item.ErrorCode = string(errors.GetCode(res.Error))
			item.ErrorMessage = res.Error.Error()
		}
		if r.config.IncludeDiff && hasDefinitions(res) {
			diff, err := textdiff.UnifiedDiff(res.SourceDetail.Definition, res.TargetDetail.Definition, "source/"+res.Identity.String(), "target/"+res.Identity.String(), 3)
			if err != nil {
				r.logger.Warnf(ctx, "Unified diff for %s failed: %v", res.Identity, err)
			}
			item.Diff = diff
		}

		report.Results = append(report.Results, item)
	}

	encoder := json.NewEncoder(r.writer)
	if !r.config.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return errors.Wrap(err, errors.CodeReportError, fmt.Sprintf("failed to encode JSON report of %d results", len(results)))
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}

func hasDefinitions(res domain.ComparisonResult) bool {
	if res.Action != domain.ActionDifferent || res.SourceDetail == nil || res.TargetDetail == nil {
		return false
	}
	return res.DifferenceKind == domain.DiffDefinition || res.DifferenceKind == domain.DiffSessionFlags
}
