package routine

import (
	"context"
	"fmt"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// Comparer compares procedures, views, functions and triggers by definition text.
// Equality is textual; no SQL is parsed.
type Comparer struct {
	logger ports.Logger
}

func NewComparer(logger ports.Logger) *Comparer {
	return &Comparer{logger: logger}
}

func (c *Comparer) Types() []domain.ObjectType {
	return []domain.ObjectType{domain.ObjectProcedure, domain.ObjectView, domain.ObjectFunction, domain.ObjectTrigger}
}

func (c *Comparer) Compare(ctx context.Context, source ports.Catalog, sourceObj domain.SchemaObject, target ports.Catalog, targetObj domain.SchemaObject) ([]domain.ComparisonResult, error) {
	src, err := Fetch(ctx, source, sourceObj)
	if err != nil {
		return nil, err
	}
	tgt, err := Fetch(ctx, target, targetObj)
	if err != nil {
		return nil, err
	}

	res := CompareDefinitions(src, tgt)
	if res.DifferenceKind == domain.DiffDefinitionUnavailable {
		c.logger.Warnf(ctx, "Definition of %s %s is not visible on one or both sides", sourceObj.Type, sourceObj.Identity())
	}
	return []domain.ComparisonResult{res}, nil
}

func (c *Comparer) Describe(ctx context.Context, catalog ports.Catalog, obj domain.SchemaObject) (*domain.ObjectDetail, error) {
	def, err := Fetch(ctx, catalog, obj)
	if err != nil {
		return nil, err
	}
	return &domain.ObjectDetail{TypeCode: obj.TypeCode, Definition: def.Script()}, nil
}

func Fetch(ctx context.Context, catalog ports.Catalog, obj domain.SchemaObject) (domain.RoutineDefinition, error) {
	def, err := catalog.GetDefinition(ctx, obj)
	if err != nil {
		return def, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading definition of %s on %s", obj.Identity(), catalog.Name()))
	}
	return def, nil
}

// CompareDefinitions classifies one pair of definitions.
//   - a body missing on either side is reported as unavailable, never as equal;
//   - differing bodies carry both raw bodies;
//   - equal bodies with different session flags carry both re-creation scripts.
func CompareDefinitions(src, tgt domain.RoutineDefinition) domain.ComparisonResult {
	res := domain.ComparisonResult{
		Identity:   src.Object.Identity(),
		ObjectType: src.Object.Type,
		TypeCode:   src.Object.TypeCode,
		Action:     domain.ActionIdentical,
	}
	detail := func(def domain.RoutineDefinition, body string) *domain.ObjectDetail {
		return &domain.ObjectDetail{TypeCode: def.Object.TypeCode, Definition: body}
	}

	switch {
	case src.Unavailable() || tgt.Unavailable():
		res.Action = domain.ActionDifferent
		res.DifferenceKind = domain.DiffDefinitionUnavailable
		res.SourceDetail, res.TargetDetail = detail(src, src.Body), detail(tgt, tgt.Body)
	case src.Body != tgt.Body:
		res.Action = domain.ActionDifferent
		res.DifferenceKind = domain.DiffDefinition
		res.SourceDetail, res.TargetDetail = detail(src, src.Body), detail(tgt, tgt.Body)
	case src.AnsiNullsOn != tgt.AnsiNullsOn || src.QuotedIdentifierOn != tgt.QuotedIdentifierOn:
		res.Action = domain.ActionDifferent
		res.DifferenceKind = domain.DiffSessionFlags
		res.SourceDetail, res.TargetDetail = detail(src, src.Script()), detail(tgt, tgt.Script())
	}
	return res
}
