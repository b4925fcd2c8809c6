package constraint

import (
	"context"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/resources/routine"
)

// Comparer handles constraints listed as standalone catalog objects.
// Default and check constraints carry an expression that is compared as text.
// Key constraints (primary, unique, foreign) are compared through the index
// and foreign key facets of their parent table, so a name match is enough here.
type Comparer struct {
	logger ports.Logger
}

func NewComparer(logger ports.Logger) *Comparer {
	return &Comparer{logger: logger}
}

func (c *Comparer) Types() []domain.ObjectType {
	return []domain.ObjectType{domain.ObjectConstraint}
}

func hasExpression(obj domain.SchemaObject) bool {
	return obj.TypeCode == domain.TypeCodeDefault || obj.TypeCode == domain.TypeCodeCheck
}

func (c *Comparer) Compare(ctx context.Context, source ports.Catalog, sourceObj domain.SchemaObject, target ports.Catalog, targetObj domain.SchemaObject) ([]domain.ComparisonResult, error) {
	if !hasExpression(sourceObj) {
		c.logger.Debugf(ctx, "Key constraint %s covered by parent table facets", sourceObj.Identity())
		return []domain.ComparisonResult{{
			Identity:   sourceObj.Identity(),
			ObjectType: domain.ObjectConstraint,
			TypeCode:   sourceObj.TypeCode,
			Action:     domain.ActionIdentical,
		}}, nil
	}

	src, err := routine.Fetch(ctx, source, sourceObj)
	if err != nil {
		return nil, err
	}
	tgt, err := routine.Fetch(ctx, target, targetObj)
	if err != nil {
		return nil, err
	}
	return []domain.ComparisonResult{routine.CompareDefinitions(src, tgt)}, nil
}

func (c *Comparer) Describe(ctx context.Context, catalog ports.Catalog, obj domain.SchemaObject) (*domain.ObjectDetail, error) {
	detail := &domain.ObjectDetail{TypeCode: obj.TypeCode}
	if !hasExpression(obj) {
		return detail, nil
	}
	def, err := routine.Fetch(ctx, catalog, obj)
	if err != nil {
		return nil, err
	}
	detail.Definition = def.Body
	return detail, nil
}
