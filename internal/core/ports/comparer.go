package ports

import (
	"context"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
)

// ObjectComparer is the per-type comparison strategy used by the schema differ.
//
//go:generate mockery --name ObjectComparer --output ./mocks --outpkg mocks --case underscore
type ObjectComparer interface {
	Types() []domain.ObjectType
	// Compare is only called for pairs whose type codes are equal.
	Compare(ctx context.Context, source Catalog, sourceObj domain.SchemaObject, target Catalog, targetObj domain.SchemaObject) ([]domain.ComparisonResult, error)
	// Describe extracts the detail reported for an object present on one side only.
	Describe(ctx context.Context, catalog Catalog, obj domain.SchemaObject) (*domain.ObjectDetail, error)
}
