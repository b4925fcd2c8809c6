package ports

import (
	"context"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
)

//go:generate mockery --name SchemaComparer --output ./mocks --outpkg mocks --case underscore
type SchemaComparer interface {
	CompareSchemas(ctx context.Context, source, target Catalog) ([]domain.ComparisonResult, error)
}
