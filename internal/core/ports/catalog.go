package ports

import (
	"context"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
)

// Catalog is a read-only view of one database's metadata.
//
//go:generate mockery --name Catalog --output ./mocks --outpkg mocks --case underscore
type Catalog interface {
	Name() string
	ListObjects(ctx context.Context) ([]domain.SchemaObject, error)
	GetColumns(ctx context.Context, table domain.SchemaObject) ([]domain.Column, error)
	GetIndexes(ctx context.Context, table domain.SchemaObject) ([]domain.Index, error)
	GetForeignKeys(ctx context.Context, table domain.SchemaObject) ([]domain.ForeignKey, error)
	GetDefinition(ctx context.Context, obj domain.SchemaObject) (domain.RoutineDefinition, error)
}
