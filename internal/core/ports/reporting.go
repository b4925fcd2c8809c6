package ports

import (
	"context"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, results []domain.ComparisonResult) error
}
