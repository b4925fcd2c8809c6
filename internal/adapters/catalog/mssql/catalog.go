package mssql

import (
	"context"

	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
)

// Querier runs parameterized read-only queries. *Client is the production implementation.
type Querier interface {
	Execute(ctx context.Context, query string, args ...any) ([]Record, error)
	Label() string
}

// Catalog reads schema metadata from one SQL Server database.
type Catalog struct {
	q      Querier
	logger ports.Logger
}

var _ ports.Catalog = (*Catalog)(nil)

func NewCatalog(q Querier, logger ports.Logger) *Catalog {
	return &Catalog{
		q:      q,
		logger: logger.WithFields(map[string]any{"catalog": q.Label()}),
	}
}

func (c *Catalog) Name() string {
	return c.q.Label()
}
