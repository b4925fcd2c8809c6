package mssql

import (
	"context"
	"fmt"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// GetDefinition reads the stored body and session flags of a routine, view,
// trigger or default/check constraint. A body the catalog withholds (encrypted
// or not visible to the login) comes back empty rather than as an error.
func (c *Catalog) GetDefinition(ctx context.Context, obj domain.SchemaObject) (domain.RoutineDefinition, error) {
	if err := requireCatalogID(obj); err != nil {
		return domain.RoutineDefinition{}, err
	}
	records, err := c.q.Execute(ctx, definitionQuery, obj.CatalogID)
	if err != nil {
		return domain.RoutineDefinition{}, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading definition of %s", obj.Identity()))
	}
	if len(records) == 0 {
		return domain.RoutineDefinition{}, errors.New(errors.CodeQueryError,
			fmt.Sprintf("object %s (id %d) no longer exists", obj.Identity(), obj.CatalogID))
	}

	rec := records[0]
	def := domain.RoutineDefinition{
		Object:             obj,
		Body:               rec.String("definition"),
		AnsiNullsOn:        rec.BoolOr("uses_ansi_nulls", true),
		QuotedIdentifierOn: rec.BoolOr("uses_quoted_identifier", true),
	}
	if def.Unavailable() {
		c.logger.Warnf(ctx, "Definition of %s %s is not available", obj.Type, obj.Identity())
	}
	return def, nil
}
