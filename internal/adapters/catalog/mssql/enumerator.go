package mssql

import (
	"context"
	"fmt"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// ListObjects returns every user-defined object of a supported type, grouped
// tables first, then keys, defaults and triggers, then everything else, and
// ordered by schema and name within a group.
func (c *Catalog) ListObjects(ctx context.Context) ([]domain.SchemaObject, error) {
	c.logger.Debugf(ctx, "Enumerating schema objects")

	records, err := c.q.Execute(ctx, listObjectsQuery)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeQueryError, "listing schema objects")
	}

	objects := make([]domain.SchemaObject, 0, len(records))
	for _, rec := range records {
		code := rec.String("type_code")
		typ, ok := domain.ObjectTypeForCode(code)
		if !ok {
			return nil, errors.New(errors.CodeComparisonError,
				fmt.Sprintf("object %s.%s has unsupported type code '%s'", rec.String("schema_name"), rec.String("object_name"), code))
		}
		objects = append(objects, domain.SchemaObject{
			Schema:     rec.String("schema_name"),
			Name:       rec.String("object_name"),
			Type:       typ,
			TypeCode:   code,
			CatalogID:  rec.Int64("object_id"),
			ParentID:   rec.Int64("parent_object_id"),
			CreatedAt:  rec.Time("create_date"),
			ModifiedAt: rec.Time("modify_date"),
			Flags: domain.SessionFlags{
				AnsiNulls:        rec.BoolOr("uses_ansi_nulls", true),
				QuotedIdentifier: rec.BoolOr("uses_quoted_identifier", true),
			},
		})
	}

	c.logger.Infof(ctx, "Enumerated %d schema objects", len(objects))
	return objects, nil
}

// ListDatabases returns the online user databases visible to the connection, ordered by name.
func ListDatabases(ctx context.Context, q Querier) ([]string, error) {
	records, err := q.Execute(ctx, listDatabasesQuery)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("listing databases on %s", q.Label()))
	}
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.String("name"))
	}
	return names, nil
}
