package mssql

import (
	"context"
	"fmt"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

func requireCatalogID(obj domain.SchemaObject) error {
	if obj.CatalogID == 0 {
		return errors.New(errors.CodeQueryError, fmt.Sprintf("object %s has no catalog id", obj.Identity()))
	}
	return nil
}

func (c *Catalog) GetColumns(ctx context.Context, table domain.SchemaObject) ([]domain.Column, error) {
	if err := requireCatalogID(table); err != nil {
		return nil, err
	}
	records, err := c.q.Execute(ctx, columnsQuery, table.CatalogID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading columns of %s", table.Identity()))
	}

	columns := make([]domain.Column, 0, len(records))
	for _, rec := range records {
		col := domain.Column{
			Name:               rec.String("column_name"),
			DataType:           rec.String("data_type"),
			MaxLength:          rec.Int("max_length"),
			Precision:          rec.Int("precision"),
			Scale:              rec.Int("scale"),
			Nullable:           rec.Bool("is_nullable"),
			ComputedExpression: rec.String("computed_definition"),
			DefaultExpression:  rec.String("default_definition"),
			Ordinal:            rec.Int("column_id"),
		}
		if rec.Bool("is_identity") {
			col.Identity = &domain.IdentitySpec{
				Seed:      rec.Int64("identity_seed"),
				Increment: rec.Int64("identity_increment"),
			}
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// GetIndexes folds the per-column rows into one Index per name, keeping key columns in key order.
func (c *Catalog) GetIndexes(ctx context.Context, table domain.SchemaObject) ([]domain.Index, error) {
	if err := requireCatalogID(table); err != nil {
		return nil, err
	}
	records, err := c.q.Execute(ctx, indexesQuery, table.CatalogID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading indexes of %s", table.Identity()))
	}

	var indexes []domain.Index
	pos := make(map[string]int)
	for _, rec := range records {
		name := rec.String("index_name")
		i, seen := pos[name]
		if !seen {
			indexes = append(indexes, domain.Index{
				Name:             name,
				Kind:             rec.String("index_kind"),
				Unique:           rec.Bool("is_unique"),
				PrimaryKey:       rec.Bool("is_primary_key"),
				UniqueConstraint: rec.Bool("is_unique_constraint"),
				FillFactor:       rec.Int("fill_factor"),
				AllowRowLocks:    rec.Bool("allow_row_locks"),
				AllowPageLocks:   rec.Bool("allow_page_locks"),
				IgnoreDupKey:     rec.Bool("ignore_dup_key"),
				Disabled:         rec.Bool("is_disabled"),
				FilterExpression: rec.String("filter_definition"),
			})
			i = len(indexes) - 1
			pos[name] = i
		}
		indexes[i].Columns = append(indexes[i].Columns, domain.IndexColumn{
			Name:       rec.String("column_name"),
			Descending: rec.Bool("is_descending_key"),
			Included:   rec.Bool("is_included_column"),
		})
	}
	return indexes, nil
}

func (c *Catalog) GetForeignKeys(ctx context.Context, table domain.SchemaObject) ([]domain.ForeignKey, error) {
	if err := requireCatalogID(table); err != nil {
		return nil, err
	}
	records, err := c.q.Execute(ctx, foreignKeysQuery, table.CatalogID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading foreign keys of %s", table.Identity()))
	}

	var fks []domain.ForeignKey
	pos := make(map[string]int)
	for _, rec := range records {
		name := rec.String("fk_name")
		i, seen := pos[name]
		if !seen {
			fks = append(fks, domain.ForeignKey{
				Name:             name,
				ReferencedSchema: rec.String("referenced_schema"),
				ReferencedTable:  rec.String("referenced_table"),
				OnDelete:         rec.String("on_delete"),
				OnUpdate:         rec.String("on_update"),
				Disabled:         rec.Bool("is_disabled"),
				NotTrusted:       rec.Bool("is_not_trusted"),
			})
			i = len(fks) - 1
			pos[name] = i
		}
		fks[i].ParentColumns = append(fks[i].ParentColumns, rec.String("parent_column"))
		fks[i].ReferencedColumns = append(fks[i].ReferencedColumns, rec.String("referenced_column"))
	}
	return fks, nil
}

// DescribeTable reads all structural facets of a table.
func (c *Catalog) DescribeTable(ctx context.Context, table domain.SchemaObject) (domain.TableDescriptor, error) {
	desc := domain.TableDescriptor{Object: table}
	var err error
	if desc.Columns, err = c.GetColumns(ctx, table); err != nil {
		return domain.TableDescriptor{}, err
	}
	if desc.Indexes, err = c.GetIndexes(ctx, table); err != nil {
		return domain.TableDescriptor{}, err
	}
	if desc.ForeignKeys, err = c.GetForeignKeys(ctx, table); err != nil {
		return domain.TableDescriptor{}, err
	}
	return desc, nil
}
