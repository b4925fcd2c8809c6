package table

import (
	"context"
	"fmt"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/resources/helper"
	"github.com/olusolaa/sqlschema-compare/pkg/compare"
)

// Comparer compares tables facet by facet. Each differing facet (columns,
// indexes, foreign keys) yields its own Different result.
type Comparer struct {
	logger ports.Logger
}

func NewComparer(logger ports.Logger) *Comparer {
	return &Comparer{logger: logger}
}

func (c *Comparer) Types() []domain.ObjectType {
	return []domain.ObjectType{domain.ObjectTable}
}

func (c *Comparer) Compare(ctx context.Context, source ports.Catalog, sourceObj domain.SchemaObject, target ports.Catalog, targetObj domain.SchemaObject) ([]domain.ComparisonResult, error) {
	src, err := Describe(ctx, source, sourceObj)
	if err != nil {
		return nil, err
	}
	tgt, err := Describe(ctx, target, targetObj)
	if err != nil {
		return nil, err
	}

	var results []domain.ComparisonResult
	newResult := func(kind domain.DifferenceKind, sd, td *domain.ObjectDetail, members []domain.MemberChange) domain.ComparisonResult {
		sd.TypeCode, td.TypeCode = sourceObj.TypeCode, targetObj.TypeCode
		return domain.ComparisonResult{
			Identity:       sourceObj.Identity(),
			ObjectType:     domain.ObjectTable,
			TypeCode:       sourceObj.TypeCode,
			Action:         domain.ActionDifferent,
			DifferenceKind: kind,
			SourceDetail:   sd,
			TargetDetail:   td,
			Members:        members,
		}
	}

	if cols := compare.NamedSets(src.Columns, tgt.Columns, helper.ColumnKey, helper.ColumnAttributes); cols.Differs {
		results = append(results, newResult(domain.DiffColumns,
			&domain.ObjectDetail{Columns: cols.Source}, &domain.ObjectDetail{Columns: cols.Target}, helper.MemberChanges(cols)))
	}
	if idx := compare.NamedSets(src.Indexes, tgt.Indexes, helper.IndexKey, helper.IndexAttributes); idx.Differs {
		results = append(results, newResult(domain.DiffIndexes,
			&domain.ObjectDetail{Indexes: idx.Source}, &domain.ObjectDetail{Indexes: idx.Target}, helper.MemberChanges(idx)))
	}
	if fks := compare.NamedSets(src.ForeignKeys, tgt.ForeignKeys, helper.ForeignKeyKey, helper.ForeignKeyAttributes); fks.Differs {
		results = append(results, newResult(domain.DiffForeignKeys,
			&domain.ObjectDetail{ForeignKeys: fks.Source}, &domain.ObjectDetail{ForeignKeys: fks.Target}, helper.MemberChanges(fks)))
	}

	if len(results) == 0 {
		c.logger.Debugf(ctx, "Table %s identical across %d columns, %d indexes, %d foreign keys",
			sourceObj.Identity(), len(src.Columns), len(src.Indexes), len(src.ForeignKeys))
		return []domain.ComparisonResult{{
			Identity:   sourceObj.Identity(),
			ObjectType: domain.ObjectTable,
			TypeCode:   sourceObj.TypeCode,
			Action:     domain.ActionIdentical,
		}}, nil
	}
	return results, nil
}

func (c *Comparer) Describe(ctx context.Context, catalog ports.Catalog, obj domain.SchemaObject) (*domain.ObjectDetail, error) {
	td, err := Describe(ctx, catalog, obj)
	if err != nil {
		return nil, err
	}
	return &domain.ObjectDetail{
		TypeCode:    obj.TypeCode,
		Columns:     td.Columns,
		Indexes:     td.Indexes,
		ForeignKeys: td.ForeignKeys,
	}, nil
}

// Describe reads the three facets of one table, always fresh from the catalog.
func Describe(ctx context.Context, catalog ports.Catalog, obj domain.SchemaObject) (domain.TableDescriptor, error) {
	td := domain.TableDescriptor{Object: obj}
	var err error

	if td.Columns, err = catalog.GetColumns(ctx, obj); err != nil {
		return td, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading columns of %s on %s", obj.Identity(), catalog.Name()))
	}
	if td.Indexes, err = catalog.GetIndexes(ctx, obj); err != nil {
		return td, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading indexes of %s on %s", obj.Identity(), catalog.Name()))
	}
	if td.ForeignKeys, err = catalog.GetForeignKeys(ctx, obj); err != nil {
		return td, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("reading foreign keys of %s on %s", obj.Identity(), catalog.Name()))
	}
	return td, nil
}
