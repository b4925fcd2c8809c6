package table_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports/mocks"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/resources/table"
)

var orders = domain.SchemaObject{Schema: "dbo", Name: "Orders", Type: domain.ObjectTable, TypeCode: "U", CatalogID: 101}

func ordersColumns() []domain.Column {
	return []domain.Column{
		{Name: "id", DataType: "int", Identity: &domain.IdentitySpec{Seed: 1, Increment: 1}, Ordinal: 1},
		{Name: "customer_id", DataType: "int", Ordinal: 2},
		{Name: "note", DataType: "nvarchar", MaxLength: 400, Nullable: true, Ordinal: 3},
	}
}

func ordersIndexes(fillFactor int) []domain.Index {
	return []domain.Index{
		{Name: "PK_Orders", Kind: "CLUSTERED", Unique: true, PrimaryKey: true, AllowRowLocks: true, AllowPageLocks: true,
			Columns: []domain.IndexColumn{{Name: "id"}}},
		{Name: "IX_Orders_customer", Kind: "NONCLUSTERED", FillFactor: fillFactor, AllowRowLocks: true, AllowPageLocks: true,
			Columns: []domain.IndexColumn{{Name: "customer_id"}}},
	}
}

func ordersForeignKeys() []domain.ForeignKey {
	return []domain.ForeignKey{{
		Name: "FK_Orders_Customers", ReferencedSchema: "dbo", ReferencedTable: "Customers",
		ParentColumns: []string{"customer_id"}, ReferencedColumns: []string{"id"},
		OnDelete: "NO_ACTION", OnUpdate: "NO_ACTION",
	}}
}

func catalogWith(t *testing.T, name string, cols []domain.Column, idx []domain.Index, fks []domain.ForeignKey) *mocks.Catalog {
	c := mocks.NewCatalog(t)
	c.On("Name").Maybe().Return(name)
	c.On("GetColumns", mock.Anything, orders).Return(cols, nil)
	c.On("GetIndexes", mock.Anything, orders).Return(idx, nil)
	c.On("GetForeignKeys", mock.Anything, orders).Return(fks, nil)
	return c
}

func TestComparer_Compare(t *testing.T) {
	ctx := context.Background()
	cmp := table.NewComparer(mocks.NewTestLogger(t))

	t.Run("identical tables", func(t *testing.T) {
		src := catalogWith(t, "source", ordersColumns(), ordersIndexes(0), ordersForeignKeys())
		tgt := catalogWith(t, "target", ordersColumns(), ordersIndexes(0), ordersForeignKeys())

		results, err := cmp.Compare(ctx, src, orders, tgt, orders)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, domain.ActionIdentical, results[0].Action)
		assert.Equal(t, domain.DiffNone, results[0].DifferenceKind)
	})

	t.Run("reordered columns are identical", func(t *testing.T) {
		cols := ordersColumns()
		reordered := []domain.Column{cols[2], cols[0], cols[1]}
		reordered[0].Ordinal, reordered[1].Ordinal, reordered[2].Ordinal = 1, 2, 3
		src := catalogWith(t, "source", cols, ordersIndexes(0), ordersForeignKeys())
		tgt := catalogWith(t, "target", reordered, ordersIndexes(0), ordersForeignKeys())

		results, err := cmp.Compare(ctx, src, orders, tgt, orders)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, domain.ActionIdentical, results[0].Action)
	})

	t.Run("fill factor only yields an index result", func(t *testing.T) {
		src := catalogWith(t, "source", ordersColumns(), ordersIndexes(0), ordersForeignKeys())
		tgt := catalogWith(t, "target", ordersColumns(), ordersIndexes(90), ordersForeignKeys())

		results, err := cmp.Compare(ctx, src, orders, tgt, orders)
		require.NoError(t, err)
		require.Len(t, results, 1)
		res := results[0]
		assert.Equal(t, domain.ActionDifferent, res.Action)
		assert.Equal(t, domain.DiffIndexes, res.DifferenceKind)
		assert.Equal(t, []domain.MemberChange{{Name: "IX_Orders_customer", Kind: domain.MemberModified}}, res.Members)
		require.NotNil(t, res.SourceDetail)
		require.NotNil(t, res.TargetDetail)
		assert.Len(t, res.SourceDetail.Indexes, 2)
		assert.Empty(t, res.SourceDetail.Columns)
	})

	t.Run("one result per differing facet", func(t *testing.T) {
		cols := ordersColumns()
		cols[2].MaxLength = 800
		src := catalogWith(t, "source", ordersColumns(), ordersIndexes(0), ordersForeignKeys())
		tgt := catalogWith(t, "target", cols, ordersIndexes(0), nil)

		results, err := cmp.Compare(ctx, src, orders, tgt, orders)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, domain.DiffColumns, results[0].DifferenceKind)
		assert.Equal(t, []domain.MemberChange{{Name: "note", Kind: domain.MemberModified}}, results[0].Members)
		assert.Equal(t, domain.DiffForeignKeys, results[1].DifferenceKind)
		assert.Equal(t, []domain.MemberChange{{Name: "FK_Orders_Customers", Kind: domain.MemberOnlyInSource}}, results[1].Members)
		for _, r := range results {
			assert.Equal(t, domain.ActionDifferent, r.Action)
			assert.Equal(t, orders.Identity(), r.Identity)
		}
	})

	t.Run("extraction failure is returned with its cause", func(t *testing.T) {
		cause := stderrors.New("permission denied on sys.indexes")
		src := catalogWith(t, "source", ordersColumns(), ordersIndexes(0), ordersForeignKeys())
		tgt := mocks.NewCatalog(t)
		tgt.On("Name").Return("target")
		tgt.On("GetColumns", mock.Anything, orders).Return(ordersColumns(), nil)
		tgt.On("GetIndexes", mock.Anything, orders).Return(nil, cause)

		results, err := cmp.Compare(ctx, src, orders, tgt, orders)
		require.Error(t, err)
		assert.Nil(t, results)
		assert.True(t, errors.IsQueryError(err))
		assert.ErrorIs(t, err, cause)
	})
}

func TestComparer_Describe(t *testing.T) {
	c := catalogWith(t, "source", ordersColumns(), ordersIndexes(0), ordersForeignKeys())
	detail, err := table.NewComparer(mocks.NewTestLogger(t)).Describe(context.Background(), c, orders)
	require.NoError(t, err)
	assert.Equal(t, "U", detail.TypeCode)
	assert.Len(t, detail.Columns, 3)
	assert.Len(t, detail.Indexes, 2)
	assert.Len(t, detail.ForeignKeys, 1)
}
