package mssql

import (
	"context"
	"database/sql/driver"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	mssqldb "github.com/microsoft/go-mssqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports/mocks"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

func newTestCatalog(t *testing.T, cfg Config) (*Catalog, *Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	logger := mocks.NewTestLogger(t)
	client := NewClient(db, "sql01/Sales", cfg, logger)
	return NewCatalog(client, logger), client, mock
}

var orders = domain.SchemaObject{Schema: "dbo", Name: "Orders", Type: domain.ObjectTable, TypeCode: "U", CatalogID: 101}

func TestCatalog_ListObjects(t *testing.T) {
	cat, _, mock := newTestCatalog(t, DefaultConfig())
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	modified := created.Add(48 * time.Hour)

	mock.ExpectQuery(listObjectsQuery).WillReturnRows(sqlmock.NewRows([]string{
		"schema_name", "object_name", "type_code", "object_id", "parent_object_id",
		"create_date", "modify_date", "uses_ansi_nulls", "uses_quoted_identifier",
	}).
		AddRow("dbo", "Orders", "U", int64(101), int64(0), created, modified, nil, nil).
		AddRow("dbo", "PK_Orders", "PK", int64(102), int64(101), created, created, nil, nil).
		AddRow("sales", "usp_Totals", "P", int64(103), int64(0), created, modified, false, true))

	objs, err := cat.ListObjects(context.Background())
	require.NoError(t, err)
	require.Len(t, objs, 3)

	assert.Equal(t, orders.Identity(), objs[0].Identity())
	assert.Equal(t, domain.ObjectTable, objs[0].Type)
	assert.Equal(t, int64(101), objs[0].CatalogID)
	assert.Equal(t, modified, objs[0].ModifiedAt)
	assert.Equal(t, domain.DefaultSessionFlags(), objs[0].Flags)

	assert.Equal(t, domain.ObjectConstraint, objs[1].Type)
	assert.Equal(t, "PK", objs[1].TypeCode)
	assert.Equal(t, int64(101), objs[1].ParentID)

	assert.Equal(t, domain.ObjectProcedure, objs[2].Type)
	assert.Equal(t, domain.SessionFlags{AnsiNulls: false, QuotedIdentifier: true}, objs[2].Flags)
}

func TestCatalog_ListObjects_Errors(t *testing.T) {
	t.Run("unsupported type code", func(t *testing.T) {
		cat, _, mock := newTestCatalog(t, DefaultConfig())
		mock.ExpectQuery(listObjectsQuery).WillReturnRows(
			sqlmock.NewRows([]string{"schema_name", "object_name", "type_code"}).AddRow("dbo", "seq_Order", "SO"))

		_, err := cat.ListObjects(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsComparisonError(err))
	})

	t.Run("server error", func(t *testing.T) {
		cat, _, mock := newTestCatalog(t, DefaultConfig())
		mock.ExpectQuery(listObjectsQuery).WillReturnError(mssqldb.Error{Number: 229, Message: "The SELECT permission was denied"})

		_, err := cat.ListObjects(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsQueryError(err))
		assert.ErrorContains(t, err, "server error 229")
	})
}

func TestListObjectsQuery_OrdersByEnumerationGroup(t *testing.T) {
	assert.Contains(t, listObjectsQuery, "('U', 0)")
	assert.Contains(t, listObjectsQuery, "('PK', 1)")
	assert.Contains(t, listObjectsQuery, "('F', 2)")
	assert.Contains(t, listObjectsQuery, "('UQ', 3)")
	assert.Contains(t, listObjectsQuery, "('D', 4)")
	assert.Contains(t, listObjectsQuery, "('TR', 5)")
	assert.Contains(t, listObjectsQuery, "('P', 6)")
	assert.Contains(t, listObjectsQuery, "o.is_ms_shipped = 0")
	assert.Contains(t, listObjectsQuery, "ORDER BY t.sort_group, s.name, o.name")
}

func TestCatalog_DescribeTable(t *testing.T) {
	cat, _, mock := newTestCatalog(t, DefaultConfig())

	mock.ExpectQuery(columnsQuery).WithArgs(int64(101)).WillReturnRows(sqlmock.NewRows([]string{
		"column_name", "data_type", "max_length", "precision", "scale", "is_nullable", "is_identity",
		"identity_seed", "identity_increment", "computed_definition", "default_definition", "column_id",
	}).
		AddRow("OrderID", "int", int64(4), int64(10), int64(0), false, true, int64(1), int64(1), nil, nil, int64(1)).
		AddRow("Total", "decimal", int64(9), int64(18), int64(2), true, false, nil, nil, nil, "((0))", int64(2)).
		AddRow("TotalWithTax", "decimal", int64(9), int64(19), int64(2), true, false, nil, nil, "([Total]*(1.2))", nil, int64(3)))

	mock.ExpectQuery(indexesQuery).WithArgs(int64(101)).WillReturnRows(sqlmock.NewRows([]string{
		"index_name", "index_kind", "is_unique", "is_primary_key", "is_unique_constraint", "fill_factor",
		"allow_row_locks", "allow_page_locks", "ignore_dup_key", "is_disabled", "filter_definition",
		"column_name", "is_descending_key", "is_included_column",
	}).
		AddRow("PK_Orders", "CLUSTERED", true, true, false, int64(0), true, true, false, false, nil, "OrderID", false, false).
		AddRow("IX_Orders_Total", "NONCLUSTERED", false, false, false, int64(90), true, true, false, false, "([Total]>(0))", "Total", true, false).
		AddRow("IX_Orders_Total", "NONCLUSTERED", false, false, false, int64(90), true, true, false, false, "([Total]>(0))", "OrderID", false, true))

	mock.ExpectQuery(foreignKeysQuery).WithArgs(int64(101)).WillReturnRows(sqlmock.NewRows([]string{
		"fk_name", "referenced_schema", "referenced_table", "parent_column", "referenced_column",
		"on_delete", "on_update", "is_disabled", "is_not_trusted",
	}).
		AddRow("FK_Orders_Customer", "dbo", "Customers", "CustomerID", "ID", "CASCADE", "NO_ACTION", false, false).
		AddRow("FK_Orders_Customer", "dbo", "Customers", "Region", "Region", "CASCADE", "NO_ACTION", false, false))

	got, err := cat.DescribeTable(context.Background(), orders)
	require.NoError(t, err)

	want := domain.TableDescriptor{
		Object: orders,
		Columns: []domain.Column{
			{Name: "OrderID", DataType: "int", MaxLength: 4, Precision: 10, Identity: &domain.IdentitySpec{Seed: 1, Increment: 1}, Ordinal: 1},
			{Name: "Total", DataType: "decimal", MaxLength: 9, Precision: 18, Scale: 2, Nullable: true, DefaultExpression: "((0))", Ordinal: 2},
			{Name: "TotalWithTax", DataType: "decimal", MaxLength: 9, Precision: 19, Scale: 2, Nullable: true, ComputedExpression: "([Total]*(1.2))", Ordinal: 3},
		},
		Indexes: []domain.Index{
			{
				Name: "PK_Orders", Kind: "CLUSTERED", Unique: true, PrimaryKey: true, AllowRowLocks: true, AllowPageLocks: true,
				Columns: []domain.IndexColumn{{Name: "OrderID"}},
			},
			{
				Name: "IX_Orders_Total", Kind: "NONCLUSTERED", FillFactor: 90, AllowRowLocks: true, AllowPageLocks: true,
				FilterExpression: "([Total]>(0))",
				Columns:          []domain.IndexColumn{{Name: "Total", Descending: true}, {Name: "OrderID", Included: true}},
			},
		},
		ForeignKeys: []domain.ForeignKey{{
			Name: "FK_Orders_Customer", ReferencedSchema: "dbo", ReferencedTable: "Customers",
			ParentColumns: []string{"CustomerID", "Region"}, ReferencedColumns: []string{"ID", "Region"},
			OnDelete: "CASCADE", OnUpdate: "NO_ACTION",
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DescribeTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_ExtractorRejectsMissingCatalogID(t *testing.T) {
	cat, _, _ := newTestCatalog(t, DefaultConfig())
	obj := orders
	obj.CatalogID = 0
	ctx := context.Background()

	_, err := cat.GetColumns(ctx, obj)
	assert.True(t, errors.IsQueryError(err))
	_, err = cat.GetIndexes(ctx, obj)
	assert.True(t, errors.IsQueryError(err))
	_, err = cat.GetForeignKeys(ctx, obj)
	assert.True(t, errors.IsQueryError(err))
	_, err = cat.GetDefinition(ctx, obj)
	assert.True(t, errors.IsQueryError(err))
}

func TestCatalog_GetDefinition(t *testing.T) {
	proc := domain.SchemaObject{Schema: "sales", Name: "usp_Totals", Type: domain.ObjectProcedure, TypeCode: "P", CatalogID: 103}
	cols := []string{"definition", "uses_ansi_nulls", "uses_quoted_identifier"}

	tests := []struct {
		name string
		row  []driver.Value
		want domain.RoutineDefinition
	}{
		{
			name: "visible body with flags",
			row:  []driver.Value{"CREATE PROCEDURE sales.usp_Totals AS SELECT 1", false, true},
			want: domain.RoutineDefinition{Object: proc, Body: "CREATE PROCEDURE sales.usp_Totals AS SELECT 1", QuotedIdentifierOn: true},
		},
		{
			name: "encrypted body is empty, not an error",
			row:  []driver.Value{nil, true, true},
			want: domain.RoutineDefinition{Object: proc, AnsiNullsOn: true, QuotedIdentifierOn: true},
		},
		{
			name: "constraint without module flags uses defaults",
			row:  []driver.Value{"((0))", nil, nil},
			want: domain.RoutineDefinition{Object: proc, Body: "((0))", AnsiNullsOn: true, QuotedIdentifierOn: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, _, mock := newTestCatalog(t, DefaultConfig())
			mock.ExpectQuery(definitionQuery).WithArgs(int64(103)).WillReturnRows(sqlmock.NewRows(cols).AddRow(tt.row...))

			got, err := cat.GetDefinition(context.Background(), proc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("vanished object", func(t *testing.T) {
		cat, _, mock := newTestCatalog(t, DefaultConfig())
		mock.ExpectQuery(definitionQuery).WithArgs(int64(103)).WillReturnRows(sqlmock.NewRows(cols))

		_, err := cat.GetDefinition(context.Background(), proc)
		require.Error(t, err)
		assert.True(t, errors.IsQueryError(err))
	})
}

func TestListDatabases(t *testing.T) {
	_, client, mock := newTestCatalog(t, DefaultConfig())
	mock.ExpectQuery(listDatabasesQuery).WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Archive").AddRow("Sales"))

	names, err := ListDatabases(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, []string{"Archive", "Sales"}, names)
}

func TestClient_Execute(t *testing.T) {
	t.Run("query timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.QueryTimeout = 20 * time.Millisecond
		_, client, mock := newTestCatalog(t, cfg)
		mock.ExpectQuery("SELECT name FROM sys.tables").
			WillDelayFor(time.Second).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Orders"))

		_, err := client.Execute(context.Background(), "SELECT name FROM sys.tables")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeTimeout))
		assert.True(t, errors.IsQueryError(err))
	})

	t.Run("driver failure", func(t *testing.T) {
		_, client, mock := newTestCatalog(t, DefaultConfig())
		mock.ExpectQuery("SELECT 1").WillReturnError(stderrors.New("connection reset by peer"))

		_, err := client.Execute(context.Background(), "SELECT 1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeQueryError))
	})

	t.Run("throttled query honours cancellation", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.QueriesPerSecond = 1
		_, client, mock := newTestCatalog(t, cfg)
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(int64(1)))

		rows, err := client.Execute(context.Background(), "SELECT 1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows[0].Int64("v"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = client.Execute(ctx, "SELECT 1")
		require.Error(t, err)
		assert.True(t, errors.IsQueryError(err))
	})
}

func TestRecord(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := Record{
		"name":    "Orders",
		"raw":     []byte("12.50"),
		"count":   int64(42),
		"small":   int16(7),
		"numeric": []byte(" 19 "),
		"flag":    true,
		"bit":     int64(1),
		"created": ts,
		"missing": nil,
	}

	assert.Equal(t, "Orders", rec.String("name"))
	assert.Equal(t, "12.50", rec.String("raw"))
	assert.Equal(t, "42", rec.String("count"))
	assert.Equal(t, "", rec.String("missing"))
	assert.Equal(t, int64(42), rec.Int64("count"))
	assert.Equal(t, 7, rec.Int("small"))
	assert.Equal(t, int64(19), rec.Int64("numeric"))
	assert.True(t, rec.Bool("flag"))
	assert.True(t, rec.Bool("bit"))
	assert.False(t, rec.Bool("missing"))
	assert.True(t, rec.BoolOr("missing", true))
	assert.True(t, rec.BoolOr("bit", false))
	assert.Equal(t, ts, rec.Time("created"))
	assert.True(t, rec.Time("name").IsZero())
	assert.True(t, rec.IsNull("missing"))
}
