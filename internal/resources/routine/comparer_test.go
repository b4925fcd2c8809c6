package routine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports/mocks"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/resources/routine"
)

var proc = domain.SchemaObject{Schema: "sales", Name: "usp_Totals", Type: domain.ObjectProcedure, TypeCode: "P", CatalogID: 7}

func def(body string, ansiNulls, quotedIdent bool) domain.RoutineDefinition {
	return domain.RoutineDefinition{Object: proc, Body: body, AnsiNullsOn: ansiNulls, QuotedIdentifierOn: quotedIdent}
}

func TestComparer_Compare(t *testing.T) {
	const body = "CREATE PROCEDURE sales.usp_Totals AS\nSELECT 1"

	tests := []struct {
		name     string
		src, tgt domain.RoutineDefinition
		action   domain.Action
		kind     domain.DifferenceKind
		srcText  string
		tgtText  string
	}{
		{
			name: "same body", src: def(body, true, true), tgt: def(body, true, true),
			action: domain.ActionIdentical,
		},
		{
			name: "different body carries raw bodies", src: def(body, true, true), tgt: def(body+"\nSELECT 2", false, true),
			action: domain.ActionDifferent, kind: domain.DiffDefinition, srcText: body, tgtText: body + "\nSELECT 2",
		},
		{
			name: "body differs only by case", src: def(body, true, true), tgt: def("create procedure sales.usp_Totals AS\nSELECT 1", true, true),
			action: domain.ActionDifferent, kind: domain.DiffDefinition, srcText: body, tgtText: "create procedure sales.usp_Totals AS\nSELECT 1",
		},
		{
			name: "encrypted on target", src: def(body, true, true), tgt: def("", true, true),
			action: domain.ActionDifferent, kind: domain.DiffDefinitionUnavailable, srcText: body,
		},
		{
			name: "encrypted on both sides is not identical", src: def("", true, true), tgt: def("", true, true),
			action: domain.ActionDifferent, kind: domain.DiffDefinitionUnavailable,
		},
		{
			name: "session flags differ", src: def(body, true, true), tgt: def(body, false, true),
			action: domain.ActionDifferent, kind: domain.DiffSessionFlags,
			srcText: body, tgtText: "SET ANSI_NULLS OFF\nGO\n" + body,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := mocks.NewCatalog(t)
			src.On("GetDefinition", mock.Anything, proc).Return(tt.src, nil)
			tgt := mocks.NewCatalog(t)
			tgt.On("GetDefinition", mock.Anything, proc).Return(tt.tgt, nil)

			results, err := routine.NewComparer(mocks.NewTestLogger(t)).Compare(context.Background(), src, proc, tgt, proc)
			require.NoError(t, err)
			require.Len(t, results, 1)
			res := results[0]
			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.kind, res.DifferenceKind)
			assert.Equal(t, domain.ObjectProcedure, res.ObjectType)
			if tt.action == domain.ActionDifferent {
				require.NotNil(t, res.SourceDetail)
				require.NotNil(t, res.TargetDetail)
				assert.Equal(t, tt.srcText, res.SourceDetail.Definition)
				assert.Equal(t, tt.tgtText, res.TargetDetail.Definition)
			}
		})
	}
}

func TestComparer_FetchError(t *testing.T) {
	src := mocks.NewCatalog(t)
	src.On("Name").Return("source")
	src.On("GetDefinition", mock.Anything, proc).Return(nil, errors.New(errors.CodeTimeout, "query timed out"))

	_, err := routine.NewComparer(mocks.NewTestLogger(t)).Compare(context.Background(), src, proc, mocks.NewCatalog(t), proc)
	require.Error(t, err)
	assert.Equal(t, errors.CodeTimeout, errors.GetCode(err))
}

func TestComparer_DescribeReturnsScript(t *testing.T) {
	c := mocks.NewCatalog(t)
	c.On("GetDefinition", mock.Anything, proc).Return(def("CREATE PROCEDURE x AS SELECT 1", true, false), nil)

	detail, err := routine.NewComparer(mocks.NewTestLogger(t)).Describe(context.Background(), c, proc)
	require.NoError(t, err)
	assert.Equal(t, "SET QUOTED_IDENTIFIER OFF\nGO\nCREATE PROCEDURE x AS SELECT 1", detail.Definition)
	assert.Equal(t, "P", detail.TypeCode)
}
