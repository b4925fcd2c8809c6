package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/pkg/compare"
)

func ColumnKey(c domain.Column) string { return c.Name }
func IndexKey(i domain.Index) string { return i.Name }
func ForeignKeyKey(fk domain.ForeignKey) string { return fk.Name }

// ColumnAttributes lists what makes two same-named columns equal.
// The ordinal position is deliberately absent.
func ColumnAttributes(c domain.Column) []string {
	identity := ""
	if c.Identity != nil {
		identity = fmt.Sprintf("%d,%d", c.Identity.Seed, c.Identity.Increment)
	}
	return []string{
		"type=" + strings.ToLower(c.DataType),
		"length=" + strconv.Itoa(c.MaxLength),
		"precision=" + strconv.Itoa(c.Precision),
		"scale=" + strconv.Itoa(c.Scale),
		"nullable=" + strconv.FormatBool(c.Nullable),
		"identity=" + identity,
		"computed=" + c.ComputedExpression,
		"default=" + c.DefaultExpression,
	}
}

func IndexAttributes(i domain.Index) []string {
	cols := make([]string, 0, len(i.Columns))
	for _, c := range i.Columns {
		entry := strings.ToLower(c.Name)
		if c.Descending {
			entry += " desc"
		}
		if c.Included {
			entry += " include"
		}
		cols = append(cols, entry)
	}
	return []string{
		"kind=" + strings.ToLower(i.Kind),
		"unique=" + strconv.FormatBool(i.Unique),
		"primary_key=" + strconv.FormatBool(i.PrimaryKey),
		"fill_factor=" + strconv.Itoa(i.FillFactor),
		"row_locks=" + strconv.FormatBool(i.AllowRowLocks),
		"page_locks=" + strconv.FormatBool(i.AllowPageLocks),
		"filter=" + i.FilterExpression,
		"columns=" + strings.Join(cols, ","),
	}
}

func ForeignKeyAttributes(fk domain.ForeignKey) []string {
	return []string{
		"references=" + strings.ToLower(fk.ReferencedSchema+"."+fk.ReferencedTable),
		"columns=" + strings.ToLower(strings.Join(fk.ParentColumns, ",")),
		"referenced_columns=" + strings.ToLower(strings.Join(fk.ReferencedColumns, ",")),
		"on_delete=" + strings.ToUpper(fk.OnDelete),
		"on_update=" + strings.ToUpper(fk.OnUpdate),
		"enabled=" + strconv.FormatBool(!fk.Disabled),
	}
}

// MemberChanges flattens a set comparison into the per-member change list of a result.
func MemberChanges[T any](res compare.SetResult[T]) []domain.MemberChange {
	out := make([]domain.MemberChange, 0, len(res.OnlyInSource)+len(res.OnlyInTarget)+len(res.Changed))
	for _, n := range res.OnlyInSource {
		out = append(out, domain.MemberChange{Name: n, Kind: domain.MemberOnlyInSource})
	}
	for _, n := range res.OnlyInTarget {
		out = append(out, domain.MemberChange{Name: n, Kind: domain.MemberOnlyInTarget})
	}
	for _, n := range res.Changed {
		out = append(out, domain.MemberChange{Name: n, Kind: domain.MemberModified})
	}
	return out
}
