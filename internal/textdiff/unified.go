package textdiff

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// UnifiedDiff renders the raw texts as a unified diff. Normalization does not apply.
func UnifiedDiff(text1, text2, fromName, toName string, context int) (string, error) {
	if context < 0 {
		context = 3
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(text1),
		B:        difflib.SplitLines(text2),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to write unified diff")
	}
	return out, nil
}
