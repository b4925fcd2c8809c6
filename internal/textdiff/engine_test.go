package textdiff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/textdiff"
)

func newEngine(t *testing.T, policy textdiff.Policy, opts ...textdiff.Option) *textdiff.Engine {
	t.Helper()
	e, err := textdiff.New(policy, opts...)
	require.NoError(t, err)
	return e
}

func kinds(spans []textdiff.Span) []textdiff.SpanKind {
	out := make([]textdiff.SpanKind, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Kind)
	}
	return out
}

func stripped(rendered []string) []string {
	var out []string
	for _, l := range rendered {
		if text, ok := textdiff.StripMarker(l); ok {
			out = append(out, text)
		}
	}
	return out
}

func TestCompareText_SelfIsIdentical(t *testing.T) {
	texts := []string{
		"",
		"SELECT 1",
		"CREATE PROCEDURE dbo.p\nAS\nBEGIN\n  SELECT 1\nEND\n",
		"\n\n\n",
		"line\r\nother\r\n",
	}
	policies := []textdiff.Policy{
		textdiff.DefaultPolicy(),
		{IgnoreWhitespace: true, IgnoreCase: true},
		{IgnoreBlankLines: true, IgnoreComments: true, IgnoreLineEndings: true},
		{IgnorePatterns: []string{`\s*--`}},
	}
	for _, text := range texts {
		for _, p := range policies {
			_, _, ratio, identical, err := textdiff.CompareText(text, text, p)
			require.NoError(t, err)
			assert.True(t, identical, "text %q policy %+v", text, p)
			assert.Equal(t, 1.0, ratio)
		}
	}
}

func TestCompareText_OneLineChanged(t *testing.T) {
	e := newEngine(t, textdiff.DefaultPolicy())
	res := e.Compare("SELECT 1\nSELECT 2", "SELECT 1\nSELECT 3")

	assert.False(t, res.Identical)
	require.Len(t, res.Spans, 2)
	assert.Equal(t, []textdiff.SpanKind{textdiff.SpanEqual, textdiff.SpanReplace}, kinds(res.Spans))

	assert.Equal(t, []textdiff.Line{{Number: 1, Text: "SELECT 1"}}, res.Spans[0].SourceLines)
	assert.Equal(t, []textdiff.Line{{Number: 2, Text: "SELECT 2"}}, res.Spans[1].SourceLines)
	assert.Equal(t, []textdiff.Line{{Number: 2, Text: "SELECT 3"}}, res.Spans[1].TargetLines)
	assert.Equal(t, textdiff.LineRange{Start: 2, End: 3}, res.Spans[1].Source)
	assert.InDelta(t, 0.5, res.Ratio, 1e-9)

	assert.Equal(t, []string{"  SELECT 1", "~ SELECT 2"}, res.Source)
	assert.Equal(t, []string{"  SELECT 1", "~ SELECT 3"}, res.Target)
}

func TestCompareText_CaseFolding(t *testing.T) {
	_, _, ratio, identical, err := textdiff.CompareText("Select 1", "select 1", textdiff.Policy{IgnoreCase: true})
	require.NoError(t, err)
	assert.True(t, identical)
	assert.Equal(t, 1.0, ratio)

	e := newEngine(t, textdiff.Policy{IgnoreCase: false})
	res := e.Compare("Select 1", "select 1")
	assert.False(t, res.Identical)
	require.Len(t, res.Spans, 1)
	assert.Equal(t, textdiff.SpanReplace, res.Spans[0].Kind)
	assert.Equal(t, 0.0, res.Ratio)
}

func TestCompare_InsertAndDeletePadding(t *testing.T) {
	e := newEngine(t, textdiff.DefaultPolicy())

	res := e.Compare("a\nb\nc", "a\nc")
	assert.Equal(t, []textdiff.SpanKind{textdiff.SpanEqual, textdiff.SpanDelete, textdiff.SpanEqual}, kinds(res.Spans))
	assert.Equal(t, []string{"  a", "- b", "  c"}, res.Source)
	assert.Equal(t, []string{"  a", "", "  c"}, res.Target)

	res = e.Compare("a\nc", "a\nb\nb2\nc")
	assert.Equal(t, []textdiff.SpanKind{textdiff.SpanEqual, textdiff.SpanInsert, textdiff.SpanEqual}, kinds(res.Spans))
	assert.Equal(t, []string{"  a", "", "", "  c"}, res.Source)
	assert.Equal(t, []string{"  a", "+ b", "+ b2", "  c"}, res.Target)
	assert.Equal(t, textdiff.LineRange{Start: 2, End: 4}, res.Spans[1].Target)
	assert.Equal(t, 0, res.Spans[1].Source.Len())
}

func TestCompare_UnequalReplaceIsNotTruncated(t *testing.T) {
	e := newEngine(t, textdiff.DefaultPolicy())
	res := e.Compare("head\nx1\ntail", "head\ny1\ny2\ny3\ntail")

	require.Len(t, res.Spans, 3)
	rep := res.Spans[1]
	assert.Equal(t, textdiff.SpanReplace, rep.Kind)
	assert.Len(t, rep.SourceLines, 1)
	assert.Len(t, rep.TargetLines, 3)
	assert.Equal(t, []string{"  head", "~ x1", "", "", "  tail"}, res.Source)
	assert.Equal(t, []string{"  head", "~ y1", "~ y2", "~ y3", "  tail"}, res.Target)
}

func TestCompare_RenderedSidesReconstructOriginals(t *testing.T) {
	cases := []struct {
		name   string
		a, b   string
		policy textdiff.Policy
	}{
		{"plain", "a\nb\nc\nd", "a\nx\nc\ne\nf", textdiff.DefaultPolicy()},
		{"blank lines ignored", "a\n\nb\n\n", "a\nb\nc", textdiff.Policy{IgnoreBlankLines: true}},
		{"leading ignored", "-- header\nSELECT 1", "SELECT 2", textdiff.Policy{IgnorePatterns: []string{"--"}}},
		{"one side fully ignored", "\n\n", "SELECT 1", textdiff.Policy{IgnoreBlankLines: true}},
		{"whitespace and case", "Select  A\nFROM t", "select a\nFROM u\nWHERE 1=1", textdiff.Policy{IgnoreWhitespace: true, IgnoreCase: true}},
		{"empty source", "", "x\ny", textdiff.DefaultPolicy()},
	}
	algorithms := []textdiff.Algorithm{textdiff.AlgorithmDefault, textdiff.AlgorithmFast, textdiff.AlgorithmPositional}

	for _, tc := range cases {
		for _, alg := range algorithms {
			t.Run(tc.name+"/"+string(alg), func(t *testing.T) {
				e := newEngine(t, tc.policy, textdiff.WithAlgorithm(alg))
				res := e.Compare(tc.a, tc.b)
				require.False(t, res.Identical)
				assert.Equal(t, nonNil(strings.Split(strings.TrimSuffix(tc.a, "\n"), "\n"), tc.a), stripped(res.Source))
				assert.Equal(t, nonNil(strings.Split(strings.TrimSuffix(tc.b, "\n"), "\n"), tc.b), stripped(res.Target))
				assert.Equal(t, len(res.Source), len(res.Target))
			})
		}
	}
}

func nonNil(lines []string, text string) []string {
	if text == "" {
		return nil
	}
	return lines
}

func TestCompare_BothEmpty(t *testing.T) {
	e := newEngine(t, textdiff.DefaultPolicy())
	res := e.Compare("", "")
	assert.True(t, res.Identical)
	assert.Empty(t, res.Spans)
	assert.Equal(t, 1.0, res.Ratio)
}

func TestCompare_IsDeterministic(t *testing.T) {
	a := "BEGIN\nSELECT 1\nEND\nBEGIN\nSELECT 2\nEND"
	b := "BEGIN\nSELECT 2\nEND\nBEGIN\nSELECT 1\nEND\nGO"
	e := newEngine(t, textdiff.DefaultPolicy())
	first := e.Compare(a, b)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Compare(a, b))
	}
}

func TestCompare_RepeatedLinesAlignExactly(t *testing.T) {
	// Every line repeats; a popularity heuristic would refuse to match them.
	lines := make([]string, 300)
	for i := range lines {
		lines[i] = "END"
	}
	a := strings.Join(lines, "\n")
	b := a + "\nGO"

	e := newEngine(t, textdiff.DefaultPolicy())
	res := e.Compare(a, b)
	assert.Equal(t, []textdiff.SpanKind{textdiff.SpanEqual, textdiff.SpanInsert}, kinds(res.Spans))
	assert.Equal(t, 1, res.Stats.AddedLines)
	assert.InDelta(t, 600.0/601.0, res.Ratio, 1e-9)
}

func TestCompare_Statistics(t *testing.T) {
	e := newEngine(t, textdiff.DefaultPolicy())
	res := e.Compare("a\nb\nc\nd", "a\nB\nc\nd\ne\nf")
	assert.Equal(t, textdiff.Statistics{
		TotalBlocks:     4,
		EqualBlocks:     2,
		DifferentBlocks: 2,
		AddedLines:      2,
		ModifiedLines:   1,
		Ratio:           res.Ratio,
		Algorithm:       textdiff.AlgorithmDefault,
	}, res.Stats)
	assert.InDelta(t, 0.6, res.Ratio, 1e-9)
}

func TestCompare_PositionalAlgorithm(t *testing.T) {
	e := newEngine(t, textdiff.DefaultPolicy(), textdiff.WithAlgorithm(textdiff.AlgorithmPositional))
	res := e.Compare("a\nb\nc", "a\nc")
	assert.Equal(t, []textdiff.SpanKind{textdiff.SpanEqual, textdiff.SpanReplace, textdiff.SpanDelete}, kinds(res.Spans))
	assert.Equal(t, textdiff.AlgorithmPositional, res.Stats.Algorithm)
}

func TestCompare_FastAlgorithmMatchesDefaultOnSmallInput(t *testing.T) {
	a, b := "SELECT 1\nSELECT 2", "SELECT 1\nSELECT 3"
	def := newEngine(t, textdiff.DefaultPolicy()).Compare(a, b)
	fast := newEngine(t, textdiff.DefaultPolicy(), textdiff.WithAlgorithm(textdiff.AlgorithmFast)).Compare(a, b)
	assert.Equal(t, def.Spans, fast.Spans)
	assert.Equal(t, def.Ratio, fast.Ratio)
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := textdiff.New(textdiff.Policy{IgnorePatterns: []string{"("}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    textdiff.Algorithm
		wantErr bool
	}{
		{"", textdiff.AlgorithmDefault, false},
		{"Minimal", textdiff.AlgorithmMinimal, false},
		{"quick", textdiff.AlgorithmFast, false},
		{"none", textdiff.AlgorithmPositional, false},
		{"myers", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := textdiff.ParseAlgorithm(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnifiedDiff(t *testing.T) {
	out, err := textdiff.UnifiedDiff("SELECT 1\nSELECT 2", "SELECT 1\nSELECT 3", "source/dbo.p", "target/dbo.p", 3)
	require.NoError(t, err)
	assert.Contains(t, out, "--- source/dbo.p")
	assert.Contains(t, out, "+++ target/dbo.p")
	assert.Contains(t, out, "-SELECT 2")
	assert.Contains(t, out, "+SELECT 3")

	out, err = textdiff.UnifiedDiff("same", "same", "a", "b", 3)
	require.NoError(t, err)
	assert.Empty(t, out)
}
