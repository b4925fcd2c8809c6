package textdiff

type SpanKind int

const (
	SpanEqual SpanKind = iota
	SpanInsert
	SpanDelete
	SpanReplace
)

func (k SpanKind) String() string {
	switch k {
	case SpanEqual:
		return "equal"
	case SpanInsert:
		return "insert"
	case SpanDelete:
		return "delete"
	case SpanReplace:
		return "replace"
	}
	return "unknown"
}

func (k SpanKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Line is one line of original text with its 1-based number.
type Line struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// LineRange is a half-open range of 1-based line numbers. Start == End is empty.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r LineRange) Len() int {
	return r.End - r.Start
}

// Span is a maximal run of aligned lines sharing one classification.
// Lines always carry original text, even when matching used normalized text.
type Span struct {
	Kind        SpanKind  `json:"kind"`
	Source      LineRange `json:"source"`
	Target      LineRange `json:"target"`
	SourceLines []Line    `json:"source_lines"`
	TargetLines []Line    `json:"target_lines"`
}

func spanKind(tag byte) SpanKind {
	switch tag {
	case tagInsert:
		return SpanInsert
	case tagDelete:
		return SpanDelete
	case tagReplace:
		return SpanReplace
	default:
		return SpanEqual
	}
}

// buildSpans maps opcodes over normalized lines back onto the original lines.
// Ignored original lines are attached to the span that precedes them, and
// lines ignored before the first kept line go to the first span, so the spans
// tile both original texts without gaps.
func buildSpans(ops []opcode, src, tgt *sequence) []Span {
	spans := make([]Span, 0, len(ops))
	sc, tc := 0, 0
	for k, op := range ops {
		last := k == len(ops)-1
		se := src.boundary(op.i2, last)
		te := tgt.boundary(op.j2, last)
		spans = append(spans, Span{
			Kind:        spanKind(op.tag),
			Source:      LineRange{Start: sc + 1, End: se + 1},
			Target:      LineRange{Start: tc + 1, End: te + 1},
			SourceLines: numbered(src.original, sc, se),
			TargetLines: numbered(tgt.original, tc, te),
		})
		sc, tc = se, te
	}
	return spans
}

func numbered(lines []string, from, to int) []Line {
	out := make([]Line, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, Line{Number: i + 1, Text: lines[i]})
	}
	return out
}
