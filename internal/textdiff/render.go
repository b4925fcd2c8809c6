package textdiff

// Rendered line markers. Every marker is MarkerWidth bytes wide, so the text of
// a rendered line is line[MarkerWidth:]. Padding rows are the empty string.
const (
	MarkerEqual   = "  "
	MarkerDelete  = "- "
	MarkerInsert  = "+ "
	MarkerReplace = "~ "
	MarkerWidth   = 2
)

func markerFor(kind SpanKind, source bool) string {
	switch kind {
	case SpanReplace:
		return MarkerReplace
	case SpanDelete:
		if source {
			return MarkerDelete
		}
	case SpanInsert:
		if !source {
			return MarkerInsert
		}
	}
	// Ignored lines carried by the opposite side of an insert or delete.
	return MarkerEqual
}

// Render produces two row-aligned marked sequences. The shorter side of each
// span is padded with empty rows.
func Render(spans []Span) (source, target []string) {
	for _, s := range spans {
		rows := max(len(s.SourceLines), len(s.TargetLines))
		sm, tm := markerFor(s.Kind, true), markerFor(s.Kind, false)
		for r := 0; r < rows; r++ {
			if r < len(s.SourceLines) {
				source = append(source, sm+s.SourceLines[r].Text)
			} else {
				source = append(source, "")
			}
			if r < len(s.TargetLines) {
				target = append(target, tm+s.TargetLines[r].Text)
			} else {
				target = append(target, "")
			}
		}
	}
	return source, target
}

// StripMarker returns the text of a rendered line, or false for a padding row.
func StripMarker(rendered string) (string, bool) {
	if len(rendered) < MarkerWidth {
		return "", false
	}
	return rendered[MarkerWidth:], true
}
