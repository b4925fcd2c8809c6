package textdiff

type Statistics struct {
	TotalBlocks     int       `json:"total_blocks"`
	EqualBlocks     int       `json:"equal_blocks"`
	DifferentBlocks int       `json:"different_blocks"`
	AddedLines      int       `json:"added_lines"`
	DeletedLines    int       `json:"deleted_lines"`
	ModifiedLines   int       `json:"modified_lines"`
	Ratio           float64   `json:"similarity_ratio"`
	Algorithm       Algorithm `json:"algorithm"`
}

func statistics(spans []Span, ratio float64, alg Algorithm) Statistics {
	st := Statistics{TotalBlocks: len(spans), Ratio: ratio, Algorithm: alg}
	for _, s := range spans {
		switch s.Kind {
		case SpanEqual:
			st.EqualBlocks++
			continue
		case SpanInsert:
			st.AddedLines += s.Target.Len()
		case SpanDelete:
			st.DeletedLines += s.Source.Len()
		case SpanReplace:
			st.ModifiedLines += max(s.Source.Len(), s.Target.Len())
		}
		st.DifferentBlocks++
	}
	return st
}
