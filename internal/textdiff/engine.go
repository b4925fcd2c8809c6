// Package textdiff aligns two texts line by line and renders the result with
// fixed-width change markers.
package textdiff

import (
	"fmt"
	"strings"
)

type Algorithm string

const (
	AlgorithmDefault Algorithm = "default"
	// AlgorithmMinimal uses the same exhaustive aligner as AlgorithmDefault.
	AlgorithmMinimal    Algorithm = "minimal"
	AlgorithmFast       Algorithm = "fast"
	AlgorithmPositional Algorithm = "none"
)

func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AlgorithmDefault, nil
	case AlgorithmDefault, AlgorithmMinimal, AlgorithmFast, AlgorithmPositional:
		return a, nil
	case "quick":
		return AlgorithmFast, nil
	case "positional":
		return AlgorithmPositional, nil
	}
	return "", fmt.Errorf("unknown diff algorithm %q", s)
}

func (a *Algorithm) UnmarshalText(b []byte) error {
	parsed, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

type Result struct {
	// Identical is true when both texts are equal after normalization.
	Identical bool
	Spans     []Span
	// Ratio is 2*M/T over the normalized sequences, where M is the number of
	// matched lines and T the total number of lines on both sides.
	Ratio  float64
	Source []string
	Target []string
	Stats  Statistics
}

type Engine struct {
	normalizer *Normalizer
	algorithm  Algorithm
}

type Option func(*Engine)

func WithAlgorithm(a Algorithm) Option {
	return func(e *Engine) {
		if a != "" {
			e.algorithm = a
		}
	}
}

func New(policy Policy, opts ...Option) (*Engine, error) {
	n, err := NewNormalizer(policy)
	if err != nil {
		return nil, err
	}
	e := &Engine{normalizer: n, algorithm: AlgorithmDefault}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Algorithm() Algorithm {
	return e.algorithm
}

// Compare is deterministic: equal inputs always produce equal results.
func (e *Engine) Compare(text1, text2 string) Result {
	src := e.normalizer.sequence(text1)
	tgt := e.normalizer.sequence(text2)

	ops := e.align(src.lines, tgt.lines)
	spans := buildSpans(ops, src, tgt)

	ratio := 1.0
	if total := len(src.lines) + len(tgt.lines); total > 0 {
		ratio = 2.0 * float64(matchedLength(ops)) / float64(total)
	}

	identical := equalLines(src.lines, tgt.lines)
	if identical {
		ratio = 1.0
	}

	res := Result{
		Identical: identical,
		Spans:     spans,
		Ratio:     ratio,
	}
	res.Source, res.Target = Render(spans)
	res.Stats = statistics(spans, ratio, e.algorithm)
	return res
}

func (e *Engine) align(a, b []string) []opcode {
	switch e.algorithm {
	case AlgorithmFast:
		return fastOpcodes(a, b)
	case AlgorithmPositional:
		return positionalOpcodes(a, b)
	default:
		return newLCSMatcher(a, b).opcodes()
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CompareText is the standalone entry point. It returns identical == true when
// the texts do not differ under policy; otherwise it returns the rendered sides
// and the similarity ratio.
func CompareText(text1, text2 string, policy Policy) (source, target []string, ratio float64, identical bool, err error) {
	e, err := New(policy)
	if err != nil {
		return nil, nil, 0, false, err
	}
	res := e.Compare(text1, text2)
	if res.Identical {
		return nil, nil, 1.0, true, nil
	}
	return res.Source, res.Target, res.Ratio, false, nil
}
