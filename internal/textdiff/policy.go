package textdiff

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// Policy selects which differences are ignored when lines are matched.
// Options compose independently.
type Policy struct {
	IgnoreWhitespace  bool     `yaml:"ignore_whitespace" mapstructure:"ignore_whitespace"`
	IgnoreCase        bool     `yaml:"ignore_case" mapstructure:"ignore_case"`
	IgnoreBlankLines  bool     `yaml:"ignore_blank_lines" mapstructure:"ignore_blank_lines"`
	IgnoreLineEndings bool     `yaml:"ignore_line_endings" mapstructure:"ignore_line_endings"`
	IgnoreComments    bool     `yaml:"ignore_comments" mapstructure:"ignore_comments"`
	IgnorePatterns    []string `yaml:"ignore_patterns" mapstructure:"ignore_patterns"`
}

// DefaultPolicy ignores nothing.
func DefaultPolicy() Policy {
	return Policy{}
}

// Line comments and single-line block comments. A block comment that spans
// lines is not matched because each line is stripped on its own.
var commentPattern = regexp.MustCompile(`--.*$|/\*.*?\*/`)

// Normalizer is a compiled Policy. It holds no per-call state and can be shared.
type Normalizer struct {
	policy   Policy
	patterns []*regexp.Regexp
}

func NewNormalizer(policy Policy) (*Normalizer, error) {
	n := &Normalizer{policy: policy}
	for _, p := range policy.IgnorePatterns {
		// Patterns match from the start of the line.
		re, err := regexp.Compile("^(?:" + p + ")")
		if err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
				fmt.Sprintf("invalid ignore pattern %q", p), "Use RE2 syntax for diff.ignore_patterns.")
		}
		n.patterns = append(n.patterns, re)
	}
	return n, nil
}

func (n *Normalizer) Policy() Policy {
	return n.policy
}

// Line returns the comparable form of line, or false when the line is ignored.
func (n *Normalizer) Line(line string) (string, bool) {
	for _, re := range n.patterns {
		if re.MatchString(line) {
			return "", false
		}
	}

	s := line
	if n.policy.IgnoreLineEndings {
		s = strings.TrimRight(s, "\r\n")
	}
	if n.policy.IgnoreComments {
		s = commentPattern.ReplaceAllString(s, "")
	}
	if n.policy.IgnoreBlankLines && strings.TrimSpace(s) == "" {
		return "", false
	}
	if n.policy.IgnoreWhitespace {
		s = strings.Join(strings.Fields(s), " ")
	}
	if n.policy.IgnoreCase {
		s = strings.ToLower(s)
	}
	return s, true
}

// sequence is a normalized view over the original lines of one text.
type sequence struct {
	original []string
	lines    []string
	// origin[i] is the 0-based original index of lines[i].
	origin []int
}

func (n *Normalizer) sequence(text string) *sequence {
	orig := splitLines(text)
	seq := &sequence{
		original: orig,
		lines:    make([]string, 0, len(orig)),
		origin:   make([]int, 0, len(orig)),
	}
	for i, l := range orig {
		norm, keep := n.Line(l)
		if !keep {
			continue
		}
		seq.lines = append(seq.lines, norm)
		seq.origin = append(seq.origin, i)
	}
	return seq
}

// boundary converts a normalized span end into an original line index.
// The final span always extends to the end of the original text so that
// ignored trailing lines are kept.
func (s *sequence) boundary(k int, last bool) int {
	if last || k >= len(s.origin) {
		return len(s.original)
	}
	return s.origin[k]
}

// splitLines splits on '\n'. A trailing newline does not produce an empty
// final line and '\r' is kept as line content.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
