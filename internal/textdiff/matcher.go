package textdiff

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	tagEqual   byte = 'e'
	tagReplace byte = 'r'
	tagDelete  byte = 'd'
	tagInsert  byte = 'i'
)

type opcode struct {
	tag    byte
	i1, i2 int
	j1, j2 int
}

type match struct {
	a, b, size int
}

// lcsMatcher aligns two line sequences by recursively taking the longest
// matching block. Ties prefer the earliest block in a, then in b. No element
// is ever treated as junk or as too popular to match, so short routine bodies
// with repeated lines (BEGIN, END, GO) align exactly.
type lcsMatcher struct {
	a, b []string
	b2j  map[string][]int
}

func newLCSMatcher(a, b []string) *lcsMatcher {
	m := &lcsMatcher{a: a, b: b, b2j: make(map[string][]int, len(b))}
	for j, line := range b {
		m.b2j[line] = append(m.b2j[line], j)
	}
	return m
}

func (m *lcsMatcher) longestMatch(alo, ahi, blo, bhi int) match {
	best := match{a: alo, b: blo}
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.size {
				best = match{a: i - k + 1, b: j - k + 1, size: k}
			}
		}
		j2len = next
	}
	return best
}

func (m *lcsMatcher) matchingBlocks() []match {
	type frame struct{ alo, ahi, blo, bhi int }
	queue := []frame{{0, len(m.a), 0, len(m.b)}}
	var blocks []match
	for len(queue) > 0 {
		f := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x := m.longestMatch(f.alo, f.ahi, f.blo, f.bhi)
		if x.size == 0 {
			continue
		}
		blocks = append(blocks, x)
		if f.alo < x.a && f.blo < x.b {
			queue = append(queue, frame{f.alo, x.a, f.blo, x.b})
		}
		if x.a+x.size < f.ahi && x.b+x.size < f.bhi {
			queue = append(queue, frame{x.a + x.size, f.ahi, x.b + x.size, f.bhi})
		}
	}
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].a != blocks[j].a {
			return blocks[i].a < blocks[j].a
		}
		return blocks[i].b < blocks[j].b
	})

	// Collapse adjacent blocks.
	merged := make([]match, 0, len(blocks)+1)
	for _, blk := range blocks {
		if n := len(merged); n > 0 {
			prev := &merged[n-1]
			if prev.a+prev.size == blk.a && prev.b+prev.size == blk.b {
				prev.size += blk.size
				continue
			}
		}
		merged = append(merged, blk)
	}
	return append(merged, match{a: len(m.a), b: len(m.b)})
}

func (m *lcsMatcher) opcodes() []opcode {
	return opcodesFromBlocks(m.matchingBlocks())
}

func opcodesFromBlocks(blocks []match) []opcode {
	var ops []opcode
	i, j := 0, 0
	for _, blk := range blocks {
		var tag byte
		switch {
		case i < blk.a && j < blk.b:
			tag = tagReplace
		case i < blk.a:
			tag = tagDelete
		case j < blk.b:
			tag = tagInsert
		}
		if tag != 0 {
			ops = append(ops, opcode{tag: tag, i1: i, i2: blk.a, j1: j, j2: blk.b})
		}
		i, j = blk.a+blk.size, blk.b+blk.size
		if blk.size > 0 {
			ops = append(ops, opcode{tag: tagEqual, i1: blk.a, i2: i, j1: blk.b, j2: j})
		}
	}
	return ops
}

// fastOpcodes delegates to go-difflib with blank lines as junk and its
// popularity heuristic enabled. Large inputs align faster at some cost in
// precision.
func fastOpcodes(a, b []string) []opcode {
	isJunk := func(s string) bool { return strings.TrimSpace(s) == "" }
	sm := difflib.NewMatcherWithJunk(a, b, true, isJunk)
	codes := sm.GetOpCodes()
	ops := make([]opcode, 0, len(codes))
	for _, c := range codes {
		ops = append(ops, opcode{tag: c.Tag, i1: c.I1, i2: c.I2, j1: c.J1, j2: c.J2})
	}
	return ops
}

// positionalOpcodes pairs line i with line i, with no alignment search.
func positionalOpcodes(a, b []string) []opcode {
	var ops []opcode
	push := func(tag byte, i1, i2, j1, j2 int) {
		if n := len(ops); n > 0 && ops[n-1].tag == tag && ops[n-1].i2 == i1 && ops[n-1].j2 == j1 {
			ops[n-1].i2, ops[n-1].j2 = i2, j2
			return
		}
		ops = append(ops, opcode{tag: tag, i1: i1, i2: i2, j1: j1, j2: j2})
	}
	common := min(len(a), len(b))
	for i := 0; i < common; i++ {
		if a[i] == b[i] {
			push(tagEqual, i, i+1, i, i+1)
		} else {
			push(tagReplace, i, i+1, i, i+1)
		}
	}
	if len(a) > common {
		push(tagDelete, common, len(a), common, common)
	}
	if len(b) > common {
		push(tagInsert, common, common, common, len(b))
	}
	return ops
}

func matchedLength(ops []opcode) int {
	n := 0
	for _, op := range ops {
		if op.tag == tagEqual {
			n += op.i2 - op.i1
		}
	}
	return n
}
