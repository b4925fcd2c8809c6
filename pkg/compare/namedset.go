// Package compare holds the generic comparisons shared by the per-type comparers.
package compare

import (
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// SetResult reports how two named collections differ.
type SetResult[T any] struct {
	Differs      bool
	OnlyInSource []string
	OnlyInTarget []string
	// Changed lists shared names whose attribute lists differ.
	Changed []string
	Source  []T
	Target  []T
}

// KeyFunc returns the name of a member. Names are compared case-insensitively.
type KeyFunc[T any] func(T) string

// AttributeFunc returns the ordered attribute list compared for a member.
type AttributeFunc[T any] func(T) []string

// NamedSets compares two collections keyed by name. Member order is ignored.
// The collections differ when the key sets differ or when any shared key's
// attribute list differs. Name lists in the result are sorted.
func NamedSets[T any](source, target []T, key KeyFunc[T], attrs AttributeFunc[T]) SetResult[T] {
	res := SetResult[T]{Source: source, Target: target}

	src := index(source, key)
	tgt := index(target, key)

	for k, s := range src {
		t, ok := tgt[k]
		if !ok {
			res.OnlyInSource = append(res.OnlyInSource, key(s))
			continue
		}
		if !cmp.Equal(attrs(s), attrs(t)) {
			res.Changed = append(res.Changed, key(s))
		}
	}
	for k, t := range tgt {
		if _, ok := src[k]; !ok {
			res.OnlyInTarget = append(res.OnlyInTarget, key(t))
		}
	}

	sort.Strings(res.OnlyInSource)
	sort.Strings(res.OnlyInTarget)
	sort.Strings(res.Changed)
	res.Differs = len(res.OnlyInSource)+len(res.OnlyInTarget)+len(res.Changed) > 0
	return res
}

// index keeps the first member for a duplicated name.
func index[T any](items []T, key KeyFunc[T]) map[string]T {
	out := make(map[string]T, len(items))
	for _, it := range items {
		k := strings.ToLower(key(it))
		if _, dup := out[k]; dup {
			continue
		}
		out[k] = it
	}
	return out
}
