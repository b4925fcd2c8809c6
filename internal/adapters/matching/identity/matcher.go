package identity

import (
	"context"
	"fmt"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

const MatcherTypeIdentity = "identity"

// Matcher pairs objects by case-normalized schema and name.
type Matcher struct {
	logger ports.Logger
}

func NewMatcher(logger ports.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// Match keeps the input order: Matched and OnlyInSource follow source order,
// OnlyInTarget follows target order.
func (m *Matcher) Match(ctx context.Context, source, target []domain.SchemaObject) (ports.MatchingResult, error) {
	m.logger.Debugf(ctx, "Starting identity matching (%d source, %d target)", len(source), len(target))

	result := ports.MatchingResult{
		Matched:      make([]ports.MatchedPair, 0),
		OnlyInSource: make([]domain.SchemaObject, 0),
		OnlyInTarget: make([]domain.SchemaObject, 0),
	}

	targetIndex, err := buildIndex(target, "target")
	if err != nil {
		return ports.MatchingResult{}, err
	}
	if _, err := buildIndex(source, "source"); err != nil {
		return ports.MatchingResult{}, err
	}

	matchedTargets := make(map[string]bool, len(target))
	for _, src := range source {
		if ctx.Err() != nil {
			return ports.MatchingResult{}, ctx.Err()
		}
		key := src.Key()
		tgt, found := targetIndex[key]
		if !found {
			result.OnlyInSource = append(result.OnlyInSource, src)
			continue
		}
		result.Matched = append(result.Matched, ports.MatchedPair{Source: src, Target: tgt})
		matchedTargets[key] = true
	}

	for _, tgt := range target {
		if !matchedTargets[tgt.Key()] {
			result.OnlyInTarget = append(result.OnlyInTarget, tgt)
		}
	}

	m.logger.Debugf(ctx, "Identity matching finished: %d matched, %d only in source, %d only in target",
		len(result.Matched), len(result.OnlyInSource), len(result.OnlyInTarget))
	return result, nil
}

// buildIndex rejects duplicate identities. The catalog guarantees uniqueness per
// schema, so a duplicate means the enumeration itself is inconsistent.
func buildIndex(objects []domain.SchemaObject, side string) (map[string]domain.SchemaObject, error) {
	idx := make(map[string]domain.SchemaObject, len(objects))
	for _, obj := range objects {
		key := obj.Key()
		if existing, dup := idx[key]; dup {
			return nil, errors.New(errors.CodeMatchingError,
				fmt.Sprintf("duplicate %s object identity %s (%s and %s)", side, key, existing.TypeCode, obj.TypeCode))
		}
		idx[key] = obj
	}
	return idx, nil
}
