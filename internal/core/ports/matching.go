package ports

import (
	"context"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
)

type MatchedPair struct {
	Source domain.SchemaObject
	Target domain.SchemaObject
}

type MatchingResult struct {
	Matched      []MatchedPair
	OnlyInSource []domain.SchemaObject // to be created on target
	OnlyInTarget []domain.SchemaObject // to be dropped from target
}

//go:generate mockery --name=Matcher --output=./mocks --outpkg=mocks --case underscore
type Matcher interface {
	Match(ctx context.Context, source, target []domain.SchemaObject) (MatchingResult, error)
}
