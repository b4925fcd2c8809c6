package service

import (
	"fmt"
	"sync"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// ComparerRegistry dispatches object types to their comparison strategy.
type ComparerRegistry struct {
	mu        sync.RWMutex
	comparers map[domain.ObjectType]ports.ObjectComparer
}

func NewComparerRegistry() *ComparerRegistry {
	return &ComparerRegistry{
		comparers: make(map[domain.ObjectType]ports.ObjectComparer),
	}
}

// Register binds the comparer to every type it declares. A type can be bound once.
func (r *ComparerRegistry) Register(comparer ports.ObjectComparer) error {
	if comparer == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil object comparer")
	}
	types := comparer.Types()
	if len(types) == 0 {
		return errors.New(errors.CodeInternal, "object comparer declares no object types")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range types {
		if t == domain.ObjectUnknown {
			return errors.New(errors.CodeInternal, "object comparer cannot be registered for the unknown type")
		}
		if _, exists := r.comparers[t]; exists {
			return errors.New(errors.CodeInternal, fmt.Sprintf("object comparer for type '%s' already registered", t))
		}
	}
	for _, t := range types {
		r.comparers[t] = comparer
	}
	return nil
}

func (r *ComparerRegistry) Get(t domain.ObjectType) (ports.ObjectComparer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comparer, exists := r.comparers[t]
	if !exists {
		return nil, errors.New(errors.CodeComparisonError, fmt.Sprintf("no object comparer registered for type '%s'", t))
	}
	return comparer, nil
}
