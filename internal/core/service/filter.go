package service

import (
	"strings"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
)

// Filter narrows the compared object set. Empty fields select everything.
type Filter struct {
	Types []domain.ObjectType
	// Names match either the bare object name or schema.name, case-insensitively.
	Names []string
}

func (f Filter) apply(objects []domain.SchemaObject) []domain.SchemaObject {
	if len(f.Types) == 0 && len(f.Names) == 0 {
		return objects
	}
	types := make(map[domain.ObjectType]bool, len(f.Types))
	for _, t := range f.Types {
		types[t] = true
	}
	names := make(map[string]bool, len(f.Names))
	for _, n := range f.Names {
		names[strings.ToLower(strings.TrimSpace(n))] = true
	}

	out := make([]domain.SchemaObject, 0, len(objects))
	for _, obj := range objects {
		if len(types) > 0 && !types[obj.Type] {
			continue
		}
		if len(names) > 0 && !names[strings.ToLower(obj.Name)] && !names[obj.Key()] {
			continue
		}
		out = append(out, obj)
	}
	return out
}
