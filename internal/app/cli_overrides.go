package app

import (
	"fmt"
	"strings"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// parseTypesOverride reads a comma-separated type list such as "table,procedure".
func parseTypesOverride(override string) ([]domain.ObjectType, error) {
	if strings.TrimSpace(override) == "" {
		return nil, nil
	}
	var types []domain.ObjectType
	seen := make(map[domain.ObjectType]bool)
	for _, raw := range strings.Split(override, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		t, err := domain.ParseObjectType(raw)
		if err != nil {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("unknown object type '%s' in --types", raw),
				"Use a comma-separated list of: table, procedure, view, function, trigger, constraint")
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types, nil
}

// parseNamesOverride reads a comma-separated list of names or schema-qualified names.
func parseNamesOverride(override string) []string {
	var names []string
	for _, raw := range strings.Split(override, ",") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
