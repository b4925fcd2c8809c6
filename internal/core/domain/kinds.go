package domain

import (
	"fmt"
	"strings"
)

type ObjectType int

const (
	ObjectUnknown ObjectType = iota
	ObjectTable
	ObjectProcedure
	ObjectView
	ObjectFunction
	ObjectTrigger
	ObjectConstraint
)

var objectTypeNames = map[ObjectType]string{
	ObjectUnknown:    "Unknown",
	ObjectTable:      "Table",
	ObjectProcedure:  "Procedure",
	ObjectView:       "View",
	ObjectFunction:   "Function",
	ObjectTrigger:    "Trigger",
	ObjectConstraint: "Constraint",
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// AllObjectTypes lists the supported types, excluding ObjectUnknown.
func AllObjectTypes() []ObjectType {
	return []ObjectType{ObjectTable, ObjectProcedure, ObjectView, ObjectFunction, ObjectTrigger, ObjectConstraint}
}

// ParseObjectType is case-insensitive and also accepts "Stored Procedure".
func ParseObjectType(s string) (ObjectType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "stored procedure" {
		return ObjectProcedure, nil
	}
	for _, t := range AllObjectTypes() {
		if strings.ToLower(t.String()) == norm {
			return t, nil
		}
	}
	return ObjectUnknown, fmt.Errorf("unknown object type %q", s)
}

func (t ObjectType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ObjectType) UnmarshalText(b []byte) error {
	parsed, err := ParseObjectType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsRoutineLike reports whether objects of this type are compared by definition text.
func (t ObjectType) IsRoutineLike() bool {
	switch t {
	case ObjectProcedure, ObjectView, ObjectFunction, ObjectTrigger:
		return true
	}
	return false
}

type AuthMode string

const (
	AuthIntegrated   AuthMode = "integrated"
	AuthCredentialed AuthMode = "credentialed"
)

// ConnectionParams arrive already resolved; nothing in this module persists them.
type ConnectionParams struct {
	Server                 string   `yaml:"server" mapstructure:"server" validate:"required"`
	Port                   int      `yaml:"port" mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Database               string   `yaml:"database" mapstructure:"database" validate:"required"`
	AuthMode               AuthMode `yaml:"auth_mode" mapstructure:"auth_mode" validate:"required,oneof=integrated credentialed"`
	Username               string   `yaml:"username" mapstructure:"username" validate:"required_if=AuthMode credentialed"`
	Password               string   `yaml:"password" mapstructure:"password"`
	Encrypt                string   `yaml:"encrypt" mapstructure:"encrypt" validate:"omitempty,oneof=true false disable strict"`
	TrustServerCertificate bool     `yaml:"trust_server_certificate" mapstructure:"trust_server_certificate"`
}

// Label identifies the endpoint in logs without exposing credentials.
func (p ConnectionParams) Label() string {
	if p.Port > 0 {
		return fmt.Sprintf("%s:%d/%s", p.Server, p.Port, p.Database)
	}
	return fmt.Sprintf("%s/%s", p.Server, p.Database)
}
