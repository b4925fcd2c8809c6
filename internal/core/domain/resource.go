package domain

import (
	"strings"
	"time"
)

// ObjectIdentity is the stable pairing key of a schema object.
type ObjectIdentity struct {
	Schema string
	Name   string
}

func (id ObjectIdentity) String() string {
	return id.Schema + "." + id.Name
}

// Key is the case-normalized form used to pair objects across catalogs.
func (id ObjectIdentity) Key() string {
	return strings.ToLower(id.Schema) + "." + strings.ToLower(id.Name)
}

type SessionFlags struct {
	AnsiNulls        bool
	QuotedIdentifier bool
}

func DefaultSessionFlags() SessionFlags {
	return SessionFlags{AnsiNulls: true, QuotedIdentifier: true}
}

type SchemaObject struct {
	Schema     string
	Name       string
	Type       ObjectType
	TypeCode   string
	CatalogID  int64
	ParentID   int64
	CreatedAt  time.Time
	ModifiedAt time.Time
	Flags      SessionFlags
}

func (o SchemaObject) Identity() ObjectIdentity {
	return ObjectIdentity{Schema: o.Schema, Name: o.Name}
}

func (o SchemaObject) Key() string {
	return o.Identity().Key()
}

type IdentitySpec struct {
	Seed      int64
	Increment int64
}

// Column is compared by name, never by Ordinal.
type Column struct {
	Name               string
	DataType           string
	MaxLength          int
	Precision          int
	Scale              int
	Nullable           bool
	Identity           *IdentitySpec
	ComputedExpression string
	DefaultExpression  string
	Ordinal            int
}

type IndexColumn struct {
	Name       string
	Descending bool
	Included   bool
}

type Index struct {
	Name             string
	Kind             string
	Unique           bool
	PrimaryKey       bool
	UniqueConstraint bool
	FillFactor       int
	AllowRowLocks    bool
	AllowPageLocks   bool
	IgnoreDupKey     bool
	Disabled         bool
	FilterExpression string
	Columns          []IndexColumn
}

type ForeignKey struct {
	Name              string
	ReferencedSchema  string
	ReferencedTable   string
	ParentColumns     []string
	ReferencedColumns []string
	OnDelete          string
	OnUpdate          string
	Disabled          bool
	NotTrusted        bool
}

type TableDescriptor struct {
	Object      SchemaObject
	Columns     []Column
	Indexes     []Index
	ForeignKeys []ForeignKey
}

type RoutineDefinition struct {
	Object             SchemaObject
	Body               string
	AnsiNullsOn        bool
	QuotedIdentifierOn bool
}

// Unavailable is true when the catalog exposes no body, e.g. an encrypted routine.
// An unavailable definition is not an empty object.
func (d RoutineDefinition) Unavailable() bool {
	return d.Body == ""
}

// Script returns the body prefixed with the session directives that differ from the
// catalog defaults, so that running it re-creates the object faithfully.
func (d RoutineDefinition) Script() string {
	if d.Unavailable() {
		return ""
	}
	var b strings.Builder
	if !d.AnsiNullsOn {
		b.WriteString("SET ANSI_NULLS OFF\nGO\n")
	}
	if !d.QuotedIdentifierOn {
		b.WriteString("SET QUOTED_IDENTIFIER OFF\nGO\n")
	}
	b.WriteString(d.Body)
	return b.String()
}
