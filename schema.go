package crm

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// FieldKind describes how a field's values are typed in the database.
type FieldKind string

const (
	FieldText      FieldKind = "text"
	FieldInt       FieldKind = "int"
	FieldBigInt    FieldKind = "bigint"
	FieldFloat     FieldKind = "float"
	FieldBool      FieldKind = "bool"
	FieldDate      FieldKind = "date"
	FieldTimestamp FieldKind = "timestamp"
)

// Fields maps field names to kinds. The field name is the column name.
type Fields map[string]FieldKind

// searchCandidates is the fixed list of fields free-text search may touch,
// in match order. A schema searches the subset it actually declares; the
// list itself is deliberately hardcoded.
var searchCandidates = [...]string{"name", "title", "first_name", "last_name", "email", "description"}

// identPattern accepts the identifiers schemas may declare. Validating at
// registration keeps generated SQL free of quoting concerns.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Schema is the per-entity field descriptor table. Built once at startup and
// immutable afterwards; the query builders consult it instead of reflecting
// over structs.
type Schema struct {
	table      string
	fields     Fields
	columns    []string
	searchCols []string
}

// NewSchema builds a schema for table with the given fields. Every schema
// must declare an id field; all identifiers must be lower_snake_case.
func NewSchema(table string, fields Fields) (*Schema, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("schema table %q: invalid identifier", table)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema %s: no fields declared", table)
	}
	if _, ok := fields["id"]; !ok {
		return nil, fmt.Errorf("schema %s: missing id field", table)
	}
	copied := make(Fields, len(fields))
	columns := make([]string, 0, len(fields))
	for name, kind := range fields {
		if !identPattern.MatchString(name) {
			return nil, fmt.Errorf("schema %s: field %q: invalid identifier", table, name)
		}
		copied[name] = kind
		columns = append(columns, name)
	}
	sort.Strings(columns)

	var searchCols []string
	for _, cand := range searchCandidates {
		if _, ok := copied[cand]; ok {
			searchCols = append(searchCols, cand)
		}
	}

	return &Schema{
		table:      table,
		fields:     copied,
		columns:    columns,
		searchCols: searchCols,
	}, nil
}

// MustSchema is NewSchema for static registration; it panics on a bad
// definition.
func MustSchema(table string, fields Fields) *Schema {
	s, err := NewSchema(table, fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Table returns the table name.
func (s *Schema) Table() string {
	return s.table
}

// HasField reports whether the schema declares the field.
func (s *Schema) HasField(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Kind returns the declared kind of a field.
func (s *Schema) Kind(name string) (FieldKind, bool) {
	k, ok := s.fields[name]
	return k, ok
}

// Columns returns all column names sorted ascending. The slice is shared;
// treat it as read-only.
func (s *Schema) Columns() []string {
	return s.columns
}

// SearchColumns returns the declared search candidates in match order. Empty
// when the schema has no searchable field.
func (s *Schema) SearchColumns() []string {
	return s.searchCols
}

// HasSoftDelete reports whether rows deactivate instead of deleting.
func (s *Schema) HasSoftDelete() bool {
	return s.HasField("is_active")
}

// HasOwner reports whether rows record the creating user.
func (s *Schema) HasOwner() bool {
	return s.HasField("created_by_id")
}

// ValidateInput rejects create payloads that name fields the schema does not
// declare. Values themselves are typed by the transport layer.
func (s *Schema) ValidateInput(fields map[string]any) error {
	for name := range fields {
		if !s.HasField(name) {
			return &Error{
				Type:    ErrorTypeValidation,
				Code:    ErrCodeUnknownField,
				Message: fmt.Sprintf("field %q is not declared on %s", name, s.table),
				Entity:  s.table,
				Field:   name,
			}
		}
	}
	return nil
}

// SchemaRegistry holds every registered entity schema by entity name.
type SchemaRegistry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewSchemaRegistry creates an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{schemas: make(map[string]*Schema)}
}

// Register adds a schema under an entity name. Re-registering a name is a
// programming error and is rejected.
func (r *SchemaRegistry) Register(name string, s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[name]; exists {
		return fmt.Errorf("schema registry: %s already registered", name)
	}
	r.schemas[name] = s
	return nil
}

// Get looks up a schema by entity name.
func (r *SchemaRegistry) Get(name string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the registered entity names sorted ascending.
func (r *SchemaRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
