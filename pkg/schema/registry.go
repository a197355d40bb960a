package schema

import (
	"errors"
	"fmt"
)

// Kind identifies which rule-set applies to a record.
type Kind string

const (
	KindUser        Kind = "user"
	KindAccount     Kind = "account"
	KindTransaction Kind = "transaction"
	KindLoan        Kind = "loan"
	KindEmployee    Kind = "employee"
	KindBranch      Kind = "branch"
)

var (
	// ErrDuplicateSchema is returned when a kind is registered twice.
	// Registry misuse is a programmer error and surfaces at startup, never
	// during record evaluation.
	ErrDuplicateSchema = errors.New("schema already registered")

	// ErrUnknownKind is returned when no schema exists for a kind.
	ErrUnknownKind = errors.New("unknown record kind")
)

// Schema is the immutable rule-set for one record kind plus the message table
// used to render its violations.
type Schema struct {
	kind     Kind
	fields   []Field
	messages MessageTable
}

// NewSchema builds a schema from its ordered field declarations. The message
// table is the generic default table with the given overrides applied on top.
func NewSchema(kind Kind, fields []Field, overrides MessageTable) *Schema {
	return &Schema{
		kind:     kind,
		fields:   fields,
		messages: defaultMessages.merge(overrides),
	}
}

func (s *Schema) Kind() Kind { return s.kind }

// Fields returns the field declarations in evaluation order. Callers must not
// modify the returned slice.
func (s *Schema) Fields() []Field { return s.fields }

// Messages returns the schema's message table.
func (s *Schema) Messages() MessageTable { return s.messages }

// Registry owns one schema per record kind. It is populated once at process
// start and read-only afterwards, so concurrent lookups need no locking.
type Registry struct {
	schemas map[Kind]*Schema
}

func NewRegistry() *Registry {
	return &Registry{schemas: make(map[Kind]*Schema)}
}

// Register stores the schema for its kind. Registering the same kind twice is
// rejected rather than silently replacing the rule-set.
func (r *Registry) Register(s *Schema) error {
	if _, exists := r.schemas[s.kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, s.kind)
	}
	r.schemas[s.kind] = s
	return nil
}

// MustRegister is Register, panicking on error. Meant for process-start
// wiring where a duplicate registration should prevent startup.
func (r *Registry) MustRegister(s *Schema) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get returns the schema for the kind.
func (r *Registry) Get(kind Kind) (*Schema, error) {
	s, ok := r.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return s, nil
}

// Kinds returns the registered kinds. Order is unspecified.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.schemas))
	for k := range r.schemas {
		kinds = append(kinds, k)
	}
	return kinds
}
