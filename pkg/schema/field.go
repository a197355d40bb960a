package schema

import (
	"context"
	"time"
)

// FieldType is the base type a raw value must coerce to before any other
// constraint is checked.
type FieldType int

const (
	TypeNumber FieldType = iota
	TypeInteger
	TypeString
	TypeDate
	TypeEnum
)

func (t FieldType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	case TypeDate:
		return "date"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ExternalCheck is an asynchronous predicate run against a field value after
// its structural checks pass. A non-nil error is reported as a reference
// violation; it never aborts evaluation of other fields.
type ExternalCheck func(ctx context.Context, value any) error

// FieldRule describes the constraints on a single field. Bounds are
// inclusive; Precision rounds to that many decimal digits before bounds are
// checked. Length is an exact rune count for strings. A zero Precision or
// Length means the constraint is not declared.
type FieldRule struct {
	Type     FieldType
	Required bool
	Nullable bool

	// Default is injected when the field is absent. DynamicDefault wins over
	// Default and is computed from the evaluation-time clock.
	Default        any
	DynamicDefault func(now time.Time) any

	Min       *float64
	Max       *float64
	Positive  bool
	Precision int
	Length    int
	Email     bool
	Allowed   []string

	External ExternalCheck
}

// Case is one branch of a Conditional, matched against the discriminator's
// raw string value.
type Case struct {
	Is   string
	Then *FieldSpec
}

// Conditional selects a FieldSpec by the value of a sibling field. Cases are
// tried in declared order; when none match (or the discriminator is absent)
// the Otherwise branch applies. A nil Otherwise leaves the field
// unconstrained beyond its presence in the input.
//
// RequireDiscriminator marks the discriminator as co-required: a present
// field value with no discriminator to steer it is itself a violation rather
// than falling through to Otherwise.
type Conditional struct {
	On                   string
	Cases                []Case
	Otherwise            *FieldSpec
	RequireDiscriminator bool
}

// FieldSpec is one node of a field's constraint tree: either a leaf Rule or a
// Switch on a sibling field. AcceptLiteral values, when present, are matched
// against the coerced value first and accept it outright, bypassing the rest
// of the tree (the lump-sum tenure of zero).
//
// Required on the root spec marks the field required even when no branch can
// be resolved for an absent value; leaf rules carry their own Required flag.
type FieldSpec struct {
	Label         string
	Required      bool
	Rule          *FieldRule
	Switch        *Conditional
	AcceptLiteral []float64
}

// Field binds a name to its constraint tree. Declaration order is the order
// fields are evaluated and violations reported in.
type Field struct {
	Name string
	Spec FieldSpec
}

func floatPtr(v float64) *float64 { return &v }
