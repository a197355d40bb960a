package engine

import (
	"context"
	"time"

	"github.com/bankcore/rulekit/pkg/schema"
	"github.com/bankcore/rulekit/pkg/validator"
)

// Verdict is the outcome of evaluating one record. Record is the normalized
// record (coerced, rounded, defaulted) and is only set when the record was
// accepted; Violations lists every failing field in schema declaration order,
// with messages already rendered from the schema's message table.
type Verdict struct {
	Kind       schema.Kind
	Record     map[string]any
	Violations validator.Violations
}

func (v *Verdict) Accepted() bool {
	return len(v.Violations) == 0
}

// Messages returns the rendered violation messages in order.
func (v *Verdict) Messages() []string {
	return v.Violations.Messages()
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock injects the clock used for dynamic defaults. Defaults to
// time.Now; tests inject a fixed clock to keep evaluation deterministic.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// Evaluator evaluates raw records against the schemas of a registry. It holds
// no per-call state, so a single Evaluator serves concurrent callers.
type Evaluator struct {
	registry *schema.Registry
	now      func() time.Time
}

func New(registry *schema.Registry, opts ...Option) *Evaluator {
	e := &Evaluator{
		registry: registry,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate checks the raw record against the schema registered for the kind.
// The only error it returns is schema.ErrUnknownKind; every constraint
// failure is recovered into the verdict's violation list instead. Unknown
// fields in the record are ignored.
func (e *Evaluator) Evaluate(ctx context.Context, kind schema.Kind, record map[string]any) (*Verdict, error) {
	s, err := e.registry.Get(kind)
	if err != nil {
		return nil, err
	}

	now := e.now()
	normalized := make(map[string]any, len(s.Fields()))
	var violations validator.Violations

	for _, field := range s.Fields() {
		if v := e.evaluateField(ctx, field, record, now, normalized); v != nil {
			violations.Add(*v)
		}
	}

	verdict := &Verdict{Kind: kind}
	if violations.IsEmpty() {
		verdict.Record = normalized
		return verdict, nil
	}

	for i := range violations {
		if msg, err := s.Messages().Render(violations[i].Kind, violations[i].Params); err == nil {
			violations[i].Message = msg
		}
	}
	verdict.Violations = violations
	return verdict, nil
}

// evaluateField applies one field's constraint tree. It stores the normalized
// value on success and returns at most one violation: a field stops at its
// first failing constraint.
func (e *Evaluator) evaluateField(ctx context.Context, field schema.Field, record map[string]any, now time.Time, normalized map[string]any) *validator.Violation {
	name := field.Name
	spec := field.Spec
	label := spec.Label
	if label == "" {
		label = name
	}

	raw, present := record[name]

	if !present {
		res := resolveSpec(&spec, record, false)
		if res.rule != nil {
			if res.rule.DynamicDefault != nil {
				normalized[name] = res.rule.DynamicDefault(now)
				return nil
			}
			if res.rule.Default != nil {
				normalized[name] = res.rule.Default
				return nil
			}
			if res.rule.Required || spec.Required {
				return requiredViolation(name, label)
			}
			return nil
		}
		if spec.Required {
			return requiredViolation(name, label)
		}
		return nil
	}

	// Lump-sum style literals accept the value before branch resolution.
	if len(spec.AcceptLiteral) > 0 {
		if f, ok := toNumber(raw); ok {
			for _, lit := range spec.AcceptLiteral {
				if f == lit {
					normalized[name] = f
					return nil
				}
			}
		}
	}

	res := resolveSpec(&spec, record, true)
	if res.missingDiscriminator != "" {
		return &validator.Violation{
			Field:   name,
			Kind:    validator.KindMissingSibling,
			Message: "cannot be validated without " + res.missingDiscriminator,
			Params: map[string]any{
				"label":         label,
				"discriminator": res.missingDiscriminator,
			},
		}
	}
	if res.rule == nil {
		// Unconstrained beyond presence: pass the value through untouched.
		normalized[name] = raw
		return nil
	}

	rule := res.rule
	if raw == nil {
		if rule.Nullable {
			normalized[name] = nil
			return nil
		}
		return baseViolation(name, label, rule.Type)
	}

	switch rule.Type {
	case schema.TypeNumber, schema.TypeInteger:
		f, ok := toNumber(raw)
		if !ok {
			return baseViolation(name, label, rule.Type)
		}
		if rule.Precision > 0 {
			f = roundTo(f, rule.Precision)
		}
		var checks []validator.Rule
		if rule.Type == schema.TypeInteger {
			checks = append(checks, validator.WholeNumber(name, label, f))
		}
		if rule.Positive {
			checks = append(checks, validator.Positive(name, label, f))
		}
		if rule.Min != nil {
			checks = append(checks, validator.MinNum(name, label, f, *rule.Min))
		}
		if rule.Max != nil {
			checks = append(checks, validator.MaxNum(name, label, f, *rule.Max))
		}
		if v, failed := validator.First(checks...); failed {
			return &v
		}
		if rule.Type == schema.TypeInteger {
			normalized[name] = int64(f)
		} else {
			normalized[name] = f
		}

	case schema.TypeString:
		s, ok := raw.(string)
		if !ok {
			return baseViolation(name, label, rule.Type)
		}
		var checks []validator.Rule
		if rule.Length > 0 {
			checks = append(checks, validator.LenString(name, label, s, rule.Length))
		}
		if rule.Email {
			checks = append(checks, validator.ValidEmail(name, label, s))
		}
		if v, failed := validator.First(checks...); failed {
			return &v
		}
		normalized[name] = s

	case schema.TypeEnum:
		s, ok := raw.(string)
		if !ok {
			v := validator.InList(name, label, "", rule.Allowed).Violation
			return &v
		}
		if v, failed := validator.First(validator.InList(name, label, s, rule.Allowed)); failed {
			return &v
		}
		normalized[name] = s

	case schema.TypeDate:
		t, ok := toDate(raw)
		if !ok {
			return baseViolation(name, label, rule.Type)
		}
		normalized[name] = t
	}

	// External checks run only after the structural checks pass. A failure,
	// including a context timeout, is an ordinary violation and does not
	// block the remaining fields.
	if rule.External != nil {
		if err := rule.External(ctx, normalized[name]); err != nil {
			return &validator.Violation{
				Field:   name,
				Kind:    validator.KindInvalidRef,
				Message: "refers to an unknown record",
				Params: map[string]any{
					"label": label,
				},
			}
		}
	}

	return nil
}

// resolution is the effective constraint for one field after walking its
// conditional tree against the raw record.
type resolution struct {
	rule                 *schema.FieldRule
	missingDiscriminator string
}

// resolveSpec walks the constraint tree. Discriminators are read from the
// already-supplied raw record, never from defaults computed in this pass, and
// cases are tried in declared order. A discriminator that is present but
// matches no case falls back to the otherwise branch; an absent discriminator
// does the same unless the conditional co-requires it and the field value is
// present.
func resolveSpec(spec *schema.FieldSpec, record map[string]any, present bool) resolution {
	if spec == nil {
		return resolution{}
	}
	if spec.Rule != nil {
		return resolution{rule: spec.Rule}
	}
	if spec.Switch == nil {
		return resolution{}
	}

	cond := spec.Switch
	discRaw, discPresent := record[cond.On]
	if discPresent {
		if discValue, ok := discRaw.(string); ok {
			for _, c := range cond.Cases {
				if c.Is == discValue {
					return resolveSpec(c.Then, record, present)
				}
			}
		}
		return resolveSpec(cond.Otherwise, record, present)
	}
	if cond.RequireDiscriminator && present {
		return resolution{missingDiscriminator: cond.On}
	}
	return resolveSpec(cond.Otherwise, record, present)
}

func requiredViolation(field, label string) *validator.Violation {
	return &validator.Violation{
		Field:   field,
		Kind:    validator.KindRequired,
		Message: "is required",
		Params: map[string]any{
			"label": label,
		},
	}
}

func baseViolation(field, label string, t schema.FieldType) *validator.Violation {
	kind := validator.KindNumberBase
	switch t {
	case schema.TypeString:
		kind = validator.KindStringBase
	case schema.TypeDate:
		kind = validator.KindDateBase
	}
	return &validator.Violation{
		Field:   field,
		Kind:    kind,
		Message: "has the wrong type",
		Params: map[string]any{
			"label": label,
		},
	}
}
