// Package engine evaluates one raw record against one registered schema and
// produces a verdict: the normalized record when every constraint holds, or
// the ordered list of rendered violations when any fails.
//
// Evaluation walks the schema's fields in declaration order. For each field
// the effective rule is resolved from the field's constraint tree, reading
// discriminator siblings from the raw input (never from defaults computed in
// the same pass). Absent fields receive their declared default, with dynamic
// defaults computed from the evaluator's injected clock; present values are
// coerced to the rule's base type, rounded to the declared precision, and
// checked against bounds, allowed values, and exact length. A field stops at
// its first failing constraint, but evaluation never short-circuits across
// fields: the verdict always carries every failing field.
//
// External reference checks run after a field's structural checks pass.
// Their failures, including context timeouts, become ordinary violations and
// never abort the evaluation.
//
// Evaluators are stateless between calls and safe for concurrent use.
package engine
