// Package schema holds the declarative rule-sets the evaluation engine runs
// against: one immutable Schema per record kind, registered once at process
// start in a Registry and read-only thereafter.
//
// A field's constraint is described by a FieldSpec tree. The leaf is a
// FieldRule (type, requiredness, default, bounds, precision, allowed values,
// exact length, external check); a Conditional node selects a branch by the
// value of a sibling discriminator field, in declared case order, falling back
// to an otherwise branch. Conditionals nest, which is how a transaction amount
// switches first on transaction_type and then on payment_method.
//
// The package also owns the message tables used to render violations: a
// generic default table covering every violation kind, with narrow per-kind
// overrides, and {{placeholder}} substitution for labels and limits. Override
// tables can be loaded from YAML.
//
// Banking rule-sets for the six record kinds (User, Account, Transaction,
// Loan, Employee, Branch) live in banking.go; NewBankingRegistry wires them
// into a ready Registry.
package schema
