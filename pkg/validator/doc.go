// Package validator provides the rule primitives underneath the record
// evaluation engine: small Rule values that pair a boolean Check with the
// violation reported when the check fails.
//
// Every rule carries a violation kind (see kinds.go) matching the message-table
// keys used by the schema package, plus a params map with the field label and
// any limits involved. Rules are combined with Apply, which evaluates all of
// them and aggregates failures into a Violations slice that implements error.
//
// The package holds no state and is safe for concurrent use.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.MinNum("amount", "Amount", amount, 10),
//	    validator.MaxNum("amount", "Amount", amount, 1_000_000),
//	    validator.InList("status", "Status", status, []string{"pending", "successful"}),
//	)
//	if verrs := validator.ExtractViolations(err); verrs != nil {
//	    // inspect field-level failures
//	}
package validator
