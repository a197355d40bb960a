package validator

// Violation kinds. The keys follow the message-table convention used by the
// schema package: a category prefix plus the failed constraint.
const (
	KindNumberBase     = "number.base"     // value is not a number
	KindNumberInteger  = "number.integer"  // number has a fractional part
	KindNumberMin      = "number.min"      // below the inclusive minimum
	KindNumberMax      = "number.max"      // above the inclusive maximum
	KindNumberPositive = "number.positive" // zero or negative
	KindStringBase     = "string.base"     // value is not text
	KindStringEmail    = "string.email"    // malformed email address
	KindStringLength   = "string.length"   // wrong exact character count
	KindDateBase       = "date.base"       // value is not a recognizable date
	KindRequired       = "any.required"    // required field absent
	KindOnly           = "any.only"        // value outside the allowed set
	KindInvalidRef     = "any.invalid"     // external reference check failed
	KindMissingSibling = "any.missing_discriminator"
)
