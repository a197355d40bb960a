package schema

import (
	"context"
	"errors"
	"time"

	"github.com/bankcore/rulekit/pkg/validator"
)

// ErrInvalidReference is the failure an external reference predicate reports
// when a referenced record does not exist or cannot exist.
var ErrInvalidReference = errors.New("invalid reference")

// Enumeration values of the banking data model.
var (
	Roles               = []string{"user", "employee", "manager"}
	AccountTypes        = []string{"savings", "current", "loan", "fixed_deposit"}
	AccountStatuses     = []string{"active", "inactive", "closed", "progress"}
	TransactionTypes    = []string{"deposit", "withdrawal", "transfer", "bill_payment", "loan_payment"}
	PaymentMethods      = []string{"cash", "card", "bank_transfer", "upi", "cheque", "auto_debit"}
	TransactionStatuses = []string{"pending", "successful", "failed", "reversed"}
	LoanTypes           = []string{"home", "personal", "car", "education"}
	LoanStatuses        = []string{"approved", "pending", "rejected"}
	EmployeePositions   = []string{"teller", "clerk", "loan_officer", "assistant_manager", "branch_manager"}
	EmployeeStatuses    = []string{"active", "inactive", "on_leave", "terminated"}
)

// BankingOption customizes the built-in banking rule-sets.
type BankingOption func(*bankingConfig)

type bankingConfig struct {
	userRefCheck ExternalCheck
	overrides    map[Kind]MessageTable
}

// WithUserReferenceCheck attaches an additional external predicate to the
// account owner reference. It runs after the built-in positivity check, so it
// only ever sees positive integer IDs.
func WithUserReferenceCheck(check ExternalCheck) BankingOption {
	return func(c *bankingConfig) { c.userRefCheck = check }
}

// WithMessageOverrides layers deployment-supplied message overrides on top of
// the built-in per-kind tables, typically loaded with LoadMessageOverrides.
func WithMessageOverrides(overrides map[Kind]MessageTable) BankingOption {
	return func(c *bankingConfig) { c.overrides = overrides }
}

// NewBankingRegistry builds the registry holding the rule-sets for the six
// banking record kinds. The returned registry must not be mutated afterwards.
func NewBankingRegistry(opts ...BankingOption) *Registry {
	var cfg bankingConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := NewRegistry()
	reg.MustRegister(NewSchema(KindUser, userFields(), cfg.messages(KindUser, userMessages)))
	reg.MustRegister(NewSchema(KindAccount, accountFields(cfg.userRefCheck), cfg.messages(KindAccount, accountMessages)))
	reg.MustRegister(NewSchema(KindTransaction, transactionFields(), cfg.messages(KindTransaction, transactionMessages)))
	reg.MustRegister(NewSchema(KindLoan, loanFields(), cfg.messages(KindLoan, nil)))
	reg.MustRegister(NewSchema(KindEmployee, employeeFields(), cfg.messages(KindEmployee, employeeMessages)))
	reg.MustRegister(NewSchema(KindBranch, branchFields(), cfg.messages(KindBranch, branchMessages)))
	return reg
}

func (c *bankingConfig) messages(kind Kind, builtin MessageTable) MessageTable {
	return builtin.merge(c.overrides[kind])
}

// Per-kind message overrides. Kinds not listed here fall through to the
// generic default table.
var (
	userMessages = MessageTable{
		validator.KindNumberBase:    "Mobile number must be a number.",
		validator.KindNumberInteger: "Mobile number must be an integer.",
		validator.KindStringBase:    "Full name and email must be a string.",
		validator.KindStringEmail:   "Email address must be a valid email.",
		validator.KindRequired:      "This field is required.",
		validator.KindStringLength:  "Mobile number must be exactly 10 digits.",
		validator.KindOnly:          "Role must be one of: user, employee, or manager.",
	}
	accountMessages = MessageTable{
		validator.KindNumberBase:    "Account number and balance must be a number.",
		validator.KindNumberInteger: "Account number must be an integer.",
		validator.KindRequired:      "This field is required.",
		validator.KindOnly:          "Account type must be one of the allowed values.",
		validator.KindNumberMin:     "Balance cannot be less than the minimum limit.",
		validator.KindNumberMax:     "Balance cannot be greater than the maximum limit.",
		validator.KindStringBase:    "Account holder name must be a string.",
	}
	transactionMessages = MessageTable{
		validator.KindNumberBase:    "Transaction amount and IDs must be numbers.",
		validator.KindNumberInteger: "Transaction ID must be an integer.",
		validator.KindRequired:      "This field is required.",
		validator.KindOnly:          "Transaction type must be one of the allowed values.",
		validator.KindNumberMin:     "Transaction amount cannot be less than the minimum.",
		validator.KindNumberMax:     "Transaction amount cannot be greater than the maximum.",
	}
	employeeMessages = MessageTable{
		validator.KindNumberBase:     "Employee ID and salary must be numbers.",
		validator.KindNumberInteger:  "Employee ID must be an integer.",
		validator.KindRequired:       "This field is required.",
		validator.KindOnly:           "Role or department must be one of the allowed values.",
		validator.KindNumberPositive: "Salary must be a positive number.",
	}
	branchMessages = MessageTable{
		validator.KindNumberBase:    "Branch ID and PIN code must be numbers.",
		validator.KindNumberInteger: "Branch ID must be an integer.",
		validator.KindRequired:      "This field is required.",
		validator.KindStringBase:    "Branch name and address must be strings.",
	}
)

func userFields() []Field {
	return []Field{
		{Name: "user_id", Spec: leaf("User ID", FieldRule{Type: TypeInteger})},
		{Name: "full_name", Spec: leaf("Full name", FieldRule{Type: TypeString})},
		{Name: "email", Spec: leaf("Email address", FieldRule{Type: TypeString, Email: true})},
		{Name: "password_hash", Spec: leaf("Password", FieldRule{Type: TypeString, Required: true})},
		{Name: "phone_number", Spec: leaf("Mobile number", FieldRule{Type: TypeString, Length: 10})},
		{Name: "role", Spec: leaf("Role", FieldRule{Type: TypeEnum, Allowed: Roles})},
		{Name: "created_at", Spec: leaf("Created at", FieldRule{Type: TypeDate})},
	}
}

func accountFields(userRefCheck ExternalCheck) []Field {
	return []Field{
		{Name: "account_id", Spec: leaf("Account number", FieldRule{Type: TypeInteger})},
		{Name: "user_id", Spec: leaf("Account owner", FieldRule{
			Type:     TypeInteger,
			Required: true,
			External: positiveReference(userRefCheck),
		})},
		{Name: "account_type", Spec: leaf("Account type", FieldRule{Type: TypeEnum, Required: true, Allowed: AccountTypes})},
		{Name: "balance", Spec: FieldSpec{
			Label: "Balance",
			Switch: &Conditional{
				On: "account_type",
				Cases: []Case{
					{Is: "savings", Then: amount(FieldRule{Type: TypeNumber, Required: true, Precision: 2, Min: floatPtr(1000)})},
					{Is: "current", Then: amount(FieldRule{Type: TypeNumber, Required: true, Precision: 2, Min: floatPtr(0), Default: 0.0})},
					{Is: "loan", Then: amount(FieldRule{Type: TypeNumber, Required: true, Precision: 2, Max: floatPtr(0), Default: 0.0})},
				},
				Otherwise: amount(FieldRule{Type: TypeNumber, Required: true, Precision: 2}),
			},
		}},
		{Name: "currency", Spec: leaf("Currency", FieldRule{Type: TypeString, Default: "INR"})},
		{Name: "status", Spec: leaf("Status", FieldRule{Type: TypeEnum, Allowed: AccountStatuses, Default: "active"})},
		{Name: "created_at", Spec: leaf("Created at", FieldRule{Type: TypeDate, DynamicDefault: nowDefault})},
	}
}

func transactionFields() []Field {
	return []Field{
		{Name: "transaction_id", Spec: leaf("Transaction ID", FieldRule{Type: TypeInteger})},
		{Name: "user_id", Spec: leaf("User ID", FieldRule{Type: TypeInteger, Required: true})},
		{Name: "from_account", Spec: leaf("Source account", FieldRule{Type: TypeString})},
		{Name: "to_account", Spec: leaf("Destination account", FieldRule{Type: TypeString})},
		{Name: "biller_name", Spec: leaf("Biller name", FieldRule{Type: TypeString})},
		{Name: "bill_account_no", Spec: leaf("Bill account number", FieldRule{Type: TypeString})},
		{Name: "loan_id", Spec: leaf("Loan ID", FieldRule{Type: TypeInteger})},
		{Name: "amount", Spec: FieldSpec{
			Label:    "Amount",
			Required: true,
			Switch: &Conditional{
				On: "transaction_type",
				Cases: []Case{
					{Is: "deposit", Then: &FieldSpec{
						Switch: &Conditional{
							On: "payment_method",
							Cases: []Case{
								{Is: "upi", Then: amountRange(10, 1_000_000)},
								{Is: "cash", Then: amountRange(100, 2_000_000)},
								{Is: "cheque", Then: amountRange(500, 10_000_000)},
							},
							Otherwise: amountRange(100, 1_000_000),
						},
					}},
					{Is: "withdrawal", Then: &FieldSpec{
						Switch: &Conditional{
							On: "payment_method",
							Cases: []Case{
								{Is: "cash", Then: amountRange(100, 50_000)},
								{Is: "cheque", Then: amountRange(500, 500_000)},
							},
							Otherwise: amountRange(100, 50_000),
						},
					}},
					{Is: "transfer", Then: amountRange(500, 10_000_000)},
					{Is: "bill_payment", Then: amountRange(50, 200_000)},
					{Is: "loan_payment", Then: amountRange(1000, 1_000_000)},
				},
				Otherwise: amount(FieldRule{Type: TypeNumber, Required: true, Precision: 2}),
			},
		}},
		{Name: "transaction_type", Spec: leaf("Transaction type", FieldRule{Type: TypeEnum, Allowed: TransactionTypes})},
		{Name: "payment_method", Spec: leaf("Payment method", FieldRule{Type: TypeEnum, Allowed: PaymentMethods})},
		{Name: "status", Spec: leaf("Status", FieldRule{Type: TypeEnum, Allowed: TransactionStatuses})},
		{Name: "created_at", Spec: leaf("Created at", FieldRule{Type: TypeDate, DynamicDefault: nowDefault})},
	}
}

func loanFields() []Field {
	return []Field{
		{Name: "loan_id", Spec: leaf("Loan ID", FieldRule{Type: TypeInteger})},
		{Name: "user_id", Spec: leaf("User ID", FieldRule{Type: TypeInteger, Required: true})},
		{Name: "amount", Spec: leaf("Loan amount", FieldRule{
			Type: TypeNumber, Required: true, Precision: 2,
			Min: floatPtr(1000), Max: floatPtr(1_000_000),
		})},
		{Name: "interest_rate", Spec: leaf("Interest rate", FieldRule{
			Type: TypeNumber, Required: true, Precision: 2,
			Min: floatPtr(1), Max: floatPtr(30),
		})},
		{Name: "loan_type", Spec: leaf("Loan type", FieldRule{Type: TypeEnum, Allowed: LoanTypes})},
		// Tenure 0 means a lump-sum payoff and is accepted outright; any
		// other tenure must fall inside the range of its loan type.
		{Name: "tenure_months", Spec: FieldSpec{
			Label:         "Tenure months",
			Required:      true,
			AcceptLiteral: []float64{0},
			Switch: &Conditional{
				On:                   "loan_type",
				RequireDiscriminator: true,
				Cases: []Case{
					{Is: "home", Then: numberRange(60, 360)},
					{Is: "personal", Then: numberRange(12, 84)},
					{Is: "car", Then: numberRange(24, 96)},
					{Is: "education", Then: numberRange(12, 12)},
				},
			},
		}},
		{Name: "status", Spec: leaf("Status", FieldRule{Type: TypeEnum, Allowed: LoanStatuses, Default: "pending"})},
		{Name: "created_at", Spec: leaf("Created at", FieldRule{Type: TypeDate, DynamicDefault: nowDefault})},
	}
}

func employeeFields() []Field {
	return []Field{
		{Name: "employee_id", Spec: leaf("Employee ID", FieldRule{Type: TypeInteger})},
		{Name: "user_id", Spec: leaf("User ID", FieldRule{Type: TypeInteger, Required: true})},
		{Name: "branch_id", Spec: leaf("Branch ID", FieldRule{Type: TypeInteger, Required: true})},
		{Name: "position", Spec: leaf("Position", FieldRule{Type: TypeEnum, Required: true, Allowed: EmployeePositions})},
		{Name: "salary", Spec: leaf("Salary", FieldRule{Type: TypeNumber, Required: true, Precision: 2, Positive: true})},
		{Name: "status", Spec: leaf("Status", FieldRule{Type: TypeEnum, Allowed: EmployeeStatuses, Default: "active"})},
		{Name: "created_at", Spec: leaf("Created at", FieldRule{Type: TypeDate, DynamicDefault: nowDefault})},
	}
}

func branchFields() []Field {
	return []Field{
		{Name: "branch_id", Spec: leaf("Branch ID", FieldRule{Type: TypeInteger})},
		{Name: "branch_name", Spec: leaf("Branch name", FieldRule{Type: TypeString, Required: true})},
		{Name: "address", Spec: leaf("Address", FieldRule{Type: TypeString, Required: true})},
		{Name: "manager_id", Spec: leaf("Manager ID", FieldRule{Type: TypeInteger, Nullable: true})},
		{Name: "created_at", Spec: leaf("Created at", FieldRule{Type: TypeDate, DynamicDefault: nowDefault})},
	}
}

func leaf(label string, rule FieldRule) FieldSpec {
	return FieldSpec{Label: label, Rule: &rule}
}

func amount(rule FieldRule) *FieldSpec {
	return &FieldSpec{Rule: &rule}
}

func amountRange(min, max float64) *FieldSpec {
	return amount(FieldRule{
		Type: TypeNumber, Required: true, Precision: 2,
		Min: floatPtr(min), Max: floatPtr(max),
	})
}

func numberRange(min, max float64) *FieldSpec {
	return amount(FieldRule{
		Type: TypeNumber, Required: true,
		Min: floatPtr(min), Max: floatPtr(max),
	})
}

func nowDefault(now time.Time) any { return now }

// positiveReference rejects non-positive owner IDs and, when a lookup is
// configured, verifies the owner actually exists.
func positiveReference(next ExternalCheck) ExternalCheck {
	return func(ctx context.Context, value any) error {
		id, ok := value.(int64)
		if !ok || id <= 0 {
			return ErrInvalidReference
		}
		if next != nil {
			return next(ctx, value)
		}
		return nil
	}
}
