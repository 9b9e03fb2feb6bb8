package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// ScoringRequest is the applicant attribute set sent to the decision engine.
// Fields the caller cannot fill stay at their zero value; the engine applies
// its own defaults.
type ScoringRequest struct {
	LoanAmount           decimal.Decimal
	LoanTermMonths       int
	MonthlyIncome        decimal.Decimal
	AdditionalIncome     decimal.Decimal
	Expenses             decimal.Decimal
	RentPayment          decimal.Decimal
	Age                  int
	EmploymentType       string
	WorkExperience       int
	DebtToIncomeRatio    float64
	ExistingLoans        int
	CreditCardLimit      decimal.Decimal
	CreditCardDebt       decimal.Decimal
	BankBalance          decimal.Decimal
	Investments          decimal.Decimal
	RealEstateValue      decimal.Decimal
	KKBScore             int
	PaymentDelays        int
	HomeOwnership        string
	ResidenceDuration    int
	CustomerSegment      string
	ExistingRelationship bool
	TotalBankingProducts int
	DefaultedLoans       int
	LegalIssues          bool
	HasInsurance         bool
	JobStability         string
}

// ScoringClient evaluates a credit request against the external decision
// engine. Implementations make exactly one attempt; retrying is the caller's
// decision. Transport failures and non-2xx responses surface as
// *valueobject.TransportError.
type ScoringClient interface {
	EvaluateCredit(ctx context.Context, req ScoringRequest) (valueobject.CreditDecision, error)
}

// LedgerClient talks to the external ledger service that owns account
// balances. IncreaseBalance is atomic on the ledger side and returns the
// balance after the credit.
type LedgerClient interface {
	IncreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
}
