package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// LoanQuoteRequest carries the raw calculator inputs for a consumer loan.
// Amounts arrive as strings straight from the form.
type LoanQuoteRequest struct {
	Amount string `json:"amount"`
	Term   string `json:"term"`
}

// DepositQuoteRequest carries the raw calculator inputs for a time deposit.
// AnnualRatePct is optional; the product default applies when empty.
type DepositQuoteRequest struct {
	Amount        string `json:"amount"`
	Days          string `json:"days"`
	AnnualRatePct string `json:"annual_rate_pct,omitempty"`
}

// SubmitApplicationRequest carries the data needed to submit a credit application.
type SubmitApplicationRequest struct {
	UserID string `json:"user_id"`
	Amount string `json:"amount"`
	Term   string `json:"term"`
}

// AnalyzeApplicationRequest identifies an application to score on behalf of a user.
type AnalyzeApplicationRequest struct {
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id"`
}

// WithdrawCreditRequest identifies an approved application whose funds to credit.
type WithdrawCreditRequest struct {
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id"`
}

// GetApplicationRequest identifies an application to retrieve.
type GetApplicationRequest struct {
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id"`
}

// RegisterCustomerRequest carries the raw registration form.
type RegisterCustomerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirm_password"`
	Age              string `json:"age"`
	Profession       string `json:"profession"`
	Experience       string `json:"experience"`
	Sector           string `json:"sector"`
	Phone            string `json:"phone,omitempty"`
	Salary           string `json:"salary"`
	AdditionalIncome string `json:"additional_income"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanQuoteResponse is the external representation of a loan calculation.
type LoanQuoteResponse struct {
	Principal               decimal.Decimal `json:"principal"`
	TermMonths              int             `json:"term_months"`
	EffectiveMonthlyRatePct float64         `json:"effective_monthly_rate_pct"`
	MonthlyPayment          decimal.Decimal `json:"monthly_payment"`
	TotalPayment            decimal.Decimal `json:"total_payment"`
	TotalInterest           decimal.Decimal `json:"total_interest"`
	KKDFAmount              decimal.Decimal `json:"kkdf_amount"`
	BSMVAmount              decimal.Decimal `json:"bsmv_amount"`
	Valid                   bool            `json:"valid"`
}

// DepositQuoteResponse is the external representation of a deposit calculation.
type DepositQuoteResponse struct {
	Principal              decimal.Decimal `json:"principal"`
	TermDays               int             `json:"term_days"`
	AnnualRatePct          float64         `json:"annual_rate_pct"`
	GrossInterest          decimal.Decimal `json:"gross_interest"`
	WithholdingTax         decimal.Decimal `json:"withholding_tax"`
	NetInterest            decimal.Decimal `json:"net_interest"`
	TotalAmount            decimal.Decimal `json:"total_amount"`
	EffectiveAnnualRatePct decimal.Decimal `json:"effective_annual_rate_pct"`
}

// DecisionResponse is the external representation of a recorded credit decision.
type DecisionResponse struct {
	Approved          bool            `json:"approved"`
	CreditScore       decimal.Decimal `json:"credit_score"`
	Reason            string          `json:"reason,omitempty"`
	RecommendedAmount decimal.Decimal `json:"recommended_amount"`
	Conditions        []string        `json:"conditions,omitempty"`
}

// ApplicationResponse is the external representation of a credit application.
type ApplicationResponse struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Amount         decimal.Decimal   `json:"amount"`
	TermMonths     int               `json:"term_months"`
	MonthlyPayment decimal.Decimal   `json:"monthly_payment"`
	TotalPayment   decimal.Decimal   `json:"total_payment"`
	Status         string            `json:"status"`
	Decision       *DecisionResponse `json:"decision,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// WithdrawResponse reports a credited withdrawal.
type WithdrawResponse struct {
	ApplicationID  string          `json:"application_id"`
	AmountCredited decimal.Decimal `json:"amount_credited"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	Status         string          `json:"status"`
}

// CustomerResponse is the external representation of a registered customer.
type CustomerResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	AccountStatus string          `json:"account_status"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}
