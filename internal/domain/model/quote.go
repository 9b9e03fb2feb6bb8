package model

import "github.com/shopspring/decimal"

// LoanQuote is an immutable value object holding the derived figures for a
// consumer loan. A quote with Valid=false carries the all-zero sentinel; the
// zero value therefore doubles as the "no result" quote callers render as-is.
type LoanQuote struct {
	Principal               decimal.Decimal
	TermMonths              int
	MonthlyRatePct          float64
	KKDFRatePct             float64
	BSMVRatePct             float64
	EffectiveMonthlyRatePct float64
	MonthlyPayment          decimal.Decimal
	TotalPayment            decimal.Decimal
	TotalInterest           decimal.Decimal
	KKDFAmount              decimal.Decimal
	BSMVAmount              decimal.Decimal
	Valid                   bool
}

// InvalidLoanQuote returns the all-zero sentinel quote.
func InvalidLoanQuote() LoanQuote {
	return LoanQuote{
		Principal:      decimal.Zero,
		MonthlyPayment: decimal.Zero,
		TotalPayment:   decimal.Zero,
		TotalInterest:  decimal.Zero,
		KKDFAmount:     decimal.Zero,
		BSMVAmount:     decimal.Zero,
	}
}

// DepositQuote is an immutable value object holding the derived figures for a
// time deposit.
type DepositQuote struct {
	Principal              decimal.Decimal
	TermDays               int
	AnnualRatePct          float64
	WithholdingRatePct     float64
	GrossInterest          decimal.Decimal
	WithholdingTax         decimal.Decimal
	NetInterest            decimal.Decimal
	TotalAmount            decimal.Decimal
	EffectiveAnnualRatePct decimal.Decimal
}
