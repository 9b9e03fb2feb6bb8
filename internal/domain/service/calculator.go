package service

import (
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/model"
)

// Product rate constants. KKDF and BSMV are flat percentage surcharges applied
// multiplicatively on top of the nominal monthly loan rate.
const (
	BaseMonthlyRatePct       = 4.09
	KKDFRatePct              = 0.15
	BSMVRatePct              = 0.15
	DepositWithholdingPct    = 17.5
	DepositAnnualRateDefault = 45.0
)

// ErrInvalidDepositInput is returned by ComputeDeposit for non-positive or
// non-finite inputs. The loan calculator deliberately does not share this
// behaviour: it degrades to the zero quote instead (see ComputeLoan).
var ErrInvalidDepositInput = errors.New("deposit inputs must be positive finite numbers")

// Calculator derives payment schedules for loan and time-deposit products.
// All methods are pure; two calls with identical inputs yield identical quotes.
type Calculator struct{}

// NewCalculator returns a new calculator instance.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// ComputeLoan turns (principal, term, rate schedule) into a constant-payment
// loan quote.
//
// The effective per-period multiplier is
//
//	r = round11(monthlyRate * (1 + kkdf + bsmv) / 100 + 1)
//
// where round11 fixes the multiplier to 11 decimal digits before use. That
// rounding is load-bearing: downstream totals are only reproducible against
// the reference figures when the multiplier is truncated at exactly this
// precision. The payment itself is
//
//	payment = principal * r^n * (r-1) / (r^n - 1)
//
// rounded to 2 decimals as the final step; totals are then exact decimal
// products of the rounded payment.
//
// Invalid input (non-positive principal or term, degenerate rate, non-finite
// intermediate) returns the all-zero Valid=false quote. This function never
// returns an error; callers rely on the zero sentinel to short-circuit.
func (c *Calculator) ComputeLoan(
	principal decimal.Decimal,
	termMonths int,
	monthlyRatePct, kkdfRatePct, bsmvRatePct float64,
) model.LoanQuote {
	if principal.LessThanOrEqual(decimal.Zero) || termMonths <= 0 {
		return model.InvalidLoanQuote()
	}

	totalRate := round11(monthlyRatePct*(1+kkdfRatePct+bsmvRatePct)/100 + 1)
	if math.IsNaN(totalRate) || math.IsInf(totalRate, 0) || totalRate <= 1 {
		return model.InvalidLoanQuote()
	}

	n := float64(termMonths)
	factor := math.Pow(totalRate, n)
	denominator := factor - 1
	if denominator == 0 || math.IsInf(factor, 0) {
		return model.InvalidLoanQuote()
	}

	rawPayment := factor * (totalRate - 1) / denominator * principal.InexactFloat64()
	if math.IsNaN(rawPayment) || math.IsInf(rawPayment, 0) || rawPayment <= 0 {
		return model.InvalidLoanQuote()
	}

	monthlyPayment := decimal.NewFromFloat(rawPayment).Round(2)
	totalPayment := monthlyPayment.Mul(decimal.NewFromInt(int64(termMonths)))
	totalInterest := totalPayment.Sub(principal)

	var kkdfAmount, bsmvAmount decimal.Decimal
	if surcharge := kkdfRatePct + bsmvRatePct; surcharge > 0 {
		kkdfShare := decimal.NewFromFloat(kkdfRatePct / surcharge)
		kkdfAmount = totalInterest.Mul(kkdfShare).Round(2)
		bsmvAmount = totalInterest.Sub(kkdfAmount)
	}

	return model.LoanQuote{
		Principal:               principal,
		TermMonths:              termMonths,
		MonthlyRatePct:          monthlyRatePct,
		KKDFRatePct:             kkdfRatePct,
		BSMVRatePct:             bsmvRatePct,
		EffectiveMonthlyRatePct: (totalRate - 1) * 100,
		MonthlyPayment:          monthlyPayment,
		TotalPayment:            totalPayment,
		TotalInterest:           totalInterest,
		KKDFAmount:              kkdfAmount,
		BSMVAmount:              bsmvAmount,
		Valid:                   true,
	}
}

// ComputeDeposit derives the return of a time deposit.
//
//	gross      = principal * annualRate * days / 36500
//	withholding = gross * withholdingRate / 100
//	net        = gross - withholding
//	total      = principal + net
//	effective  = ((total/principal)^(365/days) - 1) * 100
//
// Currency figures are rounded to 2 decimals, the effective rate to 4. Net and
// total are derived from the rounded gross and tax so that the invariants
// total = principal + net and net = gross - withholding hold exactly.
//
// Unlike ComputeLoan this function reports invalid input as an error rather
// than degrading to zeros; the asymmetry mirrors the two products' documented
// contracts and is kept on purpose.
func (c *Calculator) ComputeDeposit(
	principal decimal.Decimal,
	termDays int,
	annualRatePct, withholdingRatePct float64,
) (model.DepositQuote, error) {
	p := principal.InexactFloat64()
	if p <= 0 || termDays <= 0 || annualRatePct <= 0 || withholdingRatePct < 0 {
		return model.DepositQuote{}, ErrInvalidDepositInput
	}

	rawGross := p * annualRatePct * float64(termDays) / 36500
	if math.IsNaN(rawGross) || math.IsInf(rawGross, 0) {
		return model.DepositQuote{}, ErrInvalidDepositInput
	}

	gross := decimal.NewFromFloat(rawGross).Round(2)
	withholding := gross.Mul(decimal.NewFromFloat(withholdingRatePct / 100)).Round(2)
	net := gross.Sub(withholding)
	total := principal.Add(net)

	rawEffective := (math.Pow(total.InexactFloat64()/p, 365/float64(termDays)) - 1) * 100
	if math.IsNaN(rawEffective) || math.IsInf(rawEffective, 0) {
		return model.DepositQuote{}, ErrInvalidDepositInput
	}

	return model.DepositQuote{
		Principal:              principal,
		TermDays:               termDays,
		AnnualRatePct:          annualRatePct,
		WithholdingRatePct:     withholdingRatePct,
		GrossInterest:          gross,
		WithholdingTax:         withholding,
		NetInterest:            net,
		TotalAmount:            total,
		EffectiveAnnualRatePct: decimal.NewFromFloat(rawEffective).Round(4),
	}, nil
}

// round11 fixes a float to 11 decimal digits via the shortest round-trip
// through its decimal representation, matching the reference tie-break.
func round11(x float64) float64 {
	fixed, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 11, 64), 64)
	if err != nil {
		return math.NaN()
	}
	return fixed
}
