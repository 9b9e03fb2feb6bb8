package valueobject

import "github.com/shopspring/decimal"

// ApprovalVerdict is the literal the external decision engine returns for an
// approval. Anything else, including an absent field, counts as a rejection.
const ApprovalVerdict = "ONAYLANDI"

// CreditDecision is the normalised outcome of one scoring call. Immutable once
// produced; RecommendedAmount, when positive, is authoritative for withdrawal.
type CreditDecision struct {
	approved          bool
	creditScore       decimal.Decimal
	reason            string
	recommendedAmount decimal.Decimal
	conditions        []string
}

// NewCreditDecision normalises the external scorer vocabulary into the internal
// decision. The response schema is best-effort: the score is clamped into
// [0, 100] and missing fields default safely.
func NewCreditDecision(
	verdict string,
	creditScore decimal.Decimal,
	reason string,
	recommendedAmount decimal.Decimal,
	conditions []string,
) CreditDecision {
	score := creditScore
	if score.IsNegative() {
		score = decimal.Zero
	}
	if hundred := decimal.NewFromInt(100); score.GreaterThan(hundred) {
		score = hundred
	}

	return CreditDecision{
		approved:          verdict == ApprovalVerdict,
		creditScore:       score,
		reason:            reason,
		recommendedAmount: recommendedAmount,
		conditions:        copyStrings(conditions),
	}
}

// ReconstructCreditDecision rebuilds a decision from persistence without
// re-normalising (the stored approved flag is trusted).
func ReconstructCreditDecision(
	approved bool,
	creditScore decimal.Decimal,
	reason string,
	recommendedAmount decimal.Decimal,
	conditions []string,
) CreditDecision {
	return CreditDecision{
		approved:          approved,
		creditScore:       creditScore,
		reason:            reason,
		recommendedAmount: recommendedAmount,
		conditions:        copyStrings(conditions),
	}
}

func (d CreditDecision) Approved() bool                     { return d.approved }
func (d CreditDecision) CreditScore() decimal.Decimal       { return d.creditScore }
func (d CreditDecision) Reason() string                     { return d.reason }
func (d CreditDecision) RecommendedAmount() decimal.Decimal { return d.recommendedAmount }
func (d CreditDecision) Conditions() []string               { return copyStrings(d.conditions) }

// IsZero reports whether no decision has been recorded.
func (d CreditDecision) IsZero() bool {
	return !d.approved && d.reason == "" && d.creditScore.IsZero() && len(d.conditions) == 0
}

func copyStrings(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
