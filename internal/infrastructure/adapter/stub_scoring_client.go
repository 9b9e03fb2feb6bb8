package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// StubScoringClient simulates the decision engine with deterministic results
// derived from the request contents, so development and tests are
// reproducible without the external service.
type StubScoringClient struct{}

// NewStubScoringClient creates the stub.
func NewStubScoringClient() *StubScoringClient {
	return &StubScoringClient{}
}

// EvaluateCredit implements port.ScoringClient with a hash-derived verdict.
func (c *StubScoringClient) EvaluateCredit(_ context.Context, req port.ScoringRequest) (valueobject.CreditDecision, error) {
	seed := fmt.Sprintf("%s|%d|%s", req.LoanAmount.String(), req.LoanTermMonths, req.MonthlyIncome.String())
	h := sha256.Sum256([]byte(seed))
	score := int64(binary.BigEndian.Uint32(h[:4]) % 101)

	verdict := "REDDEDILDI"
	reason := fmt.Sprintf("Kredi reddedildi - Risk skoru: %d/100. Risk kriterleri karşılanmadı.", score)
	recommended := decimal.Zero
	var conditions []string

	switch {
	case score >= 60:
		verdict = valueobject.ApprovalVerdict
		reason = fmt.Sprintf("Kredi onaylandı - Risk skoru: %d/100. Güçlü finansal profil.", score)
		recommended = req.LoanAmount
	case score >= 40:
		verdict = valueobject.ApprovalVerdict
		reason = fmt.Sprintf("Koşullu onay - Risk skoru: %d/100. Ek şartlar gerekli.", score)
		recommended = req.LoanAmount.Mul(decimal.NewFromFloat(0.8)).Round(2)
		conditions = []string{"Ek gelir belgesi gerekli", "Kefil veya teminat zorunlu"}
	}

	return valueobject.NewCreditDecision(
		verdict,
		decimal.NewFromInt(score),
		reason,
		recommended,
		conditions,
	), nil
}
