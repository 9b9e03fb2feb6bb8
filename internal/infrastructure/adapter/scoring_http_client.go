package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// ScoringConfig holds configuration for the decision engine adapter.
type ScoringConfig struct {
	// BaseURL is the base URL of the decision engine.
	BaseURL string
	// TimeoutSeconds is the HTTP client timeout.
	TimeoutSeconds int
}

// HTTPScoringClient calls the external decision engine over HTTP. It makes
// exactly one attempt per Execute: the workflow decides whether to retry, so
// the adapter must not hide failures behind its own retry loop.
type HTTPScoringClient struct {
	config ScoringConfig
	client *http.Client
}

// NewHTTPScoringClient creates a new adapter with the given configuration.
func NewHTTPScoringClient(config ScoringConfig) *HTTPScoringClient {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPScoringClient{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

type scoringPayload struct {
	LoanAmount           decimal.Decimal `json:"loan_amount"`
	LoanTermMonths       int             `json:"loan_term_months"`
	MonthlyIncome        decimal.Decimal `json:"monthly_income"`
	AdditionalIncome     decimal.Decimal `json:"additional_income"`
	Expenses             decimal.Decimal `json:"expenses"`
	RentPayment          decimal.Decimal `json:"rent_payment"`
	Age                  int             `json:"age"`
	EmploymentType       string          `json:"employment_type"`
	WorkExperience       int             `json:"work_experience"`
	DebtToIncomeRatio    float64         `json:"debt_to_income_ratio"`
	ExistingLoans        int             `json:"existing_loans"`
	CreditCardLimit      decimal.Decimal `json:"credit_card_limit"`
	CreditCardDebt       decimal.Decimal `json:"credit_card_debt"`
	BankBalance          decimal.Decimal `json:"bank_balance"`
	Investments          decimal.Decimal `json:"investments"`
	RealEstateValue      decimal.Decimal `json:"real_estate_value"`
	KKBScore             int             `json:"kkb_score"`
	PaymentDelays        int             `json:"payment_delays"`
	HomeOwnership        string          `json:"home_ownership"`
	ResidenceDuration    int             `json:"residence_duration"`
	CustomerSegment      string          `json:"customer_segment"`
	ExistingRelationship bool            `json:"existing_relationship"`
	TotalBankingProducts int             `json:"total_banking_products"`
	DefaultedLoans       int             `json:"defaulted_loans"`
	LegalIssues          bool            `json:"legal_issues"`
	HasInsurance         bool            `json:"has_insurance"`
	JobStability         string          `json:"job_stability"`
}

// scoringResult mirrors the engine response. All fields besides decision are
// optional; absent ones decode to their zero value and the decision
// normalisation handles the rest.
type scoringResult struct {
	Decision          string           `json:"decision"`
	CreditScore       *decimal.Decimal `json:"credit_score"`
	DecisionReason    string           `json:"decision_reason"`
	RecommendedAmount *decimal.Decimal `json:"recommended_amount"`
	Conditions        []string         `json:"conditions"`
}

// EvaluateCredit implements port.ScoringClient.
func (c *HTTPScoringClient) EvaluateCredit(ctx context.Context, req port.ScoringRequest) (valueobject.CreditDecision, error) {
	body, err := json.Marshal(toScoringPayload(req))
	if err != nil {
		return valueobject.CreditDecision{}, fmt.Errorf("marshal scoring payload: %w", err)
	}

	url := c.config.BaseURL + "/evaluate_credit"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return valueobject.CreditDecision{}, fmt.Errorf("build scoring request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return valueobject.CreditDecision{}, &valueobject.TransportError{Op: "evaluate credit", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return valueobject.CreditDecision{}, &valueobject.TransportError{
			Op:    "evaluate credit",
			Cause: fmt.Errorf("decision engine returned status %d", resp.StatusCode),
		}
	}

	var result scoringResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return valueobject.CreditDecision{}, &valueobject.TransportError{
			Op:    "evaluate credit",
			Cause: fmt.Errorf("decode decision engine response: %w", err),
		}
	}

	score := decimal.Zero
	if result.CreditScore != nil {
		score = *result.CreditScore
	}
	recommended := decimal.Zero
	if result.RecommendedAmount != nil {
		recommended = *result.RecommendedAmount
	}
	return valueobject.NewCreditDecision(
		result.Decision, score, result.DecisionReason, recommended, result.Conditions,
	), nil
}

func toScoringPayload(req port.ScoringRequest) scoringPayload {
	return scoringPayload{
		LoanAmount:           req.LoanAmount,
		LoanTermMonths:       req.LoanTermMonths,
		MonthlyIncome:        req.MonthlyIncome,
		AdditionalIncome:     req.AdditionalIncome,
		Expenses:             req.Expenses,
		RentPayment:          req.RentPayment,
		Age:                  req.Age,
		EmploymentType:       req.EmploymentType,
		WorkExperience:       req.WorkExperience,
		DebtToIncomeRatio:    req.DebtToIncomeRatio,
		ExistingLoans:        req.ExistingLoans,
		CreditCardLimit:      req.CreditCardLimit,
		CreditCardDebt:       req.CreditCardDebt,
		BankBalance:          req.BankBalance,
		Investments:          req.Investments,
		RealEstateValue:      req.RealEstateValue,
		KKBScore:             req.KKBScore,
		PaymentDelays:        req.PaymentDelays,
		HomeOwnership:        req.HomeOwnership,
		ResidenceDuration:    req.ResidenceDuration,
		CustomerSegment:      req.CustomerSegment,
		ExistingRelationship: req.ExistingRelationship,
		TotalBankingProducts: req.TotalBankingProducts,
		DefaultedLoans:       req.DefaultedLoans,
		LegalIssues:          req.LegalIssues,
		HasInsurance:         req.HasInsurance,
		JobStability:         req.JobStability,
	}
}
