package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Credit Application Events
// ---------------------------------------------------------------------------

// CreditApplicationSubmitted is raised when a validated application enters the system.
type CreditApplicationSubmitted struct {
	events.BaseEvent
	UserID         string          `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
}

func NewCreditApplicationSubmitted(
	applicationID, userID string,
	amount decimal.Decimal, termMonths int,
	monthlyPayment, totalPayment decimal.Decimal,
) CreditApplicationSubmitted {
	return CreditApplicationSubmitted{
		BaseEvent:      events.NewBaseEvent("credit.application.submitted", applicationID, "CreditApplication"),
		UserID:         userID,
		Amount:         amount,
		TermMonths:     termMonths,
		MonthlyPayment: monthlyPayment,
		TotalPayment:   totalPayment,
	}
}

// CreditDecisionRecorded is raised when a scorer response is interpreted.
type CreditDecisionRecorded struct {
	events.BaseEvent
	UserID            string          `json:"user_id"`
	Approved          bool            `json:"approved"`
	CreditScore       decimal.Decimal `json:"credit_score"`
	Reason            string          `json:"reason"`
	RecommendedAmount decimal.Decimal `json:"recommended_amount"`
}

func NewCreditDecisionRecorded(
	applicationID, userID string,
	approved bool, creditScore decimal.Decimal,
	reason string, recommendedAmount decimal.Decimal,
) CreditDecisionRecorded {
	return CreditDecisionRecorded{
		BaseEvent:         events.NewBaseEvent("credit.application.decided", applicationID, "CreditApplication"),
		UserID:            userID,
		Approved:          approved,
		CreditScore:       creditScore,
		Reason:            reason,
		RecommendedAmount: recommendedAmount,
	}
}

// CreditWithdrawn is raised when approved funds are credited to the account.
type CreditWithdrawn struct {
	events.BaseEvent
	UserID     string          `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
	TermMonths int             `json:"term_months"`
}

func NewCreditWithdrawn(
	applicationID, userID string,
	amount, newBalance decimal.Decimal, termMonths int,
) CreditWithdrawn {
	return CreditWithdrawn{
		BaseEvent:  events.NewBaseEvent("credit.application.withdrawn", applicationID, "CreditApplication"),
		UserID:     userID,
		Amount:     amount,
		NewBalance: newBalance,
		TermMonths: termMonths,
	}
}

// ---------------------------------------------------------------------------
// Customer Events
// ---------------------------------------------------------------------------

// CustomerRegistered is raised when a registration form passes validation and
// the profile is stored.
type CustomerRegistered struct {
	events.BaseEvent
	Email         string    `json:"email"`
	Profession    string    `json:"profession"`
	Sector        string    `json:"sector"`
	AccountNumber string    `json:"account_number"`
	RegisteredAt  time.Time `json:"registered_at"`
}

func NewCustomerRegistered(userID, email, profession, sector, accountNumber string, registeredAt time.Time) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     events.NewBaseEvent("customer.registered", userID, "Customer"),
		Email:         email,
		Profession:    profession,
		Sector:        sector,
		AccountNumber: accountNumber,
		RegisteredAt:  registeredAt,
	}
}
