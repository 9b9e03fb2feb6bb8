package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Active credit lifecycle states.
const (
	ActiveCreditStatusActive    = "ACTIVE"
	ActiveCreditStatusCompleted = "COMPLETED"
	ActiveCreditStatusDefaulted = "DEFAULTED"
)

// ActiveCredit is the append-only record of a disbursed credit. It is written
// once when the funds are credited and never mutated afterwards; repayment
// progress lives in remainingAmount/remainingMonths snapshots written as new
// facts by the servicing process.
type ActiveCredit struct {
	id              string
	applicationID   string
	userID          string
	amount          decimal.Decimal
	termMonths      int
	monthlyPayment  decimal.Decimal
	remainingAmount decimal.Decimal
	remainingMonths int
	status          string
	startDate       time.Time
	endDate         time.Time
}

// NewActiveCredit creates the disbursement record for a withdrawn credit.
// The credit starts fully outstanding.
func NewActiveCredit(
	applicationID, userID string,
	amount decimal.Decimal,
	termMonths int,
	monthlyPayment decimal.Decimal,
	now time.Time,
) (ActiveCredit, error) {
	if applicationID == "" {
		return ActiveCredit{}, errors.New("application ID is required")
	}
	if userID == "" {
		return ActiveCredit{}, errors.New("user ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ActiveCredit{}, errors.New("amount must be positive")
	}
	if termMonths <= 0 {
		return ActiveCredit{}, errors.New("term months must be positive")
	}

	return ActiveCredit{
		id:              uuid.New().String(),
		applicationID:   applicationID,
		userID:          userID,
		amount:          amount,
		termMonths:      termMonths,
		monthlyPayment:  monthlyPayment,
		remainingAmount: monthlyPayment.Mul(decimal.NewFromInt(int64(termMonths))),
		remainingMonths: termMonths,
		status:          ActiveCreditStatusActive,
		startDate:       now,
		endDate:         now.AddDate(0, termMonths, 0),
	}, nil
}

// ReconstructActiveCredit rebuilds a record from persistence.
func ReconstructActiveCredit(
	id, applicationID, userID string,
	amount decimal.Decimal,
	termMonths int,
	monthlyPayment, remainingAmount decimal.Decimal,
	remainingMonths int,
	status string,
	startDate, endDate time.Time,
) ActiveCredit {
	return ActiveCredit{
		id:              id,
		applicationID:   applicationID,
		userID:          userID,
		amount:          amount,
		termMonths:      termMonths,
		monthlyPayment:  monthlyPayment,
		remainingAmount: remainingAmount,
		remainingMonths: remainingMonths,
		status:          status,
		startDate:       startDate,
		endDate:         endDate,
	}
}

func (c ActiveCredit) ID() string                       { return c.id }
func (c ActiveCredit) ApplicationID() string            { return c.applicationID }
func (c ActiveCredit) UserID() string                   { return c.userID }
func (c ActiveCredit) Amount() decimal.Decimal          { return c.amount }
func (c ActiveCredit) TermMonths() int                  { return c.termMonths }
func (c ActiveCredit) MonthlyPayment() decimal.Decimal  { return c.monthlyPayment }
func (c ActiveCredit) RemainingAmount() decimal.Decimal { return c.remainingAmount }
func (c ActiveCredit) RemainingMonths() int             { return c.remainingMonths }
func (c ActiveCredit) Status() string                   { return c.status }
func (c ActiveCredit) StartDate() time.Time             { return c.startDate }
func (c ActiveCredit) EndDate() time.Time               { return c.endDate }
