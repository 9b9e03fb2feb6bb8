package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/event"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CreditApplication aggregate root
// ---------------------------------------------------------------------------

// CreditApplication is an immutable aggregate. Every mutation returns a new copy.
// Lifecycle: DRAFT -> SUBMITTED -> ANALYZING -> DECIDED -> WITHDRAWN,
// one step at a time, never backward.
type CreditApplication struct {
	id              string
	userID          string
	requestedAmount decimal.Decimal
	termMonths      int
	monthlyPayment  decimal.Decimal
	totalPayment    decimal.Decimal
	status          valueobject.ApplicationStatus
	decision        valueobject.CreditDecision
	withdrawnAmount decimal.Decimal
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewCreditApplication creates a brand-new application in DRAFT status.
// The caller is expected to validate the request before constructing and to
// call Submit before persisting.
func NewCreditApplication(
	userID string,
	requestedAmount decimal.Decimal,
	termMonths int,
	monthlyPayment, totalPayment decimal.Decimal,
	now time.Time,
) (CreditApplication, error) {
	if userID == "" {
		return CreditApplication{}, errors.New("user ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return CreditApplication{}, errors.New("requested amount must be positive")
	}
	if termMonths <= 0 {
		return CreditApplication{}, errors.New("term months must be positive")
	}

	return CreditApplication{
		id:              uuid.New().String(),
		userID:          userID,
		requestedAmount: requestedAmount,
		termMonths:      termMonths,
		monthlyPayment:  monthlyPayment,
		totalPayment:    totalPayment,
		status:          valueobject.ApplicationStatusDraft,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructCreditApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructCreditApplication(
	id, userID string,
	requestedAmount decimal.Decimal,
	termMonths int,
	monthlyPayment, totalPayment decimal.Decimal,
	status valueobject.ApplicationStatus,
	decision valueobject.CreditDecision,
	withdrawnAmount decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) CreditApplication {
	return CreditApplication{
		id:              id,
		userID:          userID,
		requestedAmount: requestedAmount,
		termMonths:      termMonths,
		monthlyPayment:  monthlyPayment,
		totalPayment:    totalPayment,
		status:          status,
		decision:        decision,
		withdrawnAmount: withdrawnAmount,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Submit transitions DRAFT -> SUBMITTED and emits CreditApplicationSubmitted.
func (a CreditApplication) Submit(now time.Time) (CreditApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusDraft) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusSubmitted
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCreditApplicationSubmitted(
		a.id, a.userID, a.requestedAmount, a.termMonths, a.monthlyPayment, a.totalPayment,
	))
	return next, nil
}

// BeginAnalysis transitions SUBMITTED -> ANALYZING.
func (a CreditApplication) BeginAnalysis(now time.Time) (CreditApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusSubmitted) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusAnalyzing
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// RecordDecision transitions ANALYZING -> DECIDED and emits CreditDecisionRecorded.
func (a CreditApplication) RecordDecision(decision valueobject.CreditDecision, now time.Time) (CreditApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusAnalyzing) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusDecided
	next.decision = decision
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCreditDecisionRecorded(
		a.id, a.userID, decision.Approved(), decision.CreditScore(),
		decision.Reason(), decision.RecommendedAmount(),
	))
	return next, nil
}

// MarkWithdrawn transitions DECIDED -> WITHDRAWN and emits CreditWithdrawn.
// Only an approved decision can be withdrawn, and only once.
func (a CreditApplication) MarkWithdrawn(amount, newBalance decimal.Decimal, now time.Time) (CreditApplication, error) {
	if a.status.Equal(valueobject.ApplicationStatusWithdrawn) {
		return a, valueobject.ErrAlreadyWithdrawn
	}
	if !a.status.Equal(valueobject.ApplicationStatusDecided) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	if !a.decision.Approved() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusWithdrawn
	next.withdrawnAmount = amount
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCreditWithdrawn(
		a.id, a.userID, amount, newBalance, a.termMonths,
	))
	return next, nil
}

// WithdrawalAmount returns the amount a withdraw operation must credit:
// the recommended amount when the scorer set one, otherwise the requested amount.
func (a CreditApplication) WithdrawalAmount() decimal.Decimal {
	if a.decision.RecommendedAmount().IsPositive() {
		return a.decision.RecommendedAmount()
	}
	return a.requestedAmount
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a CreditApplication) ID() string                             { return a.id }
func (a CreditApplication) UserID() string                         { return a.userID }
func (a CreditApplication) RequestedAmount() decimal.Decimal       { return a.requestedAmount }
func (a CreditApplication) TermMonths() int                        { return a.termMonths }
func (a CreditApplication) MonthlyPayment() decimal.Decimal        { return a.monthlyPayment }
func (a CreditApplication) TotalPayment() decimal.Decimal          { return a.totalPayment }
func (a CreditApplication) Status() valueobject.ApplicationStatus  { return a.status }
func (a CreditApplication) Decision() valueobject.CreditDecision   { return a.decision }
func (a CreditApplication) WithdrawnAmount() decimal.Decimal       { return a.withdrawnAmount }
func (a CreditApplication) Version() int                           { return a.version }
func (a CreditApplication) CreatedAt() time.Time                   { return a.createdAt }
func (a CreditApplication) UpdatedAt() time.Time                   { return a.updatedAt }
func (a CreditApplication) DomainEvents() []event.DomainEvent      { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a CreditApplication) ClearEvents() CreditApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
