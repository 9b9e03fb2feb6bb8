package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

var (
	// ErrInvalidStatusTransition is returned by aggregate transitions that
	// would skip a state or move backward.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrAlreadyWithdrawn guards withdraw idempotency: a second withdraw on
	// the same application is an error, never a double credit.
	ErrAlreadyWithdrawn = errors.New("credit already withdrawn")
)

// ValidationError carries the full, ordered list of user-correctable input
// violations collected in one validation pass.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from the collected messages.
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// TransportError marks a failed call to an external collaborator (scorer or
// store unreachable, non-2xx response). It is retryable: no state was changed.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: service unavailable: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// AuthRequiredError signals that no authenticated identity is bound to the
// call, or the bound identity does not own the resource.
type AuthRequiredError struct {
	Reason string
}

func (e *AuthRequiredError) Error() string {
	if e.Reason == "" {
		return "authentication required"
	}
	return "authentication required: " + e.Reason
}

// ReconciliationNeededError reports that the ledger balance was credited but
// the audit record write failed. The balance mutation is authoritative, so the
// operation counts as a success on the balance side; the condition must still
// be surfaced loudly to an operator, never only logged.
type ReconciliationNeededError struct {
	ApplicationID string
	Amount        decimal.Decimal
	NewBalance    decimal.Decimal
	Cause         error
}

func (e *ReconciliationNeededError) Error() string {
	return fmt.Sprintf(
		"ledger credited %s for application %s but the active-credit record write failed: %v",
		e.Amount, e.ApplicationID, e.Cause,
	)
}

func (e *ReconciliationNeededError) Unwrap() error { return e.Cause }
