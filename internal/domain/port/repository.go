package port

import (
	"context"

	"github.com/Burakyci/finis-bank/internal/domain/event"
	"github.com/Burakyci/finis-bank/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves credit applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.CreditApplication) error
	FindByID(ctx context.Context, id string) (model.CreditApplication, error)
	FindByUserID(ctx context.Context, userID string) ([]model.CreditApplication, error)
}

// ActiveCreditRepository persists and retrieves disbursement records.
// Records are append-only: Save inserts, never updates.
type ActiveCreditRepository interface {
	Save(ctx context.Context, credit model.ActiveCredit) error
	FindByApplicationID(ctx context.Context, applicationID string) (model.ActiveCredit, error)
	FindByUserID(ctx context.Context, userID string) ([]model.ActiveCredit, error)
}

// ProfileRepository persists and retrieves customer profiles.
type ProfileRepository interface {
	Save(ctx context.Context, profile model.CustomerProfile) error
	FindByID(ctx context.Context, id string) (model.CustomerProfile, error)
	FindByEmail(ctx context.Context, email string) (model.CustomerProfile, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
