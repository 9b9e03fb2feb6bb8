package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/event"
	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.CreditApplication) error
	findByIDFunc func(ctx context.Context, id string) (model.CreditApplication, error)
	savedApps    []model.CreditApplication
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.CreditApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id string) (model.CreditApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.CreditApplication{}, fmt.Errorf("application not found")
}

func (m *mockApplicationRepository) FindByUserID(_ context.Context, _ string) ([]model.CreditApplication, error) {
	return nil, nil
}

type mockActiveCreditRepository struct {
	saveFunc     func(ctx context.Context, credit model.ActiveCredit) error
	savedCredits []model.ActiveCredit
}

func (m *mockActiveCreditRepository) Save(ctx context.Context, credit model.ActiveCredit) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, credit)
	}
	m.savedCredits = append(m.savedCredits, credit)
	return nil
}

func (m *mockActiveCreditRepository) FindByApplicationID(_ context.Context, _ string) (model.ActiveCredit, error) {
	return model.ActiveCredit{}, fmt.Errorf("active credit not found")
}

func (m *mockActiveCreditRepository) FindByUserID(_ context.Context, _ string) ([]model.ActiveCredit, error) {
	return nil, nil
}

type mockProfileRepository struct {
	saveFunc        func(ctx context.Context, profile model.CustomerProfile) error
	findByIDFunc    func(ctx context.Context, id string) (model.CustomerProfile, error)
	findByEmailFunc func(ctx context.Context, email string) (model.CustomerProfile, error)
	savedProfiles   []model.CustomerProfile
}

func (m *mockProfileRepository) Save(ctx context.Context, profile model.CustomerProfile) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, profile)
	}
	m.savedProfiles = append(m.savedProfiles, profile)
	return nil
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id string) (model.CustomerProfile, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.CustomerProfile{}, fmt.Errorf("profile not found")
}

func (m *mockProfileRepository) FindByEmail(ctx context.Context, email string) (model.CustomerProfile, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return model.CustomerProfile{}, fmt.Errorf("profile not found")
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockScoringClient struct {
	evaluateFunc func(ctx context.Context, req port.ScoringRequest) (valueobject.CreditDecision, error)
	requests     []port.ScoringRequest
}

func (m *mockScoringClient) EvaluateCredit(ctx context.Context, req port.ScoringRequest) (valueobject.CreditDecision, error) {
	m.requests = append(m.requests, req)
	if m.evaluateFunc != nil {
		return m.evaluateFunc(ctx, req)
	}
	return valueobject.NewCreditDecision(
		valueobject.ApprovalVerdict,
		decimal.NewFromInt(72),
		"Düşük risk profili",
		decimal.Zero,
		nil,
	), nil
}

type mockLedgerClient struct {
	increaseFunc func(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	calls        int
}

func (m *mockLedgerClient) IncreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	m.calls++
	if m.increaseFunc != nil {
		return m.increaseFunc(ctx, userID, amount)
	}
	return amount, nil
}

// --- Shared fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func submittedApplication(userID string) model.CreditApplication {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	app, err := model.NewCreditApplication(
		userID,
		decimal.NewFromInt(100_000), 36,
		decimal.RequireFromString("6291.57"), decimal.RequireFromString("226496.52"),
		now,
	)
	if err != nil {
		panic(err)
	}
	app, err = app.Submit(now)
	if err != nil {
		panic(err)
	}
	return app.ClearEvents()
}

func decidedApplication(userID string, approved bool, recommended int64) model.CreditApplication {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	app := submittedApplication(userID)
	app, err := app.BeginAnalysis(now)
	if err != nil {
		panic(err)
	}
	verdict := "REDDEDILDI"
	if approved {
		verdict = valueobject.ApprovalVerdict
	}
	decision := valueobject.NewCreditDecision(
		verdict,
		decimal.NewFromInt(65),
		"",
		decimal.NewFromInt(recommended),
		nil,
	)
	app, err = app.RecordDecision(decision, now)
	if err != nil {
		panic(err)
	}
	return app.ClearEvents()
}
