package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// WithdrawCreditUseCase credits an approved amount to the applicant's account
// and writes the disbursement record. Concurrent withdraws on the same
// application are serialized by a per-application mutex on top of the
// optimistic lock in persistence, so the ledger is never hit twice.
type WithdrawCreditUseCase struct {
	appRepo    port.ApplicationRepository
	activeRepo port.ActiveCreditRepository
	ledger     port.LedgerClient
	publisher  port.EventPublisher
	logger     *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWithdrawCreditUseCase wires dependencies.
func NewWithdrawCreditUseCase(
	appRepo port.ApplicationRepository,
	activeRepo port.ActiveCreditRepository,
	ledger port.LedgerClient,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *WithdrawCreditUseCase {
	return &WithdrawCreditUseCase{
		appRepo:    appRepo,
		activeRepo: activeRepo,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Execute credits the decided amount and records the active credit.
func (uc *WithdrawCreditUseCase) Execute(
	ctx context.Context,
	req dto.WithdrawCreditRequest,
) (dto.WithdrawResponse, error) {
	if req.UserID == "" {
		return dto.WithdrawResponse{}, &valueobject.AuthRequiredError{}
	}

	lock := uc.lockFor(req.ApplicationID)
	lock.Lock()
	defer lock.Unlock()

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.WithdrawResponse{}, fmt.Errorf("load application: %w", err)
	}
	if app.UserID() != req.UserID {
		return dto.WithdrawResponse{}, &valueobject.AuthRequiredError{
			Reason: "application belongs to another user",
		}
	}

	// Refuse before touching the ledger: after this point any failure leaves
	// a moved balance behind.
	if app.Status().Equal(valueobject.ApplicationStatusWithdrawn) {
		return dto.WithdrawResponse{}, valueobject.ErrAlreadyWithdrawn
	}
	if !app.Status().Equal(valueobject.ApplicationStatusDecided) || !app.Decision().Approved() {
		return dto.WithdrawResponse{}, valueobject.ErrInvalidStatusTransition
	}

	amount := app.WithdrawalAmount()
	now := time.Now().UTC()

	newBalance, err := uc.ledger.IncreaseBalance(ctx, req.UserID, amount)
	if err != nil {
		return dto.WithdrawResponse{}, err
	}

	app, err = app.MarkWithdrawn(amount, newBalance, now)
	if err != nil {
		return dto.WithdrawResponse{}, fmt.Errorf("mark withdrawn: %w", err)
	}

	response := dto.WithdrawResponse{
		ApplicationID:  app.ID(),
		AmountCredited: amount,
		NewBalance:     newBalance,
		Status:         app.Status().String(),
	}

	// The balance is already credited. Failures from here on advance the
	// state as far as possible and surface as ReconciliationNeeded instead
	// of pretending the withdraw did not happen.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return response, uc.reconciliationNeeded(app, response, err)
	}

	record, err := model.NewActiveCredit(
		app.ID(), app.UserID(), amount, app.TermMonths(), app.MonthlyPayment(), now,
	)
	if err != nil {
		return response, uc.reconciliationNeeded(app, response, err)
	}
	if err := uc.activeRepo.Save(ctx, record); err != nil {
		return response, uc.reconciliationNeeded(app, response, err)
	}

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		uc.logger.Error("publish withdraw events failed",
			"application_id", app.ID(),
			"error", err,
		)
	}

	uc.logger.Info("credit withdrawn",
		"application_id", app.ID(),
		"user_id", app.UserID(),
		"amount", amount.String(),
		"new_balance", newBalance.String(),
	)
	return response, nil
}

func (uc *WithdrawCreditUseCase) lockFor(applicationID string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	lock, ok := uc.locks[applicationID]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[applicationID] = lock
	}
	return lock
}

func (uc *WithdrawCreditUseCase) reconciliationNeeded(
	app model.CreditApplication,
	response dto.WithdrawResponse,
	cause error,
) error {
	err := &valueobject.ReconciliationNeededError{
		ApplicationID: app.ID(),
		Amount:        response.AmountCredited,
		NewBalance:    response.NewBalance,
		Cause:         cause,
	}
	uc.logger.Error("withdraw needs reconciliation",
		"application_id", app.ID(),
		"amount", response.AmountCredited.String(),
		"new_balance", response.NewBalance.String(),
		"error", cause,
	)
	return err
}
