package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/service"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// SubmitApplicationUseCase validates a credit request, computes the payment
// schedule and persists the application in SUBMITTED state. A request that
// fails validation leaves no trace: the aggregate never gets past DRAFT.
type SubmitApplicationUseCase struct {
	validator  *service.Validator
	calculator *service.Calculator
	appRepo    port.ApplicationRepository
	publisher  port.EventPublisher
	logger     *slog.Logger
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	validator *service.Validator,
	calculator *service.Calculator,
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		validator:  validator,
		calculator: calculator,
		appRepo:    appRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute validates, quotes, and persists a new credit application.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	if req.UserID == "" {
		return dto.ApplicationResponse{}, &valueobject.AuthRequiredError{}
	}

	// 1. Validate the raw form input.
	result := uc.validator.ValidateCreditRequest(req.Amount, req.Term)
	if !result.IsValid {
		return dto.ApplicationResponse{}, valueobject.NewValidationError(result.Errors)
	}

	amount, err := decimal.NewFromString(result.Sanitized["amount"])
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("parse sanitized amount: %w", err)
	}
	term, err := strconv.Atoi(result.Sanitized["term"])
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("parse sanitized term: %w", err)
	}

	// 2. Compute the payment schedule.
	quote := uc.calculator.ComputeLoan(
		amount, term,
		service.BaseMonthlyRatePct, service.KKDFRatePct, service.BSMVRatePct,
	)

	now := time.Now().UTC()

	// 3. Create the draft aggregate and submit it.
	app, err := model.NewCreditApplication(
		req.UserID, amount, term, quote.MonthlyPayment, quote.TotalPayment, now,
	)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}
	app, err = app.Submit(now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("submit application: %w", err)
	}

	// 4. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.Info("credit application submitted",
		"application_id", app.ID(),
		"user_id", app.UserID(),
		"amount", amount.String(),
		"term_months", term,
	)
	return toApplicationResponse(app), nil
}

func toApplicationResponse(app model.CreditApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:             app.ID(),
		UserID:         app.UserID(),
		Amount:         app.RequestedAmount(),
		TermMonths:     app.TermMonths(),
		MonthlyPayment: app.MonthlyPayment(),
		TotalPayment:   app.TotalPayment(),
		Status:         app.Status().String(),
		CreatedAt:      app.CreatedAt(),
		UpdatedAt:      app.UpdatedAt(),
	}
	if decision := app.Decision(); !decision.IsZero() {
		resp.Decision = &dto.DecisionResponse{
			Approved:          decision.Approved(),
			CreditScore:       decision.CreditScore(),
			Reason:            decision.Reason(),
			RecommendedAmount: decision.RecommendedAmount(),
			Conditions:        decision.Conditions(),
		}
	}
	return resp
}
