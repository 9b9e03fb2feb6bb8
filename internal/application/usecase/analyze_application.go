package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// AnalyzeApplicationUseCase runs one scoring round for a submitted
// application. The ANALYZING state is only ever persisted together with a
// decision: when the scorer is unreachable the stored application stays
// SUBMITTED, so the caller can simply try again.
type AnalyzeApplicationUseCase struct {
	appRepo     port.ApplicationRepository
	profileRepo port.ProfileRepository
	scoring     port.ScoringClient
	publisher   port.EventPublisher
	logger      *slog.Logger
}

// NewAnalyzeApplicationUseCase wires dependencies.
func NewAnalyzeApplicationUseCase(
	appRepo port.ApplicationRepository,
	profileRepo port.ProfileRepository,
	scoring port.ScoringClient,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *AnalyzeApplicationUseCase {
	return &AnalyzeApplicationUseCase{
		appRepo:     appRepo,
		profileRepo: profileRepo,
		scoring:     scoring,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute scores the application and records the decision.
func (uc *AnalyzeApplicationUseCase) Execute(
	ctx context.Context,
	req dto.AnalyzeApplicationRequest,
) (dto.ApplicationResponse, error) {
	if req.UserID == "" {
		return dto.ApplicationResponse{}, &valueobject.AuthRequiredError{}
	}

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load application: %w", err)
	}
	if app.UserID() != req.UserID {
		return dto.ApplicationResponse{}, &valueobject.AuthRequiredError{
			Reason: "application belongs to another user",
		}
	}

	now := time.Now().UTC()

	// Transition in memory first; only a decided application is written back.
	app, err = app.BeginAnalysis(now)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	// Audit snapshot of the applicant profile. Best effort: a profile store
	// hiccup must never block scoring.
	profile, profileErr := uc.profileRepo.FindByID(ctx, req.UserID)
	if profileErr != nil {
		uc.logger.Warn("profile snapshot unavailable",
			"user_id", req.UserID,
			"error", profileErr,
		)
	} else if err := uc.profileRepo.Save(ctx, profile); err != nil {
		uc.logger.Warn("profile snapshot write failed",
			"user_id", req.UserID,
			"error", err,
		)
	}

	decision, err := uc.scoring.EvaluateCredit(ctx, buildScoringRequest(app, profile, profileErr == nil))
	if err != nil {
		uc.logger.Error("scoring call failed",
			"application_id", app.ID(),
			"error", err,
		)
		return dto.ApplicationResponse{}, err
	}

	app, err = app.RecordDecision(decision, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("record decision: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.Info("credit decision recorded",
		"application_id", app.ID(),
		"approved", decision.Approved(),
		"credit_score", decision.CreditScore().String(),
	)
	return toApplicationResponse(app), nil
}

// defaultMonthlyIncome is assumed when no profile is on file for the applicant.
const defaultMonthlyIncome = 25_000

func buildScoringRequest(app model.CreditApplication, profile model.CustomerProfile, hasProfile bool) port.ScoringRequest {
	req := port.ScoringRequest{
		LoanAmount:     app.RequestedAmount(),
		LoanTermMonths: app.TermMonths(),
	}
	if !hasProfile {
		req.MonthlyIncome = decimal.NewFromInt(defaultMonthlyIncome)
		return req
	}

	req.MonthlyIncome = profile.Salary()
	req.AdditionalIncome = profile.AdditionalIncome()
	req.Age = profile.Age()
	req.WorkExperience = profile.ExperienceYears()
	req.EmploymentType = profile.Sector()
	req.BankBalance = profile.Balance()
	req.ExistingRelationship = true
	req.TotalBankingProducts = 1
	return req
}
