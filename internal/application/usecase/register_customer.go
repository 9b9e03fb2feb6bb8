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

// RegisterCustomerUseCase validates a registration form, opens the demand
// deposit account and stores the profile. The registration entry point uses
// the baseline password policy; the strict policy is injected where credential
// changes on existing accounts are handled.
type RegisterCustomerUseCase struct {
	validator      *service.Validator
	passwordPolicy service.PasswordPolicy
	profileRepo    port.ProfileRepository
	publisher      port.EventPublisher
	logger         *slog.Logger
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(
	validator *service.Validator,
	passwordPolicy service.PasswordPolicy,
	profileRepo port.ProfileRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		validator:      validator,
		passwordPolicy: passwordPolicy,
		profileRepo:    profileRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// Execute validates the form and persists the new customer profile.
func (uc *RegisterCustomerUseCase) Execute(
	ctx context.Context,
	req dto.RegisterCustomerRequest,
) (dto.CustomerResponse, error) {
	form := service.RegistrationForm{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Age:             req.Age,
		Profession:      req.Profession,
		Sector:          req.Sector,
		Phone:           req.Phone,
	}
	result := uc.validator.ValidateRegistration(form, uc.passwordPolicy)
	if !result.IsValid {
		return dto.CustomerResponse{}, valueobject.NewValidationError(result.Errors)
	}

	if _, err := uc.profileRepo.FindByEmail(ctx, result.Sanitized["email"]); err == nil {
		return dto.CustomerResponse{}, valueobject.NewValidationError(
			[]string{"Bu e-posta adresi zaten kayıtlı"},
		)
	}

	now := time.Now().UTC()
	age, _ := strconv.Atoi(result.Sanitized["age"])

	profile, err := model.NewCustomerProfile(
		result.Sanitized["name"],
		result.Sanitized["email"],
		result.Sanitized["phone"],
		age,
		result.Sanitized["profession"],
		parseIntOrZero(req.Experience),
		result.Sanitized["sector"],
		parseDecimalOrZero(req.Salary),
		parseDecimalOrZero(req.AdditionalIncome),
		now,
	)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("create profile: %w", err)
	}

	if err := uc.profileRepo.Save(ctx, profile); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("save profile: %w", err)
	}
	if err := uc.publisher.Publish(ctx, profile.DomainEvents()...); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.Info("customer registered",
		"customer_id", profile.ID(),
		"account_number", profile.AccountNumber().String(),
	)
	return dto.CustomerResponse{
		ID:            profile.ID(),
		Name:          profile.Name(),
		Email:         profile.Email(),
		AccountNumber: profile.AccountNumber().String(),
		AccountType:   profile.AccountType(),
		AccountStatus: profile.AccountStatus(),
		Currency:      profile.Currency(),
		Balance:       profile.Balance(),
		CreatedAt:     profile.CreatedAt(),
	}, nil
}

func parseIntOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseDecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
