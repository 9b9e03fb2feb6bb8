package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/domain/service"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// QuoteDepositUseCase runs the time deposit calculator. Unlike the loan
// calculator it rejects bad input with a ValidationError.
type QuoteDepositUseCase struct {
	validator  *service.Validator
	calculator *service.Calculator
}

// NewQuoteDepositUseCase wires dependencies.
func NewQuoteDepositUseCase(validator *service.Validator, calculator *service.Calculator) *QuoteDepositUseCase {
	return &QuoteDepositUseCase{validator: validator, calculator: calculator}
}

// Execute computes a deposit quote from raw form input.
func (uc *QuoteDepositUseCase) Execute(_ context.Context, req dto.DepositQuoteRequest) (dto.DepositQuoteResponse, error) {
	if result := uc.validator.ValidateDepositTerm(req.Days); !result.IsValid {
		return dto.DepositQuoteResponse{}, valueobject.NewValidationError(result.Errors)
	}
	days, _ := strconv.Atoi(strings.TrimSpace(req.Days))

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return dto.DepositQuoteResponse{}, valueobject.NewValidationError(
			[]string{"Mevduat tutarı pozitif bir sayı olmalıdır"},
		)
	}

	rate := service.DepositAnnualRateDefault
	if raw := strings.TrimSpace(req.AnnualRatePct); raw != "" {
		rate, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto.DepositQuoteResponse{}, valueobject.NewValidationError(
				[]string{"Faiz oranı geçerli bir sayı olmalıdır"},
			)
		}
	}

	quote, err := uc.calculator.ComputeDeposit(amount, days, rate, service.DepositWithholdingPct)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDepositInput) {
			return dto.DepositQuoteResponse{}, valueobject.NewValidationError(
				[]string{"Mevduat hesaplama girdileri geçersiz"},
			)
		}
		return dto.DepositQuoteResponse{}, err
	}

	return dto.DepositQuoteResponse{
		Principal:              quote.Principal,
		TermDays:               quote.TermDays,
		AnnualRatePct:          quote.AnnualRatePct,
		GrossInterest:          quote.GrossInterest,
		WithholdingTax:         quote.WithholdingTax,
		NetInterest:            quote.NetInterest,
		TotalAmount:            quote.TotalAmount,
		EffectiveAnnualRatePct: quote.EffectiveAnnualRatePct,
	}, nil
}
