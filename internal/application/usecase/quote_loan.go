package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/service"
)

// QuoteLoanUseCase runs the consumer loan calculator. It never fails: bad
// input yields a zeroed quote with Valid=false, matching the live calculator
// on the product page.
type QuoteLoanUseCase struct {
	calculator *service.Calculator
}

// NewQuoteLoanUseCase wires dependencies.
func NewQuoteLoanUseCase(calculator *service.Calculator) *QuoteLoanUseCase {
	return &QuoteLoanUseCase{calculator: calculator}
}

// Execute computes a loan quote from raw form input.
func (uc *QuoteLoanUseCase) Execute(_ context.Context, req dto.LoanQuoteRequest) dto.LoanQuoteResponse {
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		amount = decimal.Zero
	}
	term, err := strconv.Atoi(strings.TrimSpace(req.Term))
	if err != nil {
		term = 0
	}

	quote := uc.calculator.ComputeLoan(
		amount, term,
		service.BaseMonthlyRatePct, service.KKDFRatePct, service.BSMVRatePct,
	)
	return toLoanQuoteResponse(quote)
}

func toLoanQuoteResponse(quote model.LoanQuote) dto.LoanQuoteResponse {
	return dto.LoanQuoteResponse{
		Principal:               quote.Principal,
		TermMonths:              quote.TermMonths,
		EffectiveMonthlyRatePct: quote.EffectiveMonthlyRatePct,
		MonthlyPayment:          quote.MonthlyPayment,
		TotalPayment:            quote.TotalPayment,
		TotalInterest:           quote.TotalInterest,
		KKDFAmount:              quote.KKDFAmount,
		BSMVAmount:              quote.BSMVAmount,
		Valid:                   quote.Valid,
	}
}
