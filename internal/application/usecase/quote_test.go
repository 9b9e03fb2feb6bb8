package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/application/usecase"
	"github.com/Burakyci/finis-bank/internal/domain/service"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

func TestQuoteLoan(t *testing.T) {
	uc := usecase.NewQuoteLoanUseCase(service.NewCalculator())

	resp := uc.Execute(context.Background(), dto.LoanQuoteRequest{Amount: "100000", Term: "36"})
	require.True(t, resp.Valid)
	assert.Equal(t, "6291.57", resp.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "226496.52", resp.TotalPayment.StringFixed(2))

	// Garbage input degrades to the zero quote instead of failing.
	resp = uc.Execute(context.Background(), dto.LoanQuoteRequest{Amount: "abc", Term: "-3"})
	assert.False(t, resp.Valid)
	assert.True(t, resp.MonthlyPayment.IsZero())
}

func TestQuoteDeposit(t *testing.T) {
	uc := usecase.NewQuoteDepositUseCase(service.NewValidator(), service.NewCalculator())

	resp, err := uc.Execute(context.Background(), dto.DepositQuoteRequest{Amount: "100000", Days: "90"})
	require.NoError(t, err)
	assert.Equal(t, "11095.89", resp.GrossInterest.StringFixed(2))
	assert.Equal(t, "1941.78", resp.WithholdingTax.StringFixed(2))
	assert.Equal(t, "9154.11", resp.NetInterest.StringFixed(2))
	assert.Equal(t, "109154.11", resp.TotalAmount.StringFixed(2))
	assert.Equal(t, "42.6506", resp.EffectiveAnnualRatePct.String())
}

func TestQuoteDeposit_InvalidInputErrors(t *testing.T) {
	uc := usecase.NewQuoteDepositUseCase(service.NewValidator(), service.NewCalculator())

	var validationErr *valueobject.ValidationError

	_, err := uc.Execute(context.Background(), dto.DepositQuoteRequest{Amount: "-5", Days: "90"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = uc.Execute(context.Background(), dto.DepositQuoteRequest{Amount: "100000", Days: "0"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = uc.Execute(context.Background(), dto.DepositQuoteRequest{Amount: "100000", Days: "90", AnnualRatePct: "oran"})
	assert.ErrorAs(t, err, &validationErr)
}
