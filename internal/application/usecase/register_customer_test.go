package usecase_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/application/usecase"
	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/service"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

func validRegisterRequest() dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		Name:             "Ayşe Kaya",
		Email:            "ayse.kaya@hotmail.com",
		Password:         "test123456",
		ConfirmPassword:  "test123456",
		Age:              "28",
		Profession:       "Doktor",
		Experience:       "5",
		Sector:           "kamu",
		Salary:           "62000",
		AdditionalIncome: "8000",
	}
}

func newRegisterUseCase(profiles *mockProfileRepository, pub *mockEventPublisher) *usecase.RegisterCustomerUseCase {
	return usecase.NewRegisterCustomerUseCase(
		service.NewValidator(),
		service.PasswordPolicyBaseline,
		profiles, pub, testLogger(),
	)
}

func TestRegisterCustomer_Success(t *testing.T) {
	profiles := &mockProfileRepository{}
	pub := &mockEventPublisher{}
	uc := newRegisterUseCase(profiles, pub)

	resp, err := uc.Execute(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Ayşe Kaya", resp.Name)
	assert.Equal(t, "ayse.kaya@hotmail.com", resp.Email)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{6}$`), resp.AccountNumber)
	assert.Equal(t, "Vadesiz Hesap", resp.AccountType)
	assert.Equal(t, "Aktif", resp.AccountStatus)
	assert.Equal(t, "TL", resp.Currency)
	assert.True(t, resp.Balance.IsZero())

	require.Len(t, profiles.savedProfiles, 1)
	saved := profiles.savedProfiles[0]
	assert.Equal(t, 28, saved.Age())
	assert.Equal(t, 5, saved.ExperienceYears())
	assert.Equal(t, "62000", saved.Salary().String())

	require.Len(t, pub.publishedEvents, 1)
	assert.Equal(t, "customer.registered", pub.publishedEvents[0].EventType())
}

func TestRegisterCustomer_ValidationFailure(t *testing.T) {
	profiles := &mockProfileRepository{}
	uc := newRegisterUseCase(profiles, &mockEventPublisher{})

	req := validRegisterRequest()
	req.Password = "abc"
	req.ConfirmPassword = "abc"
	req.Age = "16"

	_, err := uc.Execute(context.Background(), req)

	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{
		"Şifre en az 6 karakter olmalıdır!",
		"18 yaşından küçük olamazsınız!",
	}, validationErr.Messages)
	assert.Empty(t, profiles.savedProfiles)
}

func TestRegisterCustomer_DuplicateEmail(t *testing.T) {
	existing, err := model.NewCustomerProfile(
		"Ayşe Kaya", "ayse.kaya@hotmail.com", "", 28, "Doktor", 5, "kamu",
		decimal.NewFromInt(62_000), decimal.NewFromInt(8_000),
		time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	profiles := &mockProfileRepository{
		findByEmailFunc: func(_ context.Context, _ string) (model.CustomerProfile, error) {
			return existing, nil
		},
	}
	uc := newRegisterUseCase(profiles, &mockEventPublisher{})

	_, err = uc.Execute(context.Background(), validRegisterRequest())

	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"Bu e-posta adresi zaten kayıtlı"}, validationErr.Messages)
	assert.Empty(t, profiles.savedProfiles)
}

func TestRegisterCustomer_UnparseableFinancialsFallBackToZero(t *testing.T) {
	profiles := &mockProfileRepository{}
	uc := newRegisterUseCase(profiles, &mockEventPublisher{})

	req := validRegisterRequest()
	req.Experience = "bilinmiyor"
	req.Salary = ""
	req.AdditionalIncome = "n/a"

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, profiles.savedProfiles, 1)
	saved := profiles.savedProfiles[0]
	assert.Equal(t, 0, saved.ExperienceYears())
	assert.True(t, saved.Salary().IsZero())
	assert.True(t, saved.AdditionalIncome().IsZero())
}
