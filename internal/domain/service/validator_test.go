package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burakyci/finis-bank/internal/domain/service"
)

func validForm() service.RegistrationForm {
	return service.RegistrationForm{
		Name:            "Ali Yılmaz",
		Email:           "ali.yilmaz@gmail.com",
		Password:        "test123456",
		ConfirmPassword: "test123456",
		Age:             "32",
		Profession:      "Mühendis",
		Sector:          "ozel",
	}
}

func TestValidateCreditRequest_Valid(t *testing.T) {
	v := service.NewValidator()

	result := v.ValidateCreditRequest("100000", "36")

	require.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "100000", result.Sanitized["amount"])
	assert.Equal(t, "36", result.Sanitized["term"])
}

func TestValidateCreditRequest_CollectsAllErrorsInFieldOrder(t *testing.T) {
	v := service.NewValidator()

	result := v.ValidateCreditRequest("abc", "500")

	require.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Kredi tutarı geçerli bir sayı olmalıdır",
		"Maksimum vade 240 ay olmalıdır",
	}, result.Errors)
	assert.Nil(t, result.Sanitized)
}

func TestValidateCreditRequest_Bounds(t *testing.T) {
	v := service.NewValidator()

	cases := []struct {
		name    string
		amount  string
		term    string
		message string
	}{
		{name: "amount below minimum", amount: "999", term: "36", message: "Minimum kredi tutarı 1.000 TL olmalıdır"},
		{name: "amount above maximum", amount: "1000001", term: "36", message: "Maksimum kredi tutarı 1.000.000 TL olmalıdır"},
		{name: "term below minimum", amount: "100000", term: "2", message: "Minimum vade 3 ay olmalıdır"},
		{name: "term above maximum", amount: "100000", term: "241", message: "Maksimum vade 240 ay olmalıdır"},
		{name: "term not numeric", amount: "100000", term: "on iki", message: "Vade geçerli bir sayı olmalıdır"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := v.ValidateCreditRequest(tc.amount, tc.term)
			require.False(t, result.IsValid)
			assert.Equal(t, []string{tc.message}, result.Errors)
		})
	}
}

func TestValidateCreditRequest_BoundaryValuesAccepted(t *testing.T) {
	v := service.NewValidator()

	assert.True(t, v.ValidateCreditRequest("1000", "3").IsValid)
	assert.True(t, v.ValidateCreditRequest("1000000", "240").IsValid)
}

func TestValidateDepositTerm(t *testing.T) {
	v := service.NewValidator()

	result := v.ValidateDepositTerm("90")
	require.True(t, result.IsValid)
	assert.Equal(t, "90", result.Sanitized["days"])

	assert.True(t, v.ValidateDepositTerm("1").IsValid)
	assert.True(t, v.ValidateDepositTerm("3650").IsValid)

	result = v.ValidateDepositTerm("0")
	require.False(t, result.IsValid)
	assert.Equal(t, []string{"Vade 1 ile 3650 gün arasında olmalıdır"}, result.Errors)

	result = v.ValidateDepositTerm("3651")
	assert.False(t, result.IsValid)

	result = v.ValidateDepositTerm("doksan")
	require.False(t, result.IsValid)
	assert.Equal(t, []string{"Vade günü geçerli bir sayı olmalıdır"}, result.Errors)
}

func TestValidateRegistration_Valid(t *testing.T) {
	v := service.NewValidator()

	result := v.ValidateRegistration(validForm(), service.PasswordPolicyBaseline)

	require.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Equal(t, "Ali Yılmaz", result.Sanitized["name"])
	assert.Equal(t, "ali.yilmaz@gmail.com", result.Sanitized["email"])
	assert.Equal(t, "32", result.Sanitized["age"])
	assert.Equal(t, "Mühendis", result.Sanitized["profession"])
	assert.Equal(t, "ozel", result.Sanitized["sector"])
}

func TestValidateRegistration_NormalizesEmailAndPhone(t *testing.T) {
	v := service.NewValidator()

	form := validForm()
	form.Email = "  Ali.Yilmaz@Gmail.COM "
	form.Phone = "0532 123 45 67"

	result := v.ValidateRegistration(form, service.PasswordPolicyBaseline)

	require.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Equal(t, "ali.yilmaz@gmail.com", result.Sanitized["email"])
	assert.Equal(t, "05321234567", result.Sanitized["phone"])
}

func TestValidateRegistration_CollectsAllErrors(t *testing.T) {
	v := service.NewValidator()

	form := service.RegistrationForm{
		Name:            "A",
		Email:           "not-an-email",
		Password:        "abc",
		ConfirmPassword: "def",
		Age:             "17",
		Profession:      "Astronot",
		Sector:          "karma",
	}

	result := v.ValidateRegistration(form, service.PasswordPolicyBaseline)

	require.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Ad en az 2 karakter olmalıdır",
		"Geçerli bir e-posta adresi giriniz",
		"Şifreler eşleşmiyor!",
		"Şifre en az 6 karakter olmalıdır!",
		"18 yaşından küçük olamazsınız!",
		"Lütfen mesleğinizi seçiniz!",
		"Lütfen çalıştığınız sektörü seçiniz!",
	}, result.Errors)
	assert.Nil(t, result.Sanitized)
}

func TestValidateRegistration_NameRules(t *testing.T) {
	v := service.NewValidator()

	form := validForm()
	form.Name = "Ali123"
	result := v.ValidateRegistration(form, service.PasswordPolicyBaseline)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Ad sadece harf ve boşluk içerebilir")

	form.Name = "Gökçe Çağrı Şık"
	result = v.ValidateRegistration(form, service.PasswordPolicyBaseline)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

func TestValidateRegistration_InvalidPhone(t *testing.T) {
	v := service.NewValidator()

	form := validForm()
	form.Phone = "02121234567"

	result := v.ValidateRegistration(form, service.PasswordPolicyBaseline)

	require.False(t, result.IsValid)
	assert.Equal(t, []string{"Geçerli bir telefon numarası giriniz (05XX XXX XX XX)"}, result.Errors)
}

func TestPasswordPolicyBaseline(t *testing.T) {
	assert.Nil(t, service.PasswordPolicyBaseline.Check("abc123"))
	assert.Equal(t, []string{"Şifre en az 6 karakter olmalıdır!"}, service.PasswordPolicyBaseline.Check("abc12"))
	assert.Equal(t, []string{"Şifre gereklidir"}, service.PasswordPolicyBaseline.Check(""))

	// baseline does not care about character classes
	assert.Nil(t, service.PasswordPolicyBaseline.Check("aaaaaa"))
}

func TestPasswordPolicyStrict(t *testing.T) {
	assert.Nil(t, service.PasswordPolicyStrict.Check("Guçlu#Sifre1"))

	errs := service.PasswordPolicyStrict.Check("abc")
	assert.Contains(t, errs, "Şifre en az 8 karakter olmalıdır")
	assert.Contains(t, errs, "Şifre en az bir büyük harf içermelidir")
	assert.Contains(t, errs, "Şifre en az bir rakam içermelidir")
	assert.Contains(t, errs, "Şifre en az bir özel karakter içermelidir")

	errs = service.PasswordPolicyStrict.Check("GUCLU#SIFRE1")
	assert.Equal(t, []string{"Şifre en az bir küçük harf içermelidir"}, errs)
}

func TestPasswordPolicyStrict_RejectsCommonPasswords(t *testing.T) {
	for _, common := range []string{"password123", "Password123", "qwerty123"} {
		errs := service.PasswordPolicyStrict.Check(common)
		assert.Contains(t, errs, "Bu şifre çok yaygın kullanılmaktadır, daha güvenli bir şifre seçiniz", "password %q", common)
	}
}
