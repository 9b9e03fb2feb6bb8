package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Product limits for retail credit and time deposits.
const (
	CreditMinAmount = 1_000
	CreditMaxAmount = 1_000_000
	CreditMinTerm   = 3
	CreditMaxTerm   = 240

	DepositMinTermDays = 1
	DepositMaxTermDays = 3650
)

// Professions is the closed list offered on the registration form.
var Professions = []string{
	"Doktor", "Mühendis", "Öğretmen", "Avukat", "Hemşire", "Polis", "Asker",
	"Muhasebeci", "Pazarlama Uzmanı", "Satış Temsilcisi", "Tekniker",
	"Bankacı", "Emlakçı", "Berber/Kuaför", "Şoför", "Aşçı", "Garson",
	"İnşaat İşçisi", "Temizlik Görevlisi", "Güvenlik Görevlisi", "Öğrenci",
	"Emekli", "Ev Hanımı", "Serbest Meslek", "Diğer",
}

// Sectors accepted on the registration form.
var Sectors = []string{"ozel", "kamu"}

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-ZğüşöçıĞÜŞÖÇİ\s]+$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^(\+90|0)?5[0-9]{9}$`)
)

// ValidationResult carries all violations found in a single pass, in the
// field order they were checked. Sanitized holds the normalized inputs and
// is populated only when the input passed every check.
type ValidationResult struct {
	IsValid   bool
	Errors    []string
	Sanitized map[string]string
}

func newValidationResult(errors []string, sanitized map[string]string) ValidationResult {
	result := ValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
	if result.IsValid {
		result.Sanitized = sanitized
	}
	return result
}

// RegistrationForm is the raw registration input before sanitization.
type RegistrationForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Age             string
	Profession      string
	Sector          string
	Phone           string
}

// Validator checks user input against product rules. It is stateless and
// safe for concurrent use. All messages are user-facing Turkish text.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreditRequest checks a raw amount/term pair against the credit
// product limits. Violations for both fields are collected in field order.
func (v *Validator) ValidateCreditRequest(amount, term string) ValidationResult {
	var errs []string
	sanitized := make(map[string]string)

	parsedAmount, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	switch {
	case err != nil:
		errs = append(errs, "Kredi tutarı geçerli bir sayı olmalıdır")
	case parsedAmount < CreditMinAmount:
		errs = append(errs, "Minimum kredi tutarı 1.000 TL olmalıdır")
	case parsedAmount > CreditMaxAmount:
		errs = append(errs, "Maksimum kredi tutarı 1.000.000 TL olmalıdır")
	default:
		sanitized["amount"] = strconv.FormatFloat(parsedAmount, 'f', -1, 64)
	}

	parsedTerm, err := strconv.Atoi(strings.TrimSpace(term))
	switch {
	case err != nil:
		errs = append(errs, "Vade geçerli bir sayı olmalıdır")
	case parsedTerm < CreditMinTerm:
		errs = append(errs, "Minimum vade 3 ay olmalıdır")
	case parsedTerm > CreditMaxTerm:
		errs = append(errs, "Maksimum vade 240 ay olmalıdır")
	default:
		sanitized["term"] = strconv.Itoa(parsedTerm)
	}

	return newValidationResult(errs, sanitized)
}

// ValidateDepositTerm checks a raw deposit term expressed in days.
func (v *Validator) ValidateDepositTerm(days string) ValidationResult {
	var errs []string
	sanitized := make(map[string]string)

	parsed, err := strconv.Atoi(strings.TrimSpace(days))
	switch {
	case err != nil:
		errs = append(errs, "Vade günü geçerli bir sayı olmalıdır")
	case parsed < DepositMinTermDays || parsed > DepositMaxTermDays:
		errs = append(errs, fmt.Sprintf("Vade %d ile %d gün arasında olmalıdır", DepositMinTermDays, DepositMaxTermDays))
	default:
		sanitized["days"] = strconv.Itoa(parsed)
	}

	return newValidationResult(errs, sanitized)
}

// ValidateRegistration checks a registration form under the given password
// policy. The phone number is optional; every other field is required.
func (v *Validator) ValidateRegistration(form RegistrationForm, policy PasswordPolicy) ValidationResult {
	var errs []string
	sanitized := make(map[string]string)

	name := strings.TrimSpace(form.Name)
	nameLen := len([]rune(name))
	switch {
	case nameLen < 2:
		errs = append(errs, "Ad en az 2 karakter olmalıdır")
	case nameLen > 50:
		errs = append(errs, "Ad en fazla 50 karakter olmalıdır")
	case !nameRegex.MatchString(name):
		errs = append(errs, "Ad sadece harf ve boşluk içerebilir")
	default:
		sanitized["name"] = name
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))
	switch {
	case email == "":
		errs = append(errs, "E-posta adresi gereklidir")
	case !emailRegex.MatchString(email):
		errs = append(errs, "Geçerli bir e-posta adresi giriniz")
	default:
		sanitized["email"] = email
	}

	if form.Password != form.ConfirmPassword {
		errs = append(errs, "Şifreler eşleşmiyor!")
	}
	errs = append(errs, policy.Check(form.Password)...)

	age, err := strconv.Atoi(strings.TrimSpace(form.Age))
	switch {
	case err != nil:
		errs = append(errs, "Yaş geçerli bir sayı olmalıdır")
	case age < 18:
		errs = append(errs, "18 yaşından küçük olamazsınız!")
	default:
		sanitized["age"] = strconv.Itoa(age)
	}

	if containsString(Professions, form.Profession) {
		sanitized["profession"] = form.Profession
	} else {
		errs = append(errs, "Lütfen mesleğinizi seçiniz!")
	}

	if containsString(Sectors, form.Sector) {
		sanitized["sector"] = form.Sector
	} else {
		errs = append(errs, "Lütfen çalıştığınız sektörü seçiniz!")
	}

	if form.Phone != "" {
		phone := strings.ReplaceAll(form.Phone, " ", "")
		if phoneRegex.MatchString(phone) {
			sanitized["phone"] = phone
		} else {
			errs = append(errs, "Geçerli bir telefon numarası giriniz (05XX XXX XX XX)")
		}
	}

	return newValidationResult(errs, sanitized)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
