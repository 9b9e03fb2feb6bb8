package service

import (
	"strings"
	"unicode"
)

const passwordSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// commonPasswords are rejected by the strict policy regardless of composition.
var commonPasswords = []string{
	"12345678",
	"password",
	"qwerty123",
	"admin123",
	"password123",
	"123456789",
	"welcome123",
}

// PasswordPolicy names a password acceptance rule. The two policies are
// distinct products: the baseline one guards the plain registration form,
// the strict one guards credential changes on existing accounts.
type PasswordPolicy struct {
	name  string
	check func(password string) []string
}

func (p PasswordPolicy) Name() string {
	return p.name
}

// Check returns the user-facing violations for the given password,
// empty when the password is acceptable.
func (p PasswordPolicy) Check(password string) []string {
	return p.check(password)
}

// PasswordPolicyBaseline requires only a minimum length of 6 characters.
var PasswordPolicyBaseline = PasswordPolicy{
	name: "baseline",
	check: func(password string) []string {
		if password == "" {
			return []string{"Şifre gereklidir"}
		}
		if len([]rune(password)) < 6 {
			return []string{"Şifre en az 6 karakter olmalıdır!"}
		}
		return nil
	},
}

// PasswordPolicyStrict requires 8+ characters with mixed character classes
// and rejects passwords from the common-password list.
var PasswordPolicyStrict = PasswordPolicy{
	name: "strict",
	check: func(password string) []string {
		if password == "" {
			return []string{"Şifre gereklidir"}
		}

		var errs []string
		if len([]rune(password)) < 8 {
			errs = append(errs, "Şifre en az 8 karakter olmalıdır")
		}
		var hasLower, hasUpper, hasDigit bool
		for _, r := range password {
			switch {
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if !hasLower {
			errs = append(errs, "Şifre en az bir küçük harf içermelidir")
		}
		if !hasUpper {
			errs = append(errs, "Şifre en az bir büyük harf içermelidir")
		}
		if !hasDigit {
			errs = append(errs, "Şifre en az bir rakam içermelidir")
		}
		if !strings.ContainsAny(password, passwordSpecialChars) {
			errs = append(errs, "Şifre en az bir özel karakter içermelidir")
		}

		lowered := strings.ToLower(password)
		for _, common := range commonPasswords {
			if lowered == common {
				errs = append(errs, "Bu şifre çok yaygın kullanılmaktadır, daha güvenli bir şifre seçiniz")
				break
			}
		}
		return errs
	},
}
