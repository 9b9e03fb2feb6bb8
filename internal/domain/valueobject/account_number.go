package valueobject

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const accountNumberPattern = `^\d{4}-\d{6}$`

var accountNumberRegex = regexp.MustCompile(accountNumberPattern)

// AccountNumber is an immutable value object identifying a deposit account.
// Format: XXXX-XXXXXX where the first group is in 1000-9999 and the second
// in 100000-999999.
type AccountNumber struct {
	value string
}

// NewAccountNumber generates a new random AccountNumber.
func NewAccountNumber() AccountNumber {
	first := randomInRange(1000, 9999)
	second := randomInRange(100000, 999999)
	return AccountNumber{value: fmt.Sprintf("%d-%d", first, second)}
}

// AccountNumberFromString validates and creates an AccountNumber from a string.
func AccountNumberFromString(s string) (AccountNumber, error) {
	s = strings.TrimSpace(s)
	if !accountNumberRegex.MatchString(s) {
		return AccountNumber{}, fmt.Errorf("invalid account number format %q: expected XXXX-XXXXXX", s)
	}
	return AccountNumber{value: s}, nil
}

func (a AccountNumber) String() string {
	return a.value
}

func (a AccountNumber) IsZero() bool {
	return a.value == ""
}

func (a AccountNumber) Equal(other AccountNumber) bool {
	return a.value == other.value
}

func randomInRange(min, max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		panic(fmt.Sprintf("failed to generate random number: %v", err))
	}
	return min + n.Int64()
}
