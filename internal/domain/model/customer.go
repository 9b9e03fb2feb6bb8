package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/event"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// Demand deposit account defaults assigned at registration.
const (
	AccountCurrency      = "TL"
	AccountTypeDemand    = "Vadesiz Hesap"
	AccountStatusActive  = "Aktif"
	AccountStatusBlocked = "Bloke"
)

// CustomerProfile holds the applicant data captured at registration together
// with the demand deposit account opened for the customer. The financial
// figures feed the scoring payload; the balance itself is owned by the ledger
// and only mirrored here.
type CustomerProfile struct {
	id               string
	name             string
	email            string
	phone            string
	age              int
	profession       string
	experienceYears  int
	sector           string
	salary           decimal.Decimal
	additionalIncome decimal.Decimal
	accountNumber    valueobject.AccountNumber
	accountType      string
	accountStatus    string
	currency         string
	balance          decimal.Decimal
	version          int
	createdAt        time.Time
	updatedAt        time.Time
	domainEvents     []event.DomainEvent
}

// NewCustomerProfile creates a profile with a freshly generated account number
// and a zero balance, and emits CustomerRegistered.
func NewCustomerProfile(
	name, email, phone string,
	age int,
	profession string,
	experienceYears int,
	sector string,
	salary, additionalIncome decimal.Decimal,
	now time.Time,
) (CustomerProfile, error) {
	if name == "" {
		return CustomerProfile{}, errors.New("name is required")
	}
	if email == "" {
		return CustomerProfile{}, errors.New("email is required")
	}

	id := uuid.New().String()
	number := valueobject.NewAccountNumber()
	profile := CustomerProfile{
		id:               id,
		name:             name,
		email:            email,
		phone:            phone,
		age:              age,
		profession:       profession,
		experienceYears:  experienceYears,
		sector:           sector,
		salary:           salary,
		additionalIncome: additionalIncome,
		accountNumber:    number,
		accountType:      AccountTypeDemand,
		accountStatus:    AccountStatusActive,
		currency:         AccountCurrency,
		balance:          decimal.Zero,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}
	profile.domainEvents = append(profile.domainEvents, event.NewCustomerRegistered(
		id, email, profession, sector, number.String(), now,
	))
	return profile, nil
}

// ReconstructCustomerProfile rebuilds a profile from persistence without side-effects.
func ReconstructCustomerProfile(
	id, name, email, phone string,
	age int,
	profession string,
	experienceYears int,
	sector string,
	salary, additionalIncome decimal.Decimal,
	accountNumber valueobject.AccountNumber,
	accountType, accountStatus, currency string,
	balance decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) CustomerProfile {
	return CustomerProfile{
		id:               id,
		name:             name,
		email:            email,
		phone:            phone,
		age:              age,
		profession:       profession,
		experienceYears:  experienceYears,
		sector:           sector,
		salary:           salary,
		additionalIncome: additionalIncome,
		accountNumber:    accountNumber,
		accountType:      accountType,
		accountStatus:    accountStatus,
		currency:         currency,
		balance:          balance,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// WithBalance returns a copy mirroring a new ledger balance.
func (p CustomerProfile) WithBalance(balance decimal.Decimal, now time.Time) CustomerProfile {
	next := p
	next.balance = balance
	next.updatedAt = now
	next.domainEvents = copyEvents(p.domainEvents)
	return next
}

func (p CustomerProfile) ID() string                                { return p.id }
func (p CustomerProfile) Name() string                              { return p.name }
func (p CustomerProfile) Email() string                             { return p.email }
func (p CustomerProfile) Phone() string                             { return p.phone }
func (p CustomerProfile) Age() int                                  { return p.age }
func (p CustomerProfile) Profession() string                        { return p.profession }
func (p CustomerProfile) ExperienceYears() int                      { return p.experienceYears }
func (p CustomerProfile) Sector() string                            { return p.sector }
func (p CustomerProfile) Salary() decimal.Decimal                   { return p.salary }
func (p CustomerProfile) AdditionalIncome() decimal.Decimal         { return p.additionalIncome }
func (p CustomerProfile) AccountNumber() valueobject.AccountNumber  { return p.accountNumber }
func (p CustomerProfile) AccountType() string                       { return p.accountType }
func (p CustomerProfile) AccountStatus() string                     { return p.accountStatus }
func (p CustomerProfile) Currency() string                          { return p.currency }
func (p CustomerProfile) Balance() decimal.Decimal                  { return p.balance }
func (p CustomerProfile) Version() int                              { return p.version }
func (p CustomerProfile) CreatedAt() time.Time                      { return p.createdAt }
func (p CustomerProfile) UpdatedAt() time.Time                      { return p.updatedAt }
func (p CustomerProfile) DomainEvents() []event.DomainEvent         { return p.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (p CustomerProfile) ClearEvents() CustomerProfile {
	next := p
	next.domainEvents = nil
	return next
}
