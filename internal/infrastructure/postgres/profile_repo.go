package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// ProfileRepo implements port.ProfileRepository.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepo creates a new repository backed by PostgreSQL.
func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Save persists a customer profile (upsert by ID with optimistic locking).
func (r *ProfileRepo) Save(ctx context.Context, profile model.CustomerProfile) error {
	query := `
		INSERT INTO customer_profiles (
			id, name, email, phone, age, profession, experience_years,
			sector, salary, additional_income, account_number,
			account_type, account_status, currency, balance,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (id) DO UPDATE SET
			phone             = EXCLUDED.phone,
			profession        = EXCLUDED.profession,
			experience_years  = EXCLUDED.experience_years,
			sector            = EXCLUDED.sector,
			salary            = EXCLUDED.salary,
			additional_income = EXCLUDED.additional_income,
			account_status    = EXCLUDED.account_status,
			balance           = EXCLUDED.balance,
			version           = customer_profiles.version + 1,
			updated_at        = EXCLUDED.updated_at
		WHERE customer_profiles.version = $16
	`
	tag, err := r.pool.Exec(ctx, query,
		profile.ID(), profile.Name(), profile.Email(), profile.Phone(),
		profile.Age(), profile.Profession(), profile.ExperienceYears(),
		profile.Sector(), profile.Salary(), profile.AdditionalIncome(),
		profile.AccountNumber().String(),
		profile.AccountType(), profile.AccountStatus(), profile.Currency(),
		profile.Balance(),
		profile.Version(), profile.CreatedAt(), profile.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save customer profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on customer profile")
	}
	return nil
}

// FindByID retrieves a single customer profile.
func (r *ProfileRepo) FindByID(ctx context.Context, id string) (model.CustomerProfile, error) {
	query := profileSelect + ` WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanProfile(row)
}

// FindByEmail retrieves a profile by its unique e-mail address.
func (r *ProfileRepo) FindByEmail(ctx context.Context, email string) (model.CustomerProfile, error) {
	query := profileSelect + ` WHERE email = $1`
	row := r.pool.QueryRow(ctx, query, email)
	return scanProfile(row)
}

const profileSelect = `
	SELECT id, name, email, phone, age, profession, experience_years,
	       sector, salary, additional_income, account_number,
	       account_type, account_status, currency, balance,
	       version, created_at, updated_at
	FROM customer_profiles`

func scanProfile(s scannable) (model.CustomerProfile, error) {
	var (
		id, name, email, phone   string
		age                      int
		profession               string
		experienceYears          int
		sector                   string
		salary, additionalIncome decimal.Decimal
		accountNumberStr         string
		accountType              string
		accountStatus            string
		currency                 string
		balance                  decimal.Decimal
		version                  int
		createdAt, updatedAt     time.Time
	)

	err := s.Scan(
		&id, &name, &email, &phone,
		&age, &profession, &experienceYears,
		&sector, &salary, &additionalIncome,
		&accountNumberStr,
		&accountType, &accountStatus, &currency,
		&balance,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.CustomerProfile{}, fmt.Errorf("scan customer profile: %w", err)
	}

	accountNumber, err := valueobject.AccountNumberFromString(accountNumberStr)
	if err != nil {
		return model.CustomerProfile{}, fmt.Errorf("parse account number: %w", err)
	}

	return model.ReconstructCustomerProfile(
		id, name, email, phone,
		age, profession, experienceYears,
		sector, salary, additionalIncome,
		accountNumber,
		accountType, accountStatus, currency,
		balance,
		version, createdAt, updatedAt,
	), nil
}
