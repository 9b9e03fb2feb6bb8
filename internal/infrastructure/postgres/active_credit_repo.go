package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Burakyci/finis-bank/internal/domain/model"
)

// ActiveCreditRepo implements port.ActiveCreditRepository.
//
// Active credits are append-only: a row is written once when a credit is
// disbursed and never updated through this repository.
type ActiveCreditRepo struct {
	pool *pgxpool.Pool
}

// NewActiveCreditRepo creates a new repository backed by PostgreSQL.
func NewActiveCreditRepo(pool *pgxpool.Pool) *ActiveCreditRepo {
	return &ActiveCreditRepo{pool: pool}
}

// Save inserts a new active credit row.
func (r *ActiveCreditRepo) Save(ctx context.Context, credit model.ActiveCredit) error {
	query := `
		INSERT INTO active_credits (
			id, application_id, user_id, amount, term_months,
			monthly_payment, remaining_amount, remaining_months,
			status, start_date, end_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err := r.pool.Exec(ctx, query,
		credit.ID(), credit.ApplicationID(), credit.UserID(),
		credit.Amount(), credit.TermMonths(),
		credit.MonthlyPayment(), credit.RemainingAmount(), credit.RemainingMonths(),
		credit.Status(), credit.StartDate(), credit.EndDate(),
	)
	if err != nil {
		return fmt.Errorf("save active credit: %w", err)
	}
	return nil
}

// FindByApplicationID retrieves the credit disbursed for an application.
func (r *ActiveCreditRepo) FindByApplicationID(ctx context.Context, applicationID string) (model.ActiveCredit, error) {
	query := `
		SELECT id, application_id, user_id, amount, term_months,
		       monthly_payment, remaining_amount, remaining_months,
		       status, start_date, end_date
		FROM active_credits
		WHERE application_id = $1
	`
	row := r.pool.QueryRow(ctx, query, applicationID)
	return scanActiveCredit(row)
}

// FindByUserID retrieves all credits disbursed to a customer.
func (r *ActiveCreditRepo) FindByUserID(ctx context.Context, userID string) ([]model.ActiveCredit, error) {
	query := `
		SELECT id, application_id, user_id, amount, term_months,
		       monthly_payment, remaining_amount, remaining_months,
		       status, start_date, end_date
		FROM active_credits
		WHERE user_id = $1
		ORDER BY start_date DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query active credits: %w", err)
	}
	defer rows.Close()

	var result []model.ActiveCredit
	for rows.Next() {
		credit, err := scanActiveCredit(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, credit)
	}
	return result, rows.Err()
}

func scanActiveCredit(s scannable) (model.ActiveCredit, error) {
	var (
		id, applicationID, userID       string
		amount                          decimal.Decimal
		termMonths                      int
		monthlyPayment, remainingAmount decimal.Decimal
		remainingMonths                 int
		status                          string
		startDate, endDate              time.Time
	)

	err := s.Scan(
		&id, &applicationID, &userID,
		&amount, &termMonths,
		&monthlyPayment, &remainingAmount, &remainingMonths,
		&status, &startDate, &endDate,
	)
	if err != nil {
		return model.ActiveCredit{}, fmt.Errorf("scan active credit: %w", err)
	}

	return model.ReconstructActiveCredit(
		id, applicationID, userID,
		amount, termMonths,
		monthlyPayment, remainingAmount, remainingMonths,
		status, startDate, endDate,
	), nil
}
