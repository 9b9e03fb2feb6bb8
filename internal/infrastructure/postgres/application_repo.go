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

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a new repository backed by PostgreSQL.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// Save persists a credit application (upsert by ID with optimistic locking).
func (r *ApplicationRepo) Save(ctx context.Context, app model.CreditApplication) error {
	query := `
		INSERT INTO credit_applications (
			id, user_id, requested_amount, term_months,
			monthly_payment, total_payment, status,
			decision_approved, decision_score, decision_reason,
			recommended_amount, decision_conditions, withdrawn_amount,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (id) DO UPDATE SET
			status              = EXCLUDED.status,
			decision_approved   = EXCLUDED.decision_approved,
			decision_score      = EXCLUDED.decision_score,
			decision_reason     = EXCLUDED.decision_reason,
			recommended_amount  = EXCLUDED.recommended_amount,
			decision_conditions = EXCLUDED.decision_conditions,
			withdrawn_amount    = EXCLUDED.withdrawn_amount,
			version             = credit_applications.version + 1,
			updated_at          = EXCLUDED.updated_at
		WHERE credit_applications.version = $14
	`
	decision := app.Decision()
	tag, err := r.pool.Exec(ctx, query,
		app.ID(), app.UserID(),
		app.RequestedAmount(), app.TermMonths(),
		app.MonthlyPayment(), app.TotalPayment(),
		app.Status().String(),
		decision.Approved(), decision.CreditScore(), decision.Reason(),
		decision.RecommendedAmount(), decision.Conditions(),
		app.WithdrawnAmount(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save credit application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on credit application")
	}
	return nil
}

// FindByID retrieves a single credit application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.CreditApplication, error) {
	query := `
		SELECT id, user_id, requested_amount, term_months,
		       monthly_payment, total_payment, status,
		       decision_approved, decision_score, decision_reason,
		       recommended_amount, decision_conditions, withdrawn_amount,
		       version, created_at, updated_at
		FROM credit_applications
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

// FindByUserID retrieves all applications of a given customer.
func (r *ApplicationRepo) FindByUserID(ctx context.Context, userID string) ([]model.CreditApplication, error) {
	query := `
		SELECT id, user_id, requested_amount, term_months,
		       monthly_payment, total_payment, status,
		       decision_approved, decision_score, decision_reason,
		       recommended_amount, decision_conditions, withdrawn_amount,
		       version, created_at, updated_at
		FROM credit_applications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.scanMany(ctx, query, userID)
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func (r *ApplicationRepo) scanOne(ctx context.Context, query string, args ...any) (model.CreditApplication, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	return scanApplication(row)
}

func (r *ApplicationRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.CreditApplication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query credit applications: %w", err)
	}
	defer rows.Close()

	var result []model.CreditApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanApplication(s scannable) (model.CreditApplication, error) {
	var (
		id, userID                    string
		requestedAmount               decimal.Decimal
		termMonths                    int
		monthlyPayment, totalPayment  decimal.Decimal
		statusStr                     string
		decisionApproved              bool
		decisionScore                 decimal.Decimal
		decisionReason                string
		recommendedAmount             decimal.Decimal
		decisionConditions            []string
		withdrawnAmount               decimal.Decimal
		version                       int
		createdAt, updatedAt          time.Time
	)

	err := s.Scan(
		&id, &userID,
		&requestedAmount, &termMonths,
		&monthlyPayment, &totalPayment,
		&statusStr,
		&decisionApproved, &decisionScore, &decisionReason,
		&recommendedAmount, &decisionConditions,
		&withdrawnAmount,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.CreditApplication{}, fmt.Errorf("scan credit application: %w", err)
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.CreditApplication{}, fmt.Errorf("parse status: %w", err)
	}

	decision := valueobject.ReconstructCreditDecision(
		decisionApproved, decisionScore, decisionReason,
		recommendedAmount, decisionConditions,
	)

	return model.ReconstructCreditApplication(
		id, userID,
		requestedAmount, termMonths,
		monthlyPayment, totalPayment,
		status, decision, withdrawnAmount,
		version, createdAt, updatedAt,
	), nil
}
