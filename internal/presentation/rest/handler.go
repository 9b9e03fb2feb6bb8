package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/application/usecase"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
	"github.com/Burakyci/finis-bank/pkg/auth"
)

// CreditHandler exposes the credit and deposit operations over HTTP.
type CreditHandler struct {
	quoteLoan        *usecase.QuoteLoanUseCase
	quoteDeposit     *usecase.QuoteDepositUseCase
	registerCustomer *usecase.RegisterCustomerUseCase
	submit           *usecase.SubmitApplicationUseCase
	analyze          *usecase.AnalyzeApplicationUseCase
	withdraw         *usecase.WithdrawCreditUseCase
	getApplication   *usecase.GetApplicationUseCase
	logger           *slog.Logger
}

// NewCreditHandler creates the HTTP handler wiring all use cases.
func NewCreditHandler(
	quoteLoan *usecase.QuoteLoanUseCase,
	quoteDeposit *usecase.QuoteDepositUseCase,
	registerCustomer *usecase.RegisterCustomerUseCase,
	submit *usecase.SubmitApplicationUseCase,
	analyze *usecase.AnalyzeApplicationUseCase,
	withdraw *usecase.WithdrawCreditUseCase,
	getApplication *usecase.GetApplicationUseCase,
	logger *slog.Logger,
) *CreditHandler {
	return &CreditHandler{
		quoteLoan:        quoteLoan,
		quoteDeposit:     quoteDeposit,
		registerCustomer: registerCustomer,
		submit:           submit,
		analyze:          analyze,
		withdraw:         withdraw,
		getApplication:   getApplication,
		logger:           logger,
	}
}

// RegisterRoutes attaches all API routes to the given mux.
func (h *CreditHandler) RegisterRoutes(mux *http.ServeMux) {
	// Public calculators and registration.
	mux.HandleFunc("POST /api/v1/quotes/loan", h.handleQuoteLoan)
	mux.HandleFunc("POST /api/v1/quotes/deposit", h.handleQuoteDeposit)
	mux.HandleFunc("POST /api/v1/customers", h.handleRegisterCustomer)

	// Authenticated credit workflow.
	mux.HandleFunc("POST /api/v1/credit/applications", h.handleSubmit)
	mux.HandleFunc("GET /api/v1/credit/applications/{id}", h.handleGet)
	mux.HandleFunc("POST /api/v1/credit/applications/{id}/analyze", h.handleAnalyze)
	mux.HandleFunc("POST /api/v1/credit/applications/{id}/withdraw", h.handleWithdraw)
}

func (h *CreditHandler) handleQuoteLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.quoteLoan.Execute(r.Context(), req))
}

func (h *CreditHandler) handleQuoteDeposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.quoteDeposit.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleRegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.registerCustomer.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *CreditHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.UserID = userIDFromContext(r)
	resp, err := h.submit.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *CreditHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	req := dto.GetApplicationRequest{
		UserID:        userIDFromContext(r),
		ApplicationID: r.PathValue("id"),
	}
	resp, err := h.getApplication.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req := dto.AnalyzeApplicationRequest{
		UserID:        userIDFromContext(r),
		ApplicationID: r.PathValue("id"),
	}
	resp, err := h.analyze.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	req := dto.WithdrawCreditRequest{
		UserID:        userIDFromContext(r),
		ApplicationID: r.PathValue("id"),
	}
	resp, err := h.withdraw.Execute(r.Context(), req)

	// The ledger was credited but the record write failed. The response still
	// carries the credited amount and new balance; the status code makes the
	// inconsistency visible to the caller and to alerting.
	var reconErr *valueobject.ReconciliationNeededError
	if errors.As(err, &reconErr) {
		h.logger.Error("withdrawal needs reconciliation",
			"application_id", reconErr.ApplicationID,
			"amount", reconErr.Amount,
			"error", reconErr.Cause,
		)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"reconciliation_needed": true,
			"result":                resp,
		})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func userIDFromContext(r *http.Request) string {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.UserID.String()
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *CreditHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *valueobject.ValidationError
	var authErr *valueobject.AuthRequiredError
	var transportErr *valueobject.TransportError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    "validation failed",
			"messages": validationErr.Messages,
		})
	case errors.As(err, &authErr):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": authErr.Error()})
	case errors.As(err, &transportErr):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": transportErr.Error()})
	case errors.Is(err, valueobject.ErrAlreadyWithdrawn):
		writeJSON(w, http.StatusConflict, map[string]string{"error": valueobject.ErrAlreadyWithdrawn.Error()})
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": valueobject.ErrInvalidStatusTransition.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
