package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burakyci/finis-bank/internal/application/usecase"
	"github.com/Burakyci/finis-bank/internal/domain/event"
	"github.com/Burakyci/finis-bank/internal/domain/model"
	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/service"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
	"github.com/Burakyci/finis-bank/internal/infrastructure/adapter"
	"github.com/Burakyci/finis-bank/internal/presentation/rest"
	"github.com/Burakyci/finis-bank/pkg/auth"
)

// ---------------------------------------------------------------------------
// in-memory ports
// ---------------------------------------------------------------------------

type memoryApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]model.CreditApplication
}

func newMemoryApplicationRepo() *memoryApplicationRepo {
	return &memoryApplicationRepo{apps: make(map[string]model.CreditApplication)}
}

func (r *memoryApplicationRepo) Save(_ context.Context, app model.CreditApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID()] = app
	return nil
}

func (r *memoryApplicationRepo) FindByID(_ context.Context, id string) (model.CreditApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return model.CreditApplication{}, pgx.ErrNoRows
	}
	return app, nil
}

func (r *memoryApplicationRepo) FindByUserID(_ context.Context, userID string) ([]model.CreditApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.CreditApplication
	for _, app := range r.apps {
		if app.UserID() == userID {
			result = append(result, app)
		}
	}
	return result, nil
}

type memoryActiveCreditRepo struct {
	mu      sync.Mutex
	credits []model.ActiveCredit
}

func (r *memoryActiveCreditRepo) Save(_ context.Context, credit model.ActiveCredit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credits = append(r.credits, credit)
	return nil
}

func (r *memoryActiveCreditRepo) FindByApplicationID(_ context.Context, applicationID string) (model.ActiveCredit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.credits {
		if c.ApplicationID() == applicationID {
			return c, nil
		}
	}
	return model.ActiveCredit{}, pgx.ErrNoRows
}

func (r *memoryActiveCreditRepo) FindByUserID(_ context.Context, userID string) ([]model.ActiveCredit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.ActiveCredit
	for _, c := range r.credits {
		if c.UserID() == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]model.CustomerProfile
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: make(map[string]model.CustomerProfile)}
}

func (r *memoryProfileRepo) Save(_ context.Context, profile model.CustomerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID()] = profile
	return nil
}

func (r *memoryProfileRepo) FindByID(_ context.Context, id string) (model.CustomerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return model.CustomerProfile{}, pgx.ErrNoRows
	}
	return profile, nil
}

func (r *memoryProfileRepo) FindByEmail(_ context.Context, email string) (model.CustomerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profile := range r.profiles {
		if profile.Email() == email {
			return profile, nil
		}
	}
	return model.CustomerProfile{}, pgx.ErrNoRows
}

type memoryPublisher struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (p *memoryPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

type approvingScoringClient struct{}

func (approvingScoringClient) EvaluateCredit(_ context.Context, req port.ScoringRequest) (valueobject.CreditDecision, error) {
	return valueobject.NewCreditDecision(
		"ONAYLANDI",
		decimal.NewFromInt(78),
		"Güçlü gelir profili",
		req.LoanAmount,
		nil,
	), nil
}

// ---------------------------------------------------------------------------
// test server
// ---------------------------------------------------------------------------

type testEnv struct {
	server  *httptest.Server
	jwt     *auth.JWTService
	appRepo *memoryApplicationRepo
	ledger  *adapter.FakeLedgerClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := service.NewValidator()
	calculator := service.NewCalculator()

	appRepo := newMemoryApplicationRepo()
	activeRepo := &memoryActiveCreditRepo{}
	profileRepo := newMemoryProfileRepo()
	publisher := &memoryPublisher{}
	ledger := adapter.NewFakeLedgerClient()

	handler := rest.NewCreditHandler(
		usecase.NewQuoteLoanUseCase(calculator),
		usecase.NewQuoteDepositUseCase(validator, calculator),
		usecase.NewRegisterCustomerUseCase(validator, service.PasswordPolicyBaseline, profileRepo, publisher, logger),
		usecase.NewSubmitApplicationUseCase(validator, calculator, appRepo, publisher, logger),
		usecase.NewAnalyzeApplicationUseCase(appRepo, profileRepo, approvingScoringClient{}, publisher, logger),
		usecase.NewWithdrawCreditUseCase(appRepo, activeRepo, ledger, publisher, logger),
		usecase.NewGetApplicationUseCase(appRepo),
		logger,
	)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "finis-bank-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	rest.NewHealthHandler(logger).RegisterRoutes(mux)
	handler.RegisterRoutes(mux)

	skipPaths := []string{
		"/healthz", "/readyz",
		"/api/v1/quotes/loan", "/api/v1/quotes/deposit",
		"/api/v1/customers",
	}
	server := httptest.NewServer(auth.Middleware(jwtService, skipPaths)(rest.LoggingMiddleware(logger)(mux)))
	t.Cleanup(server.Close)

	return &testEnv{server: server, jwt: jwtService, appRepo: appRepo, ledger: ledger}
}

func (e *testEnv) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := e.jwt.GenerateToken(userID, "musteri@example.com", []string{auth.RoleCustomer})
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, body = env.request(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])
}

func TestQuoteLoanEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/v1/quotes/loan", "", map[string]string{
		"amount": "100000",
		"term":   "36",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "6291.57", body["monthly_payment"])
	assert.Equal(t, "226496.52", body["total_payment"])
	assert.Equal(t, true, body["valid"])
}

func TestQuoteDepositEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/v1/quotes/deposit", "", map[string]string{
		"amount": "100000",
		"days":   "90",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "11095.89", body["gross_interest"])
	assert.Equal(t, "109154.11", body["total_amount"])
}

func TestQuoteDepositEndpoint_InvalidTerm(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/v1/quotes/deposit", "", map[string]string{
		"amount": "100000",
		"days":   "4000",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["messages"], "Vade 1 ile 3650 gün arasında olmalıdır")
}

func TestRegisterCustomerEndpoint(t *testing.T) {
	env := newTestEnv(t)

	form := map[string]string{
		"name":              "Ayşe Yılmaz",
		"email":             "ayse@example.com",
		"password":          "gizli123",
		"confirm_password":  "gizli123",
		"age":               "31",
		"profession":        "Mühendis",
		"experience":        "7",
		"sector":            "ozel",
		"phone":             "0532 123 45 67",
		"salary":            "55000",
		"additional_income": "0",
	}

	resp, body := env.request(t, http.MethodPost, "/api/v1/customers", "", form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ayse@example.com", body["email"])
	assert.Regexp(t, `^\d{4}-\d{6}$`, body["account_number"])
	assert.Equal(t, "Vadesiz Hesap", body["account_type"])

	// Same address again is a duplicate.
	resp, body = env.request(t, http.MethodPost, "/api/v1/customers", "", form)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["messages"], "Bu e-posta adresi zaten kayıtlı")
}

func TestRegisterCustomerEndpoint_ValidationMessages(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/v1/customers", "", map[string]string{
		"name":             "A",
		"email":            "bozuk",
		"password":         "123",
		"confirm_password": "456",
		"age":              "15",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["messages"], "Ad en az 2 karakter olmalıdır")
	assert.Contains(t, body["messages"], "Geçerli bir e-posta adresi giriniz")
	assert.Contains(t, body["messages"], "Şifreler eşleşmiyor!")
	assert.Contains(t, body["messages"], "18 yaşından küçük olamazsınız!")
}

func TestCreditWorkflowEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	token := env.token(t, userID)

	// Submit.
	resp, body := env.request(t, http.MethodPost, "/api/v1/credit/applications", token, map[string]string{
		"amount": "100000",
		"term":   "36",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "SUBMITTED", body["status"])
	appID := body["id"].(string)
	require.NotEmpty(t, appID)

	// Analyze.
	resp, body = env.request(t, http.MethodPost, "/api/v1/credit/applications/"+appID+"/analyze", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DECIDED", body["status"])
	decision := body["decision"].(map[string]any)
	assert.Equal(t, true, decision["approved"])

	// Withdraw.
	resp, body = env.request(t, http.MethodPost, "/api/v1/credit/applications/"+appID+"/withdraw", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "100000", body["amount_credited"])
	assert.Equal(t, "WITHDRAWN", body["status"])
	assert.Equal(t, "100000", env.ledger.Balance(userID.String()).String())

	// Second withdraw conflicts and does not credit again.
	resp, _ = env.request(t, http.MethodPost, "/api/v1/credit/applications/"+appID+"/withdraw", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "100000", env.ledger.Balance(userID.String()).String())

	// Fetch the final state.
	resp, body = env.request(t, http.MethodGet, "/api/v1/credit/applications/"+appID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "WITHDRAWN", body["status"])
}

func TestSubmitEndpoint_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())

	resp, body := env.request(t, http.MethodPost, "/api/v1/credit/applications", token, map[string]string{
		"amount": "500",
		"term":   "36",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["messages"], "Minimum kredi tutarı 1.000 TL olmalıdır")
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.server.URL+"/api/v1/credit/applications", "application/json",
		bytes.NewBufferString(`{"amount":"100000","term":"36"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	owner := env.token(t, uuid.New())
	stranger := env.token(t, uuid.New())

	resp, body := env.request(t, http.MethodPost, "/api/v1/credit/applications", owner, map[string]string{
		"amount": "100000",
		"term":   "36",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	appID := body["id"].(string)

	resp, _ = env.request(t, http.MethodPost, "/api/v1/credit/applications/"+appID+"/analyze", stranger, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetApplication_NotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())

	resp, _ := env.request(t, http.MethodGet, "/api/v1/credit/applications/yok", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
