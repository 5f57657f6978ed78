package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mknoufi/stock-verify-backend/internal/auth/jwt"
	"github.com/mknoufi/stock-verify-backend/internal/auth/repository"
	"github.com/mknoufi/stock-verify-backend/internal/auth/service"
	"github.com/mknoufi/stock-verify-backend/pkg/config"
	"github.com/mknoufi/stock-verify-backend/pkg/errors"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
	"github.com/mknoufi/stock-verify-backend/pkg/testutil"
)

type memStaffStore struct {
	staff map[string]*repository.Staff
}

func (m *memStaffStore) GetByID(ctx context.Context, id string) (*repository.Staff, error) {
	if s, ok := m.staff[id]; ok {
		return s, nil
	}
	return nil, errors.NotFound("staff")
}

func (m *memStaffStore) GetByUsername(ctx context.Context, username string) (*repository.Staff, error) {
	for _, s := range m.staff {
		if s.Username == username && s.IsActive {
			return s, nil
		}
	}
	return nil, errors.NotFound("staff")
}

func (m *memStaffStore) UpdatePINHash(ctx context.Context, id, pinHash string) error {
	s, ok := m.staff[id]
	if !ok {
		return errors.NotFound("staff")
	}
	s.PINHash = pinHash
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &memStaffStore{staff: map[string]*repository.Staff{
		"staff-1": {
			ID:       "staff-1",
			Username: "counter1",
			Name:     "Counter One",
			Role:     "counter",
			PINHash:  string(hash),
			IsActive: true,
		},
	}}

	mgr := jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "stock-verify",
	})

	log := logger.New("auth-handler-test", "test")
	h := NewAuthHandler(service.NewAuthService(store, mgr, nil, log), log)

	r := chi.NewRouter()
	r.Post("/auth/login/pin", h.Login)
	r.Post("/auth/refresh", h.Refresh)
	r.Group(func(r chi.Router) {
		r.Use(mgr.Middleware())
		r.Post("/auth/pin/change", h.ChangePIN)
	})
	return r
}

func login(t *testing.T, router http.Handler, username, pin string) map[string]interface{} {
	req := testutil.NewHTTPRequest(http.MethodPost, "/auth/login/pin", map[string]string{
		"username": username,
		"pin":      pin,
	})
	rr := testutil.ExecuteRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	testutil.ParseJSONBody(t, rr, &body)
	require.True(t, body.Success)
	return body.Data
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	data := login(t, router, "counter1", "1234")

	staff := data["staff"].(map[string]interface{})
	assert.Equal(t, "counter1", staff["username"])
	// The PIN hash never appears in the response
	assert.NotContains(t, staff, "pin_hash")

	tokens := data["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
}

func TestLoginWrongPIN(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewHTTPRequest(http.MethodPost, "/auth/login/pin", map[string]string{
		"username": "counter1",
		"pin":      "9999",
	})
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	testutil.AssertBodyContains(t, rr, "INVALID_CREDENTIALS")
}

func TestLoginRejectsNonNumericPIN(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewHTTPRequest(http.MethodPost, "/auth/login/pin", map[string]string{
		"username": "counter1",
		"pin":      "abcd",
	})
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertBodyContains(t, rr, "VALIDATION_ERROR")
}

func TestRefresh(t *testing.T) {
	router := newTestRouter(t)

	data := login(t, router, "counter1", "1234")
	tokens := data["tokens"].(map[string]interface{})

	req := testutil.NewHTTPRequest(http.MethodPost, "/auth/refresh", map[string]string{
		"refresh_token": tokens["refresh_token"].(string),
	})
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, "access_token")
}

func TestRefreshInvalidToken(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewHTTPRequest(http.MethodPost, "/auth/refresh", map[string]string{
		"refresh_token": "garbage",
	})
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestChangePIN(t *testing.T) {
	router := newTestRouter(t)

	data := login(t, router, "counter1", "1234")
	tokens := data["tokens"].(map[string]interface{})
	access := tokens["access_token"].(string)

	req := testutil.NewHTTPRequest(http.MethodPost, "/auth/pin/change", map[string]string{
		"current_pin": "1234",
		"new_pin":     "567890",
	})
	req.Header.Set("Authorization", "Bearer "+access)
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusNoContent)

	// Old PIN no longer works
	req = testutil.NewHTTPRequest(http.MethodPost, "/auth/login/pin", map[string]string{
		"username": "counter1",
		"pin":      "1234",
	})
	rr = testutil.ExecuteRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	login(t, router, "counter1", "567890")
}

func TestChangePINRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewHTTPRequest(http.MethodPost, "/auth/pin/change", map[string]string{
		"current_pin": "1234",
		"new_pin":     "5678",
	})
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}
