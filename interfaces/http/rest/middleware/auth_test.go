package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reservation-backend/infrastructure/config"
	"reservation-backend/pkg/common"
)

const testSecret = "channel-secret"

func authedHandler(t *testing.T, cfg *config.Config) (http.Handler, *string) {
	t.Helper()
	var seenUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = common.UserIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(cfg, zap.NewNop())(next), &seenUser
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret, AuthIssuer: "https://access.line.me"}
	handler, seenUser := authedHandler(t, cfg)

	token := signToken(t, jwt.MapClaims{
		"iss": "https://access.line.me",
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", *seenUser)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret, AuthIssuer: "https://access.line.me"}
	handler, _ := authedHandler(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret, AuthIssuer: "https://access.line.me"}
	handler, _ := authedHandler(t, cfg)

	token := signToken(t, jwt.MapClaims{
		"iss": "https://access.line.me",
		"sub": "user-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsWrongIssuer(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret, AuthIssuer: "https://access.line.me"}
	handler, _ := authedHandler(t, cfg)

	token := signToken(t, jwt.MapClaims{
		"iss": "https://evil.example.com",
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateDisabledUsesHeader(t *testing.T) {
	cfg := &config.Config{AuthDisabled: true}
	handler, seenUser := authedHandler(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Id", "dev-user")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev-user", *seenUser)
}
