package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func userIDProbe(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth_RequiredRejectsMissingToken(t *testing.T) {
	var userID string
	handler := jwtAuth(testSecret, true)(userIDProbe(&userID))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/ads", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, userID)
}

func TestJWTAuth_RequiredRejectsWrongSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	raw, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	var userID string
	handler := jwtAuth(testSecret, true)(userIDProbe(&userID))

	r := httptest.NewRequest(http.MethodPost, "/api/ads", nil)
	r.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidTokenSetsViewer(t *testing.T) {
	var userID string
	handler := jwtAuth(testSecret, true)(userIDProbe(&userID))

	r := httptest.NewRequest(http.MethodPost, "/api/ads", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", userID)
}

func TestJWTAuth_OptionalAllowsAnonymous(t *testing.T) {
	var userID string
	handler := jwtAuth(testSecret, false)(userIDProbe(&userID))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ads", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, userID)
}

func TestJWTAuth_OptionalStillIdentifiesAuthenticatedViewer(t *testing.T) {
	var userID string
	handler := jwtAuth(testSecret, false)(userIDProbe(&userID))

	r := httptest.NewRequest(http.MethodGet, "/api/ads", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "user-7"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-7", userID)
}
