package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func protectedHandler(t *testing.T, expectUserID int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFrom(r)
		assert.NotNil(t, claims)
		assert.Equal(t, expectUserID, claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	handler := Middleware()(protectedHandler(t, 0))
	req := httptest.NewRequest("GET", "/api/bookings/mine", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewarePassesValidToken(t *testing.T) {
	token, err := CreateToken(11, RoleCustomer, nil)
	assert.NoError(t, err)

	handler := Middleware()(protectedHandler(t, 11))
	req := httptest.NewRequest("GET", "/api/bookings/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareEnforcesRole(t *testing.T) {
	token, err := CreateToken(11, RoleCustomer, nil)
	assert.NoError(t, err)

	handler := Middleware(RoleAdmin)(protectedHandler(t, 11))
	req := httptest.NewRequest("GET", "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
