package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quikbite/quikbite/config"
	"github.com/quikbite/quikbite/models"
)

func signToken(t *testing.T, userID uuid.UUID, roles []string) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.SecretKey))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	config.SecretKey = []byte("test-secret")
	userID := uuid.New()

	var gotClaims *Claims
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetAuthenticatedUser(r)
		require.NoError(t, err)
		gotClaims = claims
	}))

	req := httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, []string{"customer"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, userID, gotClaims.UserID)
	assert.Equal(t, []string{"customer"}, gotClaims.Roles)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRoleBasedMiddleware(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	protected := AuthMiddleware(RoleBasedMiddleware(models.RoleSeller, models.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	))

	call := func(roles []string) int {
		req := httptest.NewRequest("PATCH", "/api/orders/x/status", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), roles))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call([]string{"seller"}))
	assert.Equal(t, http.StatusNoContent, call([]string{"customer", "admin"}))
	assert.Equal(t, http.StatusForbidden, call([]string{"customer"}))
}

func TestHasRole(t *testing.T) {
	claims := &Claims{Roles: []string{"Customer", "seller"}}
	assert.True(t, claims.HasRole(models.RoleCustomer))
	assert.True(t, claims.HasRole(models.RoleSeller))
	assert.False(t, claims.HasRole(models.RoleAdmin))
}
