package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskana/taskana/application/port/outbound"
)

// stubTokenService accepts exactly one token string and returns fixed claims.
type stubTokenService struct {
	validToken string
	claims     outbound.TokenClaims
}

func (s *stubTokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	return s.validToken, nil
}

func (s *stubTokenService) GenerateRefreshToken(claims outbound.TokenClaims) (string, error) {
	return s.validToken, nil
}

func (s *stubTokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	if token == s.validToken {
		claims := s.claims
		return &claims, nil
	}
	return nil, outbound.ErrInvalidToken
}

func (s *stubTokenService) ValidateRefreshToken(token string) (*outbound.TokenClaims, error) {
	return s.ValidateAccessToken(token)
}

func newTestAuth(isAdmin bool) *AuthMiddleware {
	return NewAuthMiddleware(&stubTokenService{
		validToken: "good-token",
		claims:     outbound.TokenClaims{EmpNumber: 7, Email: "u@example.com", IsAdmin: isAdmin},
	})
}

func TestAuthenticate(t *testing.T) {
	auth := newTestAuth(false)

	probe := func(r *http.Request) (*httptest.ResponseRecorder, *outbound.TokenClaims) {
		var seen *outbound.TokenClaims
		handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = IdentityFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec, seen
	}

	t.Run("no header continues anonymously", func(t *testing.T) {
		rec, seen := probe(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("valid bearer sets identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		rec, seen := probe(r)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, int64(7), seen.EmpNumber)
	})

	t.Run("present but invalid token is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer bad-token")
		rec, seen := probe(r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "good-token")
		rec, _ := probe(r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireLoggedIn(t *testing.T) {
	auth := newTestAuth(false)
	handler := auth.Authenticate(auth.RequireLoggedIn(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("non-admin gets 403", func(t *testing.T) {
		auth := newTestAuth(false)
		handler := auth.Authenticate(auth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		auth := newTestAuth(true)
		handler := auth.Authenticate(auth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireSelfOrAdmin(t *testing.T) {
	route := func(auth *AuthMiddleware) http.Handler {
		r := mux.NewRouter()
		r.HandleFunc("/users/{empNumber}", auth.RequireSelfOrAdmin("empNumber", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		return auth.Authenticate(r)
	}

	request := func(path string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r.Header.Set("Authorization", "Bearer good-token")
		return r
	}

	t.Run("self passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		route(newTestAuth(false)).ServeHTTP(rec, request("/users/7"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other user gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		route(newTestAuth(false)).ServeHTTP(rec, request("/users/8"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin passes for anyone", func(t *testing.T) {
		rec := httptest.NewRecorder()
		route(newTestAuth(true)).ServeHTTP(rec, request("/users/8"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		route(newTestAuth(false)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
