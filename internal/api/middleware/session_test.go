package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bistro-gourmand/ordering-platform/internal/api/middleware"
	"github.com/bistro-gourmand/ordering-platform/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionConfig() *config.Session {
	return &config.Session{
		JWTKey:     "test-signing-key",
		TTL:        72 * time.Hour,
		CookieName: "legourmand_session",
	}
}

func sessionCapture(captured *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.SessionFromContext(r.Context())
		if ok {
			*captured = id
		}

		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("First visit gets a fresh session and cookie", func(t *testing.T) {
		// Arrange
		m := middleware.NewSessionMiddleware(sessionConfig())

		var captured uuid.UUID
		handler := m.WithSession(sessionCapture(&captured))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.NotEqual(t, uuid.Nil, captured)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "legourmand_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("Returning visitor keeps their session", func(t *testing.T) {
		m := middleware.NewSessionMiddleware(sessionConfig())

		var first uuid.UUID
		handler := m.WithSession(sessionCapture(&first))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		cookie := rec.Result().Cookies()[0]

		var second uuid.UUID
		handler = m.WithSession(sessionCapture(&second))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.AddCookie(cookie)
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, first, second)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("Tampered token is replaced, not rejected", func(t *testing.T) {
		m := middleware.NewSessionMiddleware(sessionConfig())

		var captured uuid.UUID
		handler := m.WithSession(sessionCapture(&captured))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: "legourmand_session", Value: "not-a-jwt"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEqual(t, uuid.Nil, captured)
		require.Len(t, rec.Result().Cookies(), 1)
	})

	t.Run("Token signed with another key is replaced", func(t *testing.T) {
		issuer := middleware.NewSessionMiddleware(&config.Session{
			JWTKey:     "some-other-key",
			TTL:        time.Hour,
			CookieName: "legourmand_session",
		})

		var issued uuid.UUID
		rec := httptest.NewRecorder()
		issuer.WithSession(sessionCapture(&issued)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		foreign := rec.Result().Cookies()[0]

		m := middleware.NewSessionMiddleware(sessionConfig())

		var captured uuid.UUID
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(foreign)
		rec = httptest.NewRecorder()

		m.WithSession(sessionCapture(&captured)).ServeHTTP(rec, req)

		assert.NotEqual(t, uuid.Nil, captured)
		assert.NotEqual(t, issued, captured)
	})
}
