package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bistro-gourmand/ordering-platform/internal/config"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type sessionContextKey struct{}

var SessionContextKey = sessionContextKey{}

// SessionMiddleware gives every visitor an anonymous session: a signed JWT
// cookie carrying the session ID that keys their cart. A missing, expired or
// tampered token is replaced by a fresh session rather than rejected — the
// customer just starts over with an empty cart.
type SessionMiddleware struct {
	jwtKey     []byte
	ttl        time.Duration
	cookieName string
}

func NewSessionMiddleware(cfg *config.Session) *SessionMiddleware {
	return &SessionMiddleware{
		jwtKey:     []byte(cfg.JWTKey),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
	}
}

func (m *SessionMiddleware) WithSession(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		sessionID, ok := m.sessionFromCookie(r, logger)
		if !ok {
			sessionID = uuid.New()

			if err := m.issueCookie(w, sessionID); err != nil {
				logger.Error("Failed to issue session token", slog.String("error", err.Error()))
				http.Error(w, "internal error", http.StatusInternalServerError)

				return
			}

			logger.Info("New guest session issued", slog.String("sessionId", sessionID.String()))
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)

		requestScopedLogger := logger.With(slog.String("sessionId", sessionID.String()))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *SessionMiddleware) sessionFromCookie(r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return uuid.Nil, false
	}

	claims := &models.SessionClaims{}

	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return m.jwtKey, nil
	})

	if err != nil || !token.Valid || claims.SessionID == uuid.Nil {
		logger.Warn("Invalid session token, issuing a new session")

		return uuid.Nil, false
	}

	return claims.SessionID, true
}

func (m *SessionMiddleware) issueCookie(w http.ResponseWriter, sessionID uuid.UUID) error {

	claims := &models.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.jwtKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// SessionFromContext returns the guest session ID set by WithSession.
func SessionFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionContextKey).(uuid.UUID)

	return id, ok
}
