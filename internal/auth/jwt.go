package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid. There is no revocation
// mechanism; tokens expire passively and logout is client-side only.
const TokenTTL = 7 * 24 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// UserIDKey is the context key under which the middleware stores the
// authenticated user's id.
type contextKey string

const UserIDKey = contextKey("userID")

// Manager issues and verifies bearer tokens. It is stateless: verification
// relies on the signature and expiry alone.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager signing with the given secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// GenerateToken creates a new JWT for the given user id.
func (m *Manager) GenerateToken(userID string) (string, error) {
	return m.generateToken(userID, TokenTTL)
}

func (m *Manager) generateToken(userID string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken validates a JWT string and returns the user id it carries.
func (m *Manager) ParseToken(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	return claims.UserID, nil
}

// Middleware protects routes by requiring a valid bearer token. The
// authenticated user's id is passed down via the request context.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Authorization header missing")
				return
			}

			userID, err := m.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user's id from a request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
