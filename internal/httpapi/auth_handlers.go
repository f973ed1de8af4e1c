package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the claims in an admin JWT token
type JWTClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// withAdmin is middleware that requires a valid admin JWT
func (r *Router) withAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		// Without a secret there is no way to verify a signature; an empty
		// HMAC key would accept tokens anyone can mint.
		if r.cfg.JWTSecret == "" {
			writeError(w, http.StatusServiceUnavailable, "admin access not configured")
			return
		}

		authHeader := req.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(r.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok || claims.Role != "admin" {
			writeError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}

		next.ServeHTTP(w, req)
	}
}

// generateAdminJWT creates a new admin token
func (r *Router) generateAdminJWT() (string, time.Time, error) {
	expiresAt := time.Now().Add(r.cfg.JWTExpiry)

	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Role: "admin",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(r.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// handleAdminToken exchanges the configured admin API key for a JWT
func (r *Router) handleAdminToken(w http.ResponseWriter, req *http.Request) {
	var body struct {
		APIKey string `json:"api_key"`
	}

	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if r.cfg.AdminAPIKey == "" || r.cfg.JWTSecret == "" {
		r.logger.Printf("auth: admin access not configured")
		writeError(w, http.StatusServiceUnavailable, "admin access not configured")
		return
	}

	if subtle.ConstantTimeCompare([]byte(body.APIKey), []byte(r.cfg.AdminAPIKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}

	token, expiresAt, err := r.generateAdminJWT()
	if err != nil {
		r.logger.Printf("auth: failed to generate JWT: %v", err)
		captureError(req, err, "admin token generation failed")
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}
