package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"reservation-backend/infrastructure/config"
	"reservation-backend/pkg/common"
)

// Authenticate verifies the caller's ID token. The mini-app frontend sends
// the token the messaging platform issued for the channel; it is an HS256
// JWT signed with the channel secret.
func Authenticate(cfg *config.Config, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.AuthDisabled {
				// Local development: trust the header instead of a token.
				userID := r.Header.Get("X-User-Id")
				if userID == "" {
					userID = "local-user"
				}
				next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), userID)))
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(cfg.AuthSecret), nil
			}, jwt.WithIssuer(cfg.AuthIssuer), jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				logger.Debug("Rejected ID token", zap.Error(err))
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "token missing subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), subject)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
