package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
)

// RefreshTokenCookie cookie с refresh token, выданная удаленным API
const RefreshTokenCookie = "refreshToken"

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "некорректный токен доступа"
)

// Auth проверяет bearer token и кладет учетные данные в контекст
// Если токен обновился во время запроса, новый токен уходит в заголовке X-Access-Token
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := auth.BearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				logger.Warn("Auth: missing token, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parser.Parse(raw)
			if err != nil {
				logger.Warn("Auth: invalid token, path=%s: %v", r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			var refreshToken string
			if c, err := r.Cookie(RefreshTokenCookie); err == nil {
				refreshToken = c.Value
			}

			creds := auth.NewCredentials(claims.UserID, claims.Role, raw, refreshToken)
			ctx := auth.WithCredentials(r.Context(), creds)

			next.ServeHTTP(&tokenWriter{ResponseWriter: w, creds: creds}, r.WithContext(ctx))
		})
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	return auth.UserIDFromContext(ctx)
}

// tokenWriter дописывает обновленный access token перед отправкой заголовков
type tokenWriter struct {
	http.ResponseWriter
	creds       *auth.Credentials
	wroteHeader bool
}

func (w *tokenWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if token, ok := w.creds.RefreshedToken(); ok {
			w.Header().Set(handlers.HeaderAccessToken, token)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *tokenWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
