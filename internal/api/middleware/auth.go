package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, проставляется gateway после аутентификации
const UserIDHeader = "X-User-ID"

const msgMissingUserID = "отсутствует ID пользователя"

type contextKey string

const userIDKey contextKey = "user_id"

// Auth требует заголовок X-User-ID и кладет ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// ContextIdentity провайдер текущего пользователя поверх контекста запроса
type ContextIdentity struct{}

// CurrentUserID ID аутентифицированного пользователя, если он есть
func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	return GetUserID(ctx)
}
