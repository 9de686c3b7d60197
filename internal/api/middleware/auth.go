package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/api/handlers"
)

const (
	// UserIDHeader заголовок с ID аутентифицированного менеджера.
	// Проставляется API gateway после проверки токена.
	UserIDHeader = "X-User-ID"

	msgMissingUserID = "مطلوب تسجيل الدخول للوصول إلى هذا المورد"
	msgInvalidUserID = "معرّف المستخدم غير صالح"
)

type ctxKey struct{}

var userIDKey ctxKey

// Auth требует валидный X-User-ID заголовок и кладёт его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID достаёт ID менеджера из контекста запроса
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
