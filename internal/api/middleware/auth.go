package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
)

type contextKey string

// UserIDKey ключ контекста с идентификатором сотрудника
const UserIDKey contextKey = "userID"

const msgUnauthorized = "требуется заголовок X-User-ID"

// Auth проверяет наличие заголовка X-User-ID и кладет идентификатор
// сотрудника в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get("X-User-ID")
		if rawUserID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext достает идентификатор сотрудника из контекста
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
