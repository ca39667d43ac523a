// Package middleware содержит HTTP middleware сервиса.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/KMP-BookingService/internal/api/handlers"
	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// Заголовки identity-коллаборатора. Сервис доверяет им: аутентификацию
// выполняет внешний слой, здесь только роль и идентичность актора.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type actorCtxKey struct{}

// Auth извлекает актора из заголовков identity-коллаборатора
// и кладет его в context запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
			return
		}

		role, ok := domain.ParseRole(r.Header.Get(HeaderUserRole))
		if !ok {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-Role")
			return
		}

		actor := domain.Actor{UserID: userID, Role: role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor кладет актора в context
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext возвращает актора запроса.
// Второе значение false, если запрос прошел мимо Auth middleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(domain.Actor)
	return actor, ok
}
