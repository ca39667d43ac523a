package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID заголовок сквозного идентификатора запроса
const HeaderRequestID = "X-Request-ID"

// RequestID присваивает запросу сквозной идентификатор, если его
// не передал вышестоящий слой, и возвращает его в ответе
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(HeaderRequestID, requestID)
		}
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r)
	})
}
