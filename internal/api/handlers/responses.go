// Package handlers содержит общие помощники HTTP-слоя:
// декодирование запросов и единый формат ответов об ошибках.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse единый формат тела ошибки
type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON декодирует тело запроса в v, запрещая неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет ответ с указанным статусом; nil-тело допустимо
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку с произвольным статусом
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

// RespondBadRequest пишет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, msg)
}

// RespondForbidden пишет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusForbidden, msg)
}

// RespondNotFound пишет 404 Not Found
func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusNotFound, msg)
}

// RespondConflict пишет 409 Conflict
func RespondConflict(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusConflict, msg)
}

// RespondInternalError пишет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервиса")
}
