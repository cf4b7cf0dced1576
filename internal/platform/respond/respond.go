// Package respond centraliza la escritura de respuestas JSON.
// Antes writeJSON estaba duplicado por módulo; con cuatro módulos ya conviene el helper común.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-dispatch/internal/platform/apperr"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Detail escribe {"detail": msg}.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, detailResponse{Detail: msg})
}

func Unauthorized(w http.ResponseWriter) {
	Detail(w, http.StatusUnauthorized, "unauthorized")
}

// Error traduce un error de dominio a su código HTTP.
// InvalidInput, Conflict y PreconditionFailed van todos a 400.
func Error(w http.ResponseWriter, err error) {
	Detail(w, Status(err), messageOf(err))
}

func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrPreconditionFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error) string {
	if msg := apperr.Message(err); msg != "" {
		return msg
	}
	return "internal error"
}

// DecodeJSON decodifica el body; un JSON inválido es InvalidInput.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.New(apperr.ErrInvalidInput, "invalid json")
	}
	return nil
}
