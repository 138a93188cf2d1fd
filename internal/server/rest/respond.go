package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/lifelog/internal/common"
)

// Client-facing messages. 401 bodies never say why a token was refused.
const (
	msgUnauthorized   = "authentication required"
	msgBadCredentials = "email or password incorrect"
	msgNotFound       = "not found"
	msgEmailTaken     = "email is already registered"
	msgBadRequest     = "invalid request body"
	msgTooLarge       = "request body too large"
	msgInternal       = "internal server error"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// fail maps a service error onto a status code. Unexpected errors are
// logged with detail and answered with a generic 500.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve  *common.ValidationError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
	case errors.As(err, &mbe):
		writeMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, common.ErrorConflict):
		writeMessage(w, http.StatusConflict, msgEmailTaken)
	default:
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}
