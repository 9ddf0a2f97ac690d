package httpserver

import (
	"encoding/json"
	"net/http"
)

// errorCode is the machine-readable taxonomy for this demo API. Grounded
// on the teacher's api.ErrorCode, trimmed to the cases this server's
// handlers actually raise.
type errorCode string

const (
	errCodeBadRequest  errorCode = "BAD_REQUEST"
	errCodeInvalidJSON errorCode = "INVALID_JSON"
	errCodeNotFound    errorCode = "NOT_FOUND"
)

type errorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Code    errorCode `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
