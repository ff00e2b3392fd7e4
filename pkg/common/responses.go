package common

import (
	"encoding/json"
	"net/http"

	apperrors "devlink-backend/pkg/errors"
)

// ErrorItem is a single error message in the error envelope
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the error envelope returned on every failed request
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError sends an error response with a single message
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondErrors(w, status, []string{message})
}

// RespondErrors sends an error response with multiple messages
func RespondErrors(w http.ResponseWriter, status int, messages []string) {
	response := ErrorResponse{}
	for _, msg := range messages {
		response.Errors = append(response.Errors, ErrorItem{Msg: msg})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// RespondAppError maps an application error to its HTTP status and envelope.
// Internal failures never leak their cause to the client body.
func RespondAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation,
		apperrors.ErrorTypeNotFound,
		apperrors.ErrorTypeUnauthorized,
		apperrors.ErrorTypeForbidden:
		RespondError(w, appErr.HTTPStatus, appErr.Message)
	default:
		RespondError(w, http.StatusInternalServerError, "server error")
	}
}

// ParseJSONBody parses a JSON request body with a size limit
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return err
	}

	return nil
}
