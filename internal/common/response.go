package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Error  string       `json:"error"`
	Kind   string       `json:"kind,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message, Kind: kindFromStatus(code)})
}

// RespondWithAppError writes err as a public error body. Detail of server-side
// failures is logged, never returned to the client.
func RespondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	code := HTTPStatusFromError(err)
	resp := ErrorResponse{Error: err.Error(), Kind: ErrorKind(err)}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		resp.Error = ErrValidation.Error()
		resp.Fields = vErr.Fields
	}

	switch code {
	case http.StatusServiceUnavailable:
		slog.ErrorContext(r.Context(), "storage unavailable", "method", r.Method, "path", r.URL.Path, "err", err)
		resp.Error = ErrServiceUnavailable.Error()
	case http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		resp.Error = ErrInternalServer.Error()
	case http.StatusUnauthorized:
		resp.Error = ErrUnauthorized.Error()
	case http.StatusNotFound:
		resp.Error = ErrNotFound.Error()
	}

	RespondWithJSON(w, code, resp)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response", "kind": "internal"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func kindFromStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return KindInvalidInput
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusServiceUnavailable:
		return KindUnavailable
	default:
		return KindInternal
	}
}
