// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// HTTPHandler writes StandardErrors as JSON HTTP responses.
type HTTPHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewHTTPHandler(logger Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// statusFor maps internal error codes to HTTP statuses. A policy refusal is
// not an error and never reaches this mapping; only NO_ANSWER_AVAILABLE turns
// a chat request into a failure response.
func statusFor(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeFormValidationFailed, ErrCodeFormTypeUnknown:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeNoAnswerAvailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError normalizes err and writes it to w. Internal details of
// unexpected errors are logged but not exposed to the caller.
func (h *HTTPHandler) WriteError(w http.ResponseWriter, err error) {
	stdErr := AsStandard(err)
	status := statusFor(stdErr.Code)

	if status >= 500 {
		h.logger.Error("request failed", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	} else {
		h.logger.Warn("request rejected", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}

	body := map[string]interface{}{
		"error": stdErr.Message,
		"code":  string(stdErr.Code),
	}
	if status < 500 && stdErr.Details != "" {
		body["details"] = stdErr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
