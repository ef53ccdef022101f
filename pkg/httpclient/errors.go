package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
)

// maxErrorBody caps how much of an error response body is read.
const maxErrorBody = 1 << 20

// errorEnvelope covers the two error body shapes the backend produces:
// {"error":{"code","message"}} and FastAPI's {"detail": "..."} / {"detail": [...]}.
type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// ParseResponseError reads the body of a non-2xx response and translates it
// into an AppError. The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return mapStatus(resp.StatusCode, "", fmt.Sprintf("failed to read body: %v", err), serviceName)
	}

	code, message := decodeErrorBody(body)
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return mapStatus(resp.StatusCode, code, message, serviceName)
}

func decodeErrorBody(body []byte) (code, message string) {
	var env errorEnvelope
	if json.Unmarshal(body, &env) != nil {
		return "", ""
	}
	if env.Error != nil {
		return env.Error.Code, env.Error.Message
	}
	if len(env.Detail) == 0 {
		return "", ""
	}

	var detail string
	if json.Unmarshal(env.Detail, &detail) == nil {
		return "", detail
	}

	var details []validationDetail
	if json.Unmarshal(env.Detail, &details) == nil {
		msgs := make([]string, 0, len(details))
		for _, d := range details {
			field := ""
			if n := len(d.Loc); n > 0 {
				field = fmt.Sprint(d.Loc[n-1])
			}
			if field != "" {
				msgs = append(msgs, field+": "+d.Msg)
			} else {
				msgs = append(msgs, d.Msg)
			}
		}
		return "", strings.Join(msgs, "; ")
	}
	return "", string(env.Detail)
}

// mapStatus translates a backend status and message into an AppError that
// keeps the error semantics.
func mapStatus(status int, code, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: qualified,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: qualified,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	case status >= 500:
		return apperrors.Upstream(qualified, fmt.Errorf("status %d", status))
	default:
		if code == "" {
			code = "UPSTREAM_ERROR"
		}
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
