package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/footmate/internal/usecase"
)

const (
	statusSuccess  = "success"
	successMessage = "Successfully done"
)

type successEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Message  string `json:"message"`
	Code     string `json:"code"`
	HTTPCode int    `json:"httpCode"`
}

type mappedError struct {
	HTTPStatus int
	Code       string
	Message    string
}

var internalError = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Code:       "INTERNAL_SERVER_ERROR",
	Message:    "Internal Server Error",
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, successEnvelope{
		Status:  statusSuccess,
		Message: successMessage,
		Data:    data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope{
		Message:  mapped.Message,
		Code:     mapped.Code,
		HTTPCode: mapped.HTTPStatus,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, internalError.HTTPStatus, errorEnvelope{
		Message:  internalError.Message,
		Code:     internalError.Code,
		HTTPCode: internalError.HTTPStatus,
	})
}

// mapError is the only place error kinds become HTTP statuses. Errors that
// carry no kind are reported as a generic 500 without leaking their text.
func mapError(ctx context.Context, err error) mappedError {
	var out mappedError
	switch {
	case errors.Is(err, usecase.ErrValidationFailed):
		out = mappedError{HTTPStatus: http.StatusBadRequest, Code: "VALIDATION_FAILED"}
	case errors.Is(err, usecase.ErrBadRequest):
		out = mappedError{HTTPStatus: http.StatusBadRequest, Code: "BAD_REQUEST"}
	case errors.Is(err, usecase.ErrUnauthorized):
		out = mappedError{HTTPStatus: http.StatusUnauthorized, Code: "UNAUTHORIZED"}
	case errors.Is(err, usecase.ErrForbidden):
		out = mappedError{HTTPStatus: http.StatusForbidden, Code: "FORBIDDEN"}
	case errors.Is(err, usecase.ErrNotFound):
		out = mappedError{HTTPStatus: http.StatusNotFound, Code: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrConflict):
		out = mappedError{HTTPStatus: http.StatusConflict, Code: "CONFLICT"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		out = mappedError{HTTPStatus: http.StatusServiceUnavailable, Code: "SERVICE_UNAVAILABLE"}
	default:
		recordServerError(ctx, err)
		return internalError
	}

	if failure, ok := usecase.AsFailure(err); ok {
		out.Message = failure.Message()
	} else {
		out.Message = err.Error()
	}
	return out
}
