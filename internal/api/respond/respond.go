// Package respond writes the JSON envelopes shared by every API handler.
//
// Success bodies are {"data": ...}. Failures are {"error": {"code", "message"}},
// optionally with a "data" member next to the error.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds decoded request bodies.
const maxBodyBytes = 1 << 20

// Error represents an API error response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// Common error codes
const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeBadRequest       = "BAD_REQUEST"
	CodeConflict         = "CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// Standard errors
var (
	ErrNoToken = &Error{
		Code:    CodeUnauthenticated,
		Message: "no token, authorization denied",
		Status:  http.StatusUnauthorized,
	}

	ErrInvalidToken = &Error{
		Code:    CodeInvalidToken,
		Message: "token is not valid",
		Status:  http.StatusUnauthorized,
	}

	// ErrNotOwner is returned when the caller does not own the resource.
	ErrNotOwner = &Error{
		Code:    CodeUnauthorized,
		Message: "not authorized",
		Status:  http.StatusUnauthorized,
	}

	ErrInvalidBody = &Error{
		Code:    CodeBadRequest,
		Message: "invalid request body",
		Status:  http.StatusBadRequest,
	}

	ErrRateLimited = &Error{
		Code:    CodeRateLimited,
		Message: "too many requests",
		Status:  http.StatusTooManyRequests,
	}

	ErrInternal = &Error{
		Code:    CodeInternalError,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	}
)

// NotFound creates a not found error with custom message.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// Validation creates a validation error with custom message.
func Validation(message string) *Error {
	return &Error{Code: CodeValidationFailed, Message: message, Status: http.StatusBadRequest}
}

// Conflict creates a conflict error. Conflicts answer 400, as existing
// clients expect.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Status: http.StatusBadRequest}
}

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error *Error `json:"error"`
	Data  any    `json:"data,omitempty"`
}

// Msg is the body of operations that only acknowledge.
type Msg struct {
	Msg string `json:"msg"`
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// JSON writes data inside the success envelope with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, dataResponse{Data: data})
}

// OK writes a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Fail writes an error envelope.
func Fail(w http.ResponseWriter, err *Error) {
	write(w, err.Status, errorResponse{Error: err})
}

// FailWithData writes an error envelope that still carries a payload.
func FailWithData(w http.ResponseWriter, err *Error, data any) {
	write(w, err.Status, errorResponse{Error: err, Data: data})
}

// Internal logs err against the request and writes a generic 500.
func Internal(w http.ResponseWriter, r *http.Request, op string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg(op + " error")
	Fail(w, ErrInternal)
}

// Decode reads a JSON body into v. On failure it writes a 400 and returns
// false. An empty body decodes to the zero value.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		Fail(w, ErrInvalidBody)
		return false
	}
	return true
}
