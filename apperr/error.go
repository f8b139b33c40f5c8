package apperr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
)

// Error is an immutable classified failure. The zero value is not usable;
// build values with the factories in this package.
type Error struct {
	code    Code
	message string
	cause   error
}

func newError(code Code, message string, cause error) *Error {
	if !code.Valid() {
		code = CodeUnknown
	}
	message = strings.TrimSpace(message)
	if message == "" {
		message = code.DefaultMessage()
	}
	return &Error{code: code, message: message, cause: cause}
}

// Code returns the failure kind.
func (e *Error) Code() Code {
	if e == nil {
		return CodeUnknown
	}
	return e.code
}

// Message returns the human-readable message. It is never empty.
func (e *Error) Message() string {
	if e == nil {
		return CodeUnknown.DefaultMessage()
	}
	return e.message
}

// Cause returns the underlying failure, if one was recorded.
func (e *Error) Cause() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func (e *Error) Error() string {
	if e == nil {
		return string(CodeUnknown)
	}
	return string(e.code) + ": " + e.message
}

func (e *Error) Unwrap() error {
	return e.Cause()
}

// Is matches any *Error with the same code, so errors.Is(err, Network(""))
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.code == t.code
}

// WithCause returns a copy of e that records cause.
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return newError(CodeUnknown, "", cause)
	}
	return &Error{code: e.code, message: e.message, cause: cause}
}

// IsAuthError reports whether the failure requires authenticating again.
func (e *Error) IsAuthError() bool {
	return e.Code().IsAuthError()
}

// IsNetworkError reports whether the failure is a connectivity problem.
func (e *Error) IsNetworkError() bool {
	return e.Code().IsNetworkError()
}

// The factories below build an *Error with a fixed code. An empty message
// selects the code's default message.

// Network returns a NETWORK error.
func Network(message string) *Error { return newError(CodeNetwork, message, nil) }

// Timeout returns a TIMEOUT error.
func Timeout(message string) *Error { return newError(CodeTimeout, message, nil) }

// Validation returns a VALIDATION error.
func Validation(message string) *Error { return newError(CodeValidation, message, nil) }

// InvalidInput returns an INVALID_INPUT error.
func InvalidInput(message string) *Error { return newError(CodeInvalidInput, message, nil) }

// Unauthorized returns an UNAUTHORIZED error.
func Unauthorized(message string) *Error { return newError(CodeUnauthorized, message, nil) }

// SessionExpired returns a SESSION_EXPIRED error.
func SessionExpired(message string) *Error { return newError(CodeSessionExpired, message, nil) }

// InvalidCredentials returns an INVALID_CREDENTIALS error.
func InvalidCredentials(message string) *Error { return newError(CodeInvalidCredentials, message, nil) }

// BiometricFailed returns a BIOMETRIC_FAILED error.
func BiometricFailed(message string) *Error { return newError(CodeBiometricFailed, message, nil) }

// BiometricNotAvailable returns a BIOMETRIC_NOT_AVAILABLE error.
func BiometricNotAvailable(message string) *Error { return newError(CodeBiometricNotAvailable, message, nil) }

// NotFound returns a NOT_FOUND error.
func NotFound(message string) *Error { return newError(CodeNotFound, message, nil) }

// CardBlocked returns a CARD_BLOCKED error.
func CardBlocked(message string) *Error { return newError(CodeCardBlocked, message, nil) }

// InsufficientFunds returns an INSUFFICIENT_FUNDS error.
func InsufficientFunds(message string) *Error { return newError(CodeInsufficientFunds, message, nil) }

// LimitExceeded returns a LIMIT_EXCEEDED error.
func LimitExceeded(message string) *Error { return newError(CodeLimitExceeded, message, nil) }

// OperationNotAllowed returns an OPERATION_NOT_ALLOWED error.
func OperationNotAllowed(message string) *Error { return newError(CodeOperationNotAllowed, message, nil) }

// Server returns a SERVER error.
func Server(message string) *Error { return newError(CodeServer, message, nil) }

// Unknown returns an UNKNOWN error.
func Unknown(message string) *Error { return newError(CodeUnknown, message, nil) }

// FromHTTPStatus maps an HTTP status to a code. Statuses outside the table
// map to UNKNOWN.
func FromHTTPStatus(status int, message string) *Error {
	return newError(codeForStatus(status), message, nil)
}

func codeForStatus(status int) Code {
	switch {
	case status == 400:
		return CodeValidation
	case status == 401:
		return CodeUnauthorized
	case status == 403:
		return CodeOperationNotAllowed
	case status == 404:
		return CodeNotFound
	case status == 408:
		return CodeTimeout
	case status >= 500 && status <= 599:
		return CodeServer
	}
	return CodeUnknown
}

// StatusCarrier is implemented by transport errors that know the HTTP status
// of the failed response.
type StatusCarrier interface {
	HTTPStatus() int
}

// PublicMessenger is optionally implemented alongside StatusCarrier to supply
// a server message that is safe to show to the user.
type PublicMessenger interface {
	PublicMessage() string
}

var (
	networkVocabulary = []string{
		"network",
		"connection refused",
		"connection reset",
		"no such host",
		"unreachable",
		"offline",
		"dns",
		"failed to fetch",
		"eof",
	}
	timeoutVocabulary = []string{
		"timeout",
		"timed out",
		"deadline exceeded",
	}
)

// From classifies any value into an *Error. It never panics.
//
// An *Error found anywhere in an error chain is returned unchanged, which
// makes From idempotent. From(nil) returns nil.
func From(x any) *Error {
	if x == nil {
		return nil
	}

	err, isErr := x.(error)
	if !isErr {
		return newError(CodeUnknown, fmt.Sprint(x), nil)
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		return appErr
	}

	var carrier StatusCarrier
	if errors.As(err, &carrier) {
		msg := ""
		var pm PublicMessenger
		if errors.As(err, &pm) {
			msg = pm.PublicMessage()
		}
		return newError(codeForStatus(carrier.HTTPStatus()), msg, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newError(CodeTimeout, "", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return newError(CodeTimeout, "", err)
		}
		return newError(CodeNetwork, "", err)
	}

	// A connection dropped mid-response.
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newError(CodeNetwork, "", err)
	}

	text := strings.ToLower(err.Error())
	if containsAny(text, networkVocabulary) {
		return newError(CodeNetwork, "", err)
	}
	if containsAny(text, timeoutVocabulary) {
		return newError(CodeTimeout, "", err)
	}

	return newError(CodeUnknown, err.Error(), err)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
