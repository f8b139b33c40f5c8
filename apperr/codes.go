package apperr

// Code is the closed enumeration of failure kinds.
type Code string

const (
	CodeNetwork               Code = "NETWORK"
	CodeTimeout               Code = "TIMEOUT"
	CodeUnauthorized          Code = "UNAUTHORIZED"
	CodeSessionExpired        Code = "SESSION_EXPIRED"
	CodeInvalidCredentials    Code = "INVALID_CREDENTIALS"
	CodeBiometricFailed       Code = "BIOMETRIC_FAILED"
	CodeBiometricNotAvailable Code = "BIOMETRIC_NOT_AVAILABLE"
	CodeValidation            Code = "VALIDATION"
	CodeInvalidInput          Code = "INVALID_INPUT"
	CodeCardBlocked           Code = "CARD_BLOCKED"
	CodeInsufficientFunds     Code = "INSUFFICIENT_FUNDS"
	CodeLimitExceeded         Code = "LIMIT_EXCEEDED"
	CodeOperationNotAllowed   Code = "OPERATION_NOT_ALLOWED"
	CodeNotFound              Code = "NOT_FOUND"
	CodeServer                Code = "SERVER"
	CodeUnknown               Code = "UNKNOWN"
)

var codes = [...]Code{
	CodeNetwork,
	CodeTimeout,
	CodeUnauthorized,
	CodeSessionExpired,
	CodeInvalidCredentials,
	CodeBiometricFailed,
	CodeBiometricNotAvailable,
	CodeValidation,
	CodeInvalidInput,
	CodeCardBlocked,
	CodeInsufficientFunds,
	CodeLimitExceeded,
	CodeOperationNotAllowed,
	CodeNotFound,
	CodeServer,
	CodeUnknown,
}

var defaultMessages = map[Code]string{
	CodeNetwork:               "Connection error. Check your internet connection and try again.",
	CodeTimeout:               "The request took too long. Please try again.",
	CodeUnauthorized:          "You are not authorized to perform this action.",
	CodeSessionExpired:        "Your session has expired. Please sign in again.",
	CodeInvalidCredentials:    "Incorrect username or password.",
	CodeBiometricFailed:       "Biometric authentication failed.",
	CodeBiometricNotAvailable: "Biometric authentication is not available on this device.",
	CodeValidation:            "Some of the information entered is not valid.",
	CodeInvalidInput:          "The information entered is not valid.",
	CodeCardBlocked:           "This card is blocked.",
	CodeInsufficientFunds:     "Insufficient funds to complete this operation.",
	CodeLimitExceeded:         "The operation limit has been exceeded.",
	CodeOperationNotAllowed:   "This operation is not allowed.",
	CodeNotFound:              "The requested resource was not found.",
	CodeServer:                "Server error. Please try again later.",
	CodeUnknown:               "An unexpected error occurred. Please try again.",
}

// Codes returns every code in declaration order.
func Codes() []Code {
	out := make([]Code, len(codes))
	copy(out, codes[:])
	return out
}

// Valid reports whether c is one of the declared codes.
func (c Code) Valid() bool {
	_, ok := defaultMessages[c]
	return ok
}

// DefaultMessage returns the default message for c. Undeclared codes get the
// UNKNOWN message.
func (c Code) DefaultMessage() string {
	if msg, ok := defaultMessages[c]; ok {
		return msg
	}
	return defaultMessages[CodeUnknown]
}

// IsAuthError reports whether c means the user must (re)authenticate.
func (c Code) IsAuthError() bool {
	switch c {
	case CodeUnauthorized, CodeSessionExpired, CodeInvalidCredentials:
		return true
	}
	return false
}

// IsNetworkError reports whether c is a connectivity failure.
func (c Code) IsNetworkError() bool {
	switch c {
	case CodeNetwork, CodeTimeout:
		return true
	}
	return false
}
