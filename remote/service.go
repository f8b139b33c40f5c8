package remote

import (
	"context"

	"github.com/MrEthical07/authcore/profile"
)

// AuthService is the remote auth collaborator. Every method either returns a
// payload or an error; a nil payload with a nil error is treated as an empty
// acknowledgement.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*VerifyEmailResponse, error)
	ResendVerificationCode(ctx context.Context, req ResendCodeRequest) (*Ack, error)
	ValidateClient(ctx context.Context, req ValidateClientRequest) (*ValidateClientResponse, error)
	ForgotPassword(ctx context.Context, req RecoveryRequest) (*Ack, error)
	VerifyRecoveryCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*Ack, error)
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"password"`
	DeviceID   string `json:"deviceId,omitempty"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *profile.User `json:"user"`
}

type RegisterRequest struct {
	DocumentNumber string `json:"documentNumber"`
	BirthDate      string `json:"birthDate"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name,omitempty"`
}

type RegisterResponse struct {
	UserID               string `json:"userId"`
	VerificationRequired bool   `json:"verificationRequired"`
}

type VerifyEmailRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type VerifyEmailResponse struct {
	Verified bool `json:"verified"`
}

type ResendCodeRequest struct {
	Identifier string `json:"identifier"`
}

type ValidateClientRequest struct {
	DocumentNumber string `json:"documentNumber"`
	BirthDate      string `json:"birthDate"`
}

// ValidateClientResponse reports whether the bank knows the client. Valid may
// be false on a successful call when no client matches.
type ValidateClientResponse struct {
	Valid           bool   `json:"valid"`
	ClientName      string `json:"clientName,omitempty"`
	MaskedEmail     string `json:"maskedEmail,omitempty"`
	MaskedPhone     string `json:"maskedPhone,omitempty"`
	AlreadyEnrolled bool   `json:"alreadyEnrolled,omitempty"`
}

type RecoveryRequest struct {
	Identifier Identifier `json:"identifier"`
	BirthDate  string     `json:"birthDate,omitempty"`
}

type VerifyCodeRequest struct {
	Identifier Identifier `json:"identifier"`
	Code       string     `json:"code"`
}

type VerifyCodeResponse struct {
	Valid bool `json:"valid"`
}

type ResetPasswordRequest struct {
	Identifier  Identifier `json:"identifier"`
	Code        string     `json:"code"`
	NewPassword string     `json:"newPassword"`
}

// Ack is the payload of operations that only acknowledge.
type Ack struct {
	Message string `json:"message,omitempty"`
}
