package hooks

import (
	"context"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/remote"
)

// Registration exposes the sign-up operations of the remote service.
type Registration struct {
	svc remote.AuthService
	t   *tracker
}

// NewRegistration wraps svc with loading and error state.
func NewRegistration(svc remote.AuthService, opts Options) *Registration {
	return &Registration{svc: svc, t: newTracker("hooks.registration", opts)}
}

// State returns a snapshot of the loading and error state.
func (r *Registration) State() State { return r.t.snapshot() }

// IsLoading reports whether an operation is in flight.
func (r *Registration) IsLoading() bool { return r.t.snapshot().IsLoading }

// Error returns the message of the last failure, or "".
func (r *Registration) Error() string { return r.t.snapshot().Error }

// ClearError drops the last failure message.
func (r *Registration) ClearError() { r.t.clearError() }

// Register creates the account.
func (r *Registration) Register(ctx context.Context, req remote.RegisterRequest) apperr.Result[*remote.RegisterResponse] {
	return run(ctx, r.t, "register", func(ctx context.Context) (*remote.RegisterResponse, error) {
		return r.svc.Register(ctx, req)
	})
}

// VerifyEmail checks the email verification code.
func (r *Registration) VerifyEmail(ctx context.Context, req remote.VerifyEmailRequest) apperr.Result[*remote.VerifyEmailResponse] {
	return run(ctx, r.t, "verify_email", func(ctx context.Context) (*remote.VerifyEmailResponse, error) {
		return r.svc.VerifyEmail(ctx, req)
	})
}

// ResendCode asks the service to send a new email verification code.
func (r *Registration) ResendCode(ctx context.Context, identifier string) apperr.Result[*remote.Ack] {
	return run(ctx, r.t, "resend_code", func(ctx context.Context) (*remote.Ack, error) {
		return r.svc.ResendVerificationCode(ctx, remote.ResendCodeRequest{Identifier: identifier})
	})
}

// ValidateClient checks the identity document against the client base.
func (r *Registration) ValidateClient(ctx context.Context, req remote.ValidateClientRequest) apperr.Result[*remote.ValidateClientResponse] {
	return run(ctx, r.t, "validate_client", func(ctx context.Context) (*remote.ValidateClientResponse, error) {
		return r.svc.ValidateClient(ctx, req)
	})
}
