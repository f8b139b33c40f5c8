package hooks

import (
	"context"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/remote"
)

// Recovery exposes the password recovery operations of the remote service.
type Recovery struct {
	svc remote.AuthService
	t   *tracker
}

// NewRecovery wraps svc with loading and error state.
func NewRecovery(svc remote.AuthService, opts Options) *Recovery {
	return &Recovery{svc: svc, t: newTracker("hooks.recovery", opts)}
}

// State returns a snapshot of the loading and error state.
func (r *Recovery) State() State { return r.t.snapshot() }

// IsLoading reports whether an operation is in flight.
func (r *Recovery) IsLoading() bool { return r.t.snapshot().IsLoading }

// Error returns the message of the last failure, or "".
func (r *Recovery) Error() string { return r.t.snapshot().Error }

// ClearError drops the last failure message.
func (r *Recovery) ClearError() { r.t.clearError() }

// SendRecoveryCode asks the service to send a recovery code.
func (r *Recovery) SendRecoveryCode(ctx context.Context, req remote.RecoveryRequest) apperr.Result[*remote.Ack] {
	return run(ctx, r.t, "send_recovery_code", func(ctx context.Context) (*remote.Ack, error) {
		if err := req.Identifier.Validate(); err != nil {
			return nil, apperr.InvalidInput("").WithCause(err)
		}
		return r.svc.ForgotPassword(ctx, req)
	})
}

// VerifyCode checks a recovery code.
func (r *Recovery) VerifyCode(ctx context.Context, req remote.VerifyCodeRequest) apperr.Result[*remote.VerifyCodeResponse] {
	return run(ctx, r.t, "verify_recovery_code", func(ctx context.Context) (*remote.VerifyCodeResponse, error) {
		return r.svc.VerifyRecoveryCode(ctx, req)
	})
}

// ResetPassword sets a new password using a verified code.
func (r *Recovery) ResetPassword(ctx context.Context, req remote.ResetPasswordRequest) apperr.Result[*remote.Ack] {
	return run(ctx, r.t, "reset_password", func(ctx context.Context) (*remote.Ack, error) {
		return r.svc.ResetPassword(ctx, req)
	})
}
