// Package remotetest provides a configurable remote.AuthService for tests and
// local tooling.
package remotetest

import (
	"context"
	"errors"
	"sync"

	"github.com/MrEthical07/authcore/remote"
)

// ErrNotConfigured is returned by Stub methods whose func field is nil.
var ErrNotConfigured = errors.New("remotetest: operation not configured")

// Stub implements remote.AuthService by delegating to its func fields and
// counting calls per operation.
type Stub struct {
	LoginFunc                  func(context.Context, remote.LoginRequest) (*remote.LoginResponse, error)
	RegisterFunc               func(context.Context, remote.RegisterRequest) (*remote.RegisterResponse, error)
	VerifyEmailFunc            func(context.Context, remote.VerifyEmailRequest) (*remote.VerifyEmailResponse, error)
	ResendVerificationCodeFunc func(context.Context, remote.ResendCodeRequest) (*remote.Ack, error)
	ValidateClientFunc         func(context.Context, remote.ValidateClientRequest) (*remote.ValidateClientResponse, error)
	ForgotPasswordFunc         func(context.Context, remote.RecoveryRequest) (*remote.Ack, error)
	VerifyRecoveryCodeFunc     func(context.Context, remote.VerifyCodeRequest) (*remote.VerifyCodeResponse, error)
	ResetPasswordFunc          func(context.Context, remote.ResetPasswordRequest) (*remote.Ack, error)

	mu    sync.Mutex
	calls map[string]int
}

var _ remote.AuthService = (*Stub)(nil)

// Calls returns how many times op was invoked. op is the method name.
func (s *Stub) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *Stub) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[op]++
}

func (s *Stub) Login(ctx context.Context, req remote.LoginRequest) (*remote.LoginResponse, error) {
	s.record("Login")
	if s.LoginFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.LoginFunc(ctx, req)
}

func (s *Stub) Register(ctx context.Context, req remote.RegisterRequest) (*remote.RegisterResponse, error) {
	s.record("Register")
	if s.RegisterFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.RegisterFunc(ctx, req)
}

func (s *Stub) VerifyEmail(ctx context.Context, req remote.VerifyEmailRequest) (*remote.VerifyEmailResponse, error) {
	s.record("VerifyEmail")
	if s.VerifyEmailFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.VerifyEmailFunc(ctx, req)
}

func (s *Stub) ResendVerificationCode(ctx context.Context, req remote.ResendCodeRequest) (*remote.Ack, error) {
	s.record("ResendVerificationCode")
	if s.ResendVerificationCodeFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.ResendVerificationCodeFunc(ctx, req)
}

func (s *Stub) ValidateClient(ctx context.Context, req remote.ValidateClientRequest) (*remote.ValidateClientResponse, error) {
	s.record("ValidateClient")
	if s.ValidateClientFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.ValidateClientFunc(ctx, req)
}

func (s *Stub) ForgotPassword(ctx context.Context, req remote.RecoveryRequest) (*remote.Ack, error) {
	s.record("ForgotPassword")
	if s.ForgotPasswordFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.ForgotPasswordFunc(ctx, req)
}

func (s *Stub) VerifyRecoveryCode(ctx context.Context, req remote.VerifyCodeRequest) (*remote.VerifyCodeResponse, error) {
	s.record("VerifyRecoveryCode")
	if s.VerifyRecoveryCodeFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.VerifyRecoveryCodeFunc(ctx, req)
}

func (s *Stub) ResetPassword(ctx context.Context, req remote.ResetPasswordRequest) (*remote.Ack, error) {
	s.record("ResetPassword")
	if s.ResetPasswordFunc == nil {
		return nil, ErrNotConfigured
	}
	return s.ResetPasswordFunc(ctx, req)
}
