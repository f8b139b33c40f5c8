package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrEthical07/authcore/hooks"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/remote"
	"github.com/MrEthical07/authcore/remote/remotetest"
)

func recoveryStub() *remotetest.Stub {
	return &remotetest.Stub{
		ForgotPasswordFunc: func(context.Context, remote.RecoveryRequest) (*remote.Ack, error) {
			return &remote.Ack{Message: "sent"}, nil
		},
		VerifyRecoveryCodeFunc: func(context.Context, remote.VerifyCodeRequest) (*remote.VerifyCodeResponse, error) {
			return &remote.VerifyCodeResponse{Valid: true}, nil
		},
		ResetPasswordFunc: func(context.Context, remote.ResetPasswordRequest) (*remote.Ack, error) {
			return &remote.Ack{}, nil
		},
	}
}

func newRecovery(stub *remotetest.Stub, opts Options) *Recovery {
	return NewRecovery(hooks.NewRecovery(stub, hooks.Options{}), opts)
}

func fillRecoveryInput(r *Recovery) {
	r.SetAccountNumber(" 12345678 ")
	r.SetBirthDate("1990-05-17")
}

func TestRecoveryEmptyAccountNumberStaysOnInput(t *testing.T) {
	stub := recoveryStub()
	r := newRecovery(stub, Options{Now: fixedNow})
	r.SetBirthDate("1990-05-17")

	require.False(t, r.Submit(context.Background()))
	require.Equal(t, RecoveryInput, r.Step())
	require.Equal(t, "Enter your account number.", r.Error())
	require.False(t, r.IsLoading())
	require.Zero(t, stub.Calls("ForgotPassword"))
}

func TestRecoveryInputValidation(t *testing.T) {
	cases := []struct {
		name    string
		account string
		birth   string
		want    string
	}{
		{"letters in account", "12ab5678", "1990-05-17", "The account number has only digits."},
		{"short account", "123", "1990-05-17", "The account number has 6 to 20 digits."},
		{"missing birth date", "12345678", "", "Enter your date of birth."},
		{"bad birth date", "12345678", "17/05/1990", "Use the format YYYY-MM-DD for your date of birth."},
		{"future birth date", "12345678", "2030-01-01", "Your date of birth can't be in the future."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := recoveryStub()
			r := newRecovery(stub, Options{Now: fixedNow})
			r.SetAccountNumber(tc.account)
			r.SetBirthDate(tc.birth)

			require.False(t, r.Submit(context.Background()))
			require.Equal(t, RecoveryInput, r.Step())
			require.Equal(t, tc.want, r.Error())
			require.Zero(t, stub.Calls("ForgotPassword"))
		})
	}
}

func TestRecoveryHappyPath(t *testing.T) {
	ctx := context.Background()
	stub := recoveryStub()
	var gotReset remote.ResetPasswordRequest
	stub.ResetPasswordFunc = func(_ context.Context, req remote.ResetPasswordRequest) (*remote.Ack, error) {
		gotReset = req
		return &remote.Ack{}, nil
	}
	sink := audit.NewChannelSink(16)
	m := metrics.New(metrics.Config{Enabled: true})
	fired := 0
	r := newRecovery(stub, testOptions(sink, m, func() { fired++ }))

	fillRecoveryInput(r)
	require.True(t, r.Submit(ctx))
	require.Equal(t, RecoveryCode, r.Step())
	require.Empty(t, r.Error())

	r.SetCode("123456")
	require.True(t, r.Submit(ctx))
	require.Equal(t, RecoveryNewPassword, r.Step())

	r.SetNewPassword("secret123")
	r.SetConfirmation("secret123")
	require.True(t, r.Submit(ctx))
	require.Equal(t, RecoverySuccess, r.Step())

	require.Equal(t, remote.AccountNumberIdentifier("12345678"), gotReset.Identifier)
	require.Equal(t, "123456", gotReset.Code)
	require.Equal(t, "secret123", gotReset.NewPassword)

	require.False(t, r.Submit(ctx), "success is terminal")

	require.True(t, r.OnSuccess())
	require.False(t, r.OnSuccess())
	require.Equal(t, 1, fired)

	require.Equal(t, uint64(1), m.Value(metrics.RecoveryCodeSent))
	require.Equal(t, uint64(1), m.Value(metrics.RecoveryCodeVerified))
	require.Equal(t, uint64(1), m.Value(metrics.RecoveryPasswordReset))
	require.Zero(t, m.Value(metrics.RecoveryFailure))

	events := drain(sink)
	require.Len(t, events, 3)
	require.Equal(t, audit.EventRecoveryStep, events[0].EventType)
	require.Equal(t, "input", events[0].Metadata["step"])
	require.Equal(t, audit.EventRecoveryCompleted, events[2].EventType)
	require.True(t, events[2].Success)
}

func TestRecoveryOnSuccessBeforeSuccessDoesNothing(t *testing.T) {
	fired := 0
	r := newRecovery(recoveryStub(), Options{OnSuccess: func() { fired++ }})
	require.False(t, r.OnSuccess())
	require.Zero(t, fired)
}

func TestRecoveryInvalidCodeStaysOnCode(t *testing.T) {
	ctx := context.Background()
	stub := recoveryStub()
	stub.VerifyRecoveryCodeFunc = func(context.Context, remote.VerifyCodeRequest) (*remote.VerifyCodeResponse, error) {
		return &remote.VerifyCodeResponse{Valid: false}, nil
	}
	m := metrics.New(metrics.Config{Enabled: true})
	r := newRecovery(stub, Options{Now: fixedNow, Metrics: m})
	fillRecoveryInput(r)
	require.True(t, r.Submit(ctx))

	r.SetCode("12345")
	require.False(t, r.Submit(ctx))
	require.Equal(t, "The code has 6 digits.", r.Error())
	require.Zero(t, stub.Calls("VerifyRecoveryCode"))

	r.SetCode("000000")
	require.False(t, r.Submit(ctx))
	require.Equal(t, RecoveryCode, r.Step())
	require.Equal(t, "The code is not valid.", r.Error())
	require.Equal(t, uint64(1), m.Value(metrics.RecoveryFailure))
}

func TestRecoveryPasswordRules(t *testing.T) {
	cases := []struct {
		name    string
		pw      string
		confirm string
		want    string
	}{
		{"empty", "", "", "Enter a password."},
		{"short", "abc1", "abc1", "The password must have at least 8 characters."},
		{"mismatch", "secret123", "secret124", "The passwords don't match."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			stub := recoveryStub()
			r := newRecovery(stub, Options{Now: fixedNow})
			fillRecoveryInput(r)
			require.True(t, r.Submit(ctx))
			r.SetCode("123456")
			require.True(t, r.Submit(ctx))

			r.SetNewPassword(tc.pw)
			r.SetConfirmation(tc.confirm)
			require.False(t, r.Submit(ctx))
			require.Equal(t, RecoveryNewPassword, r.Step())
			require.Equal(t, tc.want, r.Error())
			require.Zero(t, stub.Calls("ResetPassword"))
		})
	}
}

func TestRecoveryRemoteFailureKeepsStep(t *testing.T) {
	stub := recoveryStub()
	stub.ForgotPasswordFunc = func(context.Context, remote.RecoveryRequest) (*remote.Ack, error) {
		return nil, &remote.StatusError{Status: 404, Message: "Account not found"}
	}
	sink := audit.NewChannelSink(4)
	r := newRecovery(stub, testOptions(sink, nil, nil))
	fillRecoveryInput(r)

	require.False(t, r.Submit(context.Background()))
	require.Equal(t, RecoveryInput, r.Step())
	require.NotEmpty(t, r.Error())
	require.False(t, r.IsLoading())
	require.Equal(t, "12345678", r.Form().AccountNumber)

	events := drain(sink)
	require.Len(t, events, 1)
	require.False(t, events[0].Success)
	require.Equal(t, "NOT_FOUND", events[0].ErrorCode)
}

func TestRecoveryBack(t *testing.T) {
	ctx := context.Background()
	r := newRecovery(recoveryStub(), Options{Now: fixedNow})
	require.False(t, r.Back(), "input is the first step")

	fillRecoveryInput(r)
	require.True(t, r.Submit(ctx))
	r.SetCode("123456")
	require.True(t, r.Submit(ctx))

	require.True(t, r.Back())
	require.Equal(t, RecoveryCode, r.Step())
	require.Equal(t, "123456", r.Form().Code)

	require.True(t, r.Back())
	require.Equal(t, RecoveryInput, r.Step())
	require.Empty(t, r.Form().Code)
	require.Equal(t, "12345678", r.Form().AccountNumber)
}

func TestRecoveryResendCode(t *testing.T) {
	ctx := context.Background()
	stub := recoveryStub()
	r := newRecovery(stub, Options{Now: fixedNow})
	require.False(t, r.ResendCode(ctx), "not on the code step")
	require.Zero(t, stub.Calls("ForgotPassword"))

	fillRecoveryInput(r)
	require.True(t, r.Submit(ctx))
	r.SetCode("111111")

	require.True(t, r.ResendCode(ctx))
	require.Equal(t, RecoveryCode, r.Step())
	require.Empty(t, r.Form().Code)
	require.Equal(t, 2, stub.Calls("ForgotPassword"))
}

func TestRecoveryRefusesSubmitWhileLoading(t *testing.T) {
	ctx := context.Background()
	g := newGate()
	stub := recoveryStub()
	stub.ForgotPasswordFunc = func(ctx context.Context, _ remote.RecoveryRequest) (*remote.Ack, error) {
		g.wait(ctx)
		return &remote.Ack{}, nil
	}
	r := newRecovery(stub, Options{Now: fixedNow})
	fillRecoveryInput(r)

	done := submitAsync(ctx, r.Submit)
	g.awaitEntered(t)
	require.True(t, r.IsLoading())
	require.False(t, r.Submit(ctx))

	close(g.release)
	requireResult(t, done, true)
	require.Equal(t, RecoveryCode, r.Step())
	require.Equal(t, 1, stub.Calls("ForgotPassword"))
}

func TestRecoveryDisposeIgnoresLateResult(t *testing.T) {
	ctx := context.Background()
	g := newGate()
	stub := recoveryStub()
	stub.ForgotPasswordFunc = func(ctx context.Context, _ remote.RecoveryRequest) (*remote.Ack, error) {
		g.wait(ctx)
		return &remote.Ack{}, nil
	}
	sink := audit.NewChannelSink(4)
	m := metrics.New(metrics.Config{Enabled: true})
	r := newRecovery(stub, testOptions(sink, m, nil))
	fillRecoveryInput(r)

	done := submitAsync(ctx, r.Submit)
	g.awaitEntered(t)
	r.Dispose()
	close(g.release)

	requireResult(t, done, false)
	require.Equal(t, RecoveryInput, r.Step())
	require.False(t, r.IsLoading())
	require.False(t, r.Submit(ctx))
	require.Zero(t, m.Value(metrics.RecoveryCodeSent))
	require.Empty(t, drain(sink))
}

func TestRecoveryBackDiscardsInFlightResult(t *testing.T) {
	ctx := context.Background()
	g := newGate()
	stub := recoveryStub()
	stub.VerifyRecoveryCodeFunc = func(ctx context.Context, _ remote.VerifyCodeRequest) (*remote.VerifyCodeResponse, error) {
		g.wait(ctx)
		return &remote.VerifyCodeResponse{Valid: true}, nil
	}
	sink := audit.NewChannelSink(4)
	m := metrics.New(metrics.Config{Enabled: true})
	r := newRecovery(stub, testOptions(sink, m, nil))
	fillRecoveryInput(r)
	require.True(t, r.Submit(ctx))
	require.Len(t, drain(sink), 1)
	r.SetCode("123456")

	done := submitAsync(ctx, r.Submit)
	g.awaitEntered(t)
	require.True(t, r.Back())
	close(g.release)

	requireResult(t, done, false)
	require.Equal(t, RecoveryInput, r.Step())
	require.Empty(t, r.Error())
	require.Equal(t, uint64(1), m.Value(metrics.RecoveryCodeSent))
	require.Zero(t, m.Value(metrics.RecoveryCodeVerified))
	require.Empty(t, drain(sink))
}

func TestRecoveryStepString(t *testing.T) {
	require.Equal(t, "newPassword", RecoveryNewPassword.String())
	require.Equal(t, "RecoveryStep(9)", RecoveryStep(9).String())
}
