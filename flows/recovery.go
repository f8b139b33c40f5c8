package flows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/hooks"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/password"
	"github.com/MrEthical07/authcore/remote"
)

// RecoveryStep is the position of the password recovery wizard.
type RecoveryStep int

const (
	RecoveryInput RecoveryStep = iota
	RecoveryCode
	RecoveryNewPassword
	RecoverySuccess
)

func (s RecoveryStep) String() string {
	switch s {
	case RecoveryInput:
		return "input"
	case RecoveryCode:
		return "code"
	case RecoveryNewPassword:
		return "newPassword"
	case RecoverySuccess:
		return "success"
	default:
		return fmt.Sprintf("RecoveryStep(%d)", int(s))
	}
}

// RecoveryForm holds every field the wizard collects.
type RecoveryForm struct {
	AccountNumber string
	BirthDate     string
	Code          string
	NewPassword   string
	Confirmation  string
}

func (f RecoveryForm) identifier() remote.Identifier {
	return remote.AccountNumberIdentifier(f.AccountNumber)
}

// Recovery drives input -> code -> newPassword -> success.
type Recovery struct {
	cursor

	hook *hooks.Recovery
	opts Options
	now  func() time.Time
	pol  password.Policy
	log  zerolog.Logger

	step RecoveryStep
	form RecoveryForm
}

func NewRecovery(hook *hooks.Recovery, opts Options) *Recovery {
	return &Recovery{
		hook: hook,
		opts: opts,
		now:  opts.clock(),
		pol:  opts.policy(),
		log:  opts.logger("flows.recovery"),
		step: RecoveryInput,
	}
}

func (r *Recovery) Step() RecoveryStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step
}

// Error returns the current step error, or "" when there is none.
func (r *Recovery) Error() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recovery) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Form returns a copy of the entered data.
func (r *Recovery) Form() RecoveryForm {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

func (r *Recovery) edit(fn func(*RecoveryForm)) {
	r.mu.Lock()
	fn(&r.form)
	r.mu.Unlock()
}

func (r *Recovery) SetAccountNumber(v string) {
	r.edit(func(f *RecoveryForm) { f.AccountNumber = strings.TrimSpace(v) })
}

func (r *Recovery) SetBirthDate(v string) {
	r.edit(func(f *RecoveryForm) { f.BirthDate = strings.TrimSpace(v) })
}

func (r *Recovery) SetCode(v string) {
	r.edit(func(f *RecoveryForm) { f.Code = strings.TrimSpace(v) })
}

func (r *Recovery) SetNewPassword(v string) {
	r.edit(func(f *RecoveryForm) { f.NewPassword = v })
}

func (r *Recovery) SetConfirmation(v string) {
	r.edit(func(f *RecoveryForm) { f.Confirmation = v })
}

// Submit validates the current step and runs its operation. It reports
// whether the wizard advanced.
func (r *Recovery) Submit(ctx context.Context) bool {
	r.mu.Lock()
	if !r.idle() || r.step == RecoverySuccess {
		r.mu.Unlock()
		return false
	}
	step, form := r.step, r.form
	if msg := r.validate(step, form); msg != "" {
		r.err = msg
		r.mu.Unlock()
		return false
	}
	ticket := r.begin()
	r.mu.Unlock()

	failure := r.invoke(ctx, step, form)

	r.mu.Lock()
	applied := r.current(ticket)
	advanced := r.finish(ticket, messageOf(failure))
	if advanced {
		r.step = r.next(step)
	}
	r.mu.Unlock()

	// Discarded results are neither counted nor audited.
	if applied {
		r.record(ctx, step, failure)
	}
	return advanced
}

func (r *Recovery) validate(step RecoveryStep, f RecoveryForm) string {
	switch step {
	case RecoveryInput:
		return firstError(
			field{f.AccountNumber, accountNumberRules()},
			field{f.BirthDate, birthDateRules(r.now)},
		)
	case RecoveryCode:
		return firstError(field{f.Code, codeRules()})
	case RecoveryNewPassword:
		return firstError(field{f.NewPassword, passwordRules(r.pol, f.Confirmation)})
	case RecoverySuccess:
		return ""
	default:
		return "Unknown step."
	}
}

func (r *Recovery) invoke(ctx context.Context, step RecoveryStep, f RecoveryForm) *apperr.Error {
	switch step {
	case RecoveryInput:
		return r.hook.SendRecoveryCode(ctx, remote.RecoveryRequest{
			Identifier: f.identifier(),
			BirthDate:  f.BirthDate,
		}).Err()
	case RecoveryCode:
		res := r.hook.VerifyCode(ctx, remote.VerifyCodeRequest{Identifier: f.identifier(), Code: f.Code})
		if res.IsErr() {
			return res.Err()
		}
		if !res.Value().Valid {
			return apperr.Validation("The code is not valid.")
		}
		return nil
	case RecoveryNewPassword:
		return r.hook.ResetPassword(ctx, remote.ResetPasswordRequest{
			Identifier:  f.identifier(),
			Code:        f.Code,
			NewPassword: f.NewPassword,
		}).Err()
	case RecoverySuccess:
		return nil
	default:
		return apperr.Unknown("")
	}
}

func (r *Recovery) next(step RecoveryStep) RecoveryStep {
	switch step {
	case RecoveryInput:
		return RecoveryCode
	case RecoveryCode:
		return RecoveryNewPassword
	case RecoveryNewPassword:
		return RecoverySuccess
	case RecoverySuccess:
		return RecoverySuccess
	default:
		return step
	}
}

func (r *Recovery) record(ctx context.Context, step RecoveryStep, failure *apperr.Error) {
	if failure != nil {
		r.opts.Metrics.Inc(metrics.RecoveryFailure)
		r.log.Debug().Str("step", step.String()).Str("code", string(failure.Code())).Msg("recovery step failed")
		r.opts.emit(ctx, audit.EventRecoveryStep, step.String(), failure)
		return
	}
	switch step {
	case RecoveryInput:
		r.opts.Metrics.Inc(metrics.RecoveryCodeSent)
	case RecoveryCode:
		r.opts.Metrics.Inc(metrics.RecoveryCodeVerified)
	case RecoveryNewPassword:
		r.opts.Metrics.Inc(metrics.RecoveryPasswordReset)
		r.opts.emit(ctx, audit.EventRecoveryCompleted, "", nil)
		return
	case RecoverySuccess:
		return
	}
	r.opts.emit(ctx, audit.EventRecoveryStep, step.String(), nil)
}

// ResendCode sends a new recovery code. It is available on the code step
// only and never moves the cursor.
func (r *Recovery) ResendCode(ctx context.Context) bool {
	r.mu.Lock()
	if !r.idle() || r.step != RecoveryCode {
		r.mu.Unlock()
		return false
	}
	form := r.form
	ticket := r.begin()
	r.mu.Unlock()

	failure := r.invoke(ctx, RecoveryInput, form)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.finish(ticket, messageOf(failure)) {
		return false
	}
	r.form.Code = ""
	return true
}

// Back moves one step toward the start. Leaving the code step discards the
// entered code. It reports whether the cursor moved.
func (r *Recovery) Back() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return false
	}
	switch r.step {
	case RecoveryInput, RecoverySuccess:
		return false
	case RecoveryCode:
		r.form.Code = ""
		r.step = RecoveryInput
	case RecoveryNewPassword:
		r.step = RecoveryCode
	default:
		return false
	}
	r.retreat()
	return true
}

// OnSuccess runs the callback given in Options once, and only on the
// success step. It reports whether the callback ran.
func (r *Recovery) OnSuccess() bool {
	r.mu.Lock()
	if r.step != RecoverySuccess || r.fired || r.disposed {
		r.mu.Unlock()
		return false
	}
	r.fired = true
	cb := r.opts.OnSuccess
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
	return true
}

// Dispose detaches the controller. Results still in flight are ignored.
func (r *Recovery) Dispose() {
	r.mu.Lock()
	r.dispose()
	r.mu.Unlock()
}

func messageOf(failure *apperr.Error) string {
	if failure == nil {
		return ""
	}
	return failure.Message()
}
