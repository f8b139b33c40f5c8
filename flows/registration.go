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

// RegistrationStep is the position of the sign-up wizard.
type RegistrationStep int

const (
	RegistrationIdentification RegistrationStep = iota
	RegistrationVerification
	RegistrationAccountSetup
	RegistrationOTP
	RegistrationSuccess
)

func (s RegistrationStep) String() string {
	switch s {
	case RegistrationIdentification:
		return "identification"
	case RegistrationVerification:
		return "verification"
	case RegistrationAccountSetup:
		return "accountSetup"
	case RegistrationOTP:
		return "otp"
	case RegistrationSuccess:
		return "success"
	default:
		return fmt.Sprintf("RegistrationStep(%d)", int(s))
	}
}

// RegistrationForm holds every field the wizard collects.
type RegistrationForm struct {
	DocumentNumber string
	BirthDate      string
	Email          string
	Phone          string
	Username       string
	Password       string
	Confirmation   string
	Code           string
}

// Client is what the bank returned about the identified client.
type Client struct {
	Name        string
	MaskedEmail string
	MaskedPhone string
}

// Registration drives identification -> verification -> accountSetup ->
// otp -> success.
type Registration struct {
	cursor

	hook *hooks.Registration
	opts Options
	now  func() time.Time
	pol  password.Policy
	log  zerolog.Logger

	step   RegistrationStep
	form   RegistrationForm
	client Client
	userID string
}

func NewRegistration(hook *hooks.Registration, opts Options) *Registration {
	return &Registration{
		hook: hook,
		opts: opts,
		now:  opts.clock(),
		pol:  opts.policy(),
		log:  opts.logger("flows.registration"),
		step: RegistrationIdentification,
	}
}

func (r *Registration) Step() RegistrationStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step
}

func (r *Registration) Error() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Registration) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Registration) Form() RegistrationForm {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

// Client returns the details learned on the identification step.
func (r *Registration) Client() Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client
}

// UserID is set once the account was created.
func (r *Registration) UserID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userID
}

func (r *Registration) edit(fn func(*RegistrationForm)) {
	r.mu.Lock()
	fn(&r.form)
	r.mu.Unlock()
}

func (r *Registration) SetDocumentNumber(v string) {
	r.edit(func(f *RegistrationForm) { f.DocumentNumber = strings.ToUpper(strings.TrimSpace(v)) })
}

func (r *Registration) SetBirthDate(v string) {
	r.edit(func(f *RegistrationForm) { f.BirthDate = strings.TrimSpace(v) })
}

func (r *Registration) SetEmail(v string) {
	r.edit(func(f *RegistrationForm) { f.Email = strings.TrimSpace(v) })
}

func (r *Registration) SetPhone(v string) {
	r.edit(func(f *RegistrationForm) { f.Phone = strings.ReplaceAll(strings.TrimSpace(v), " ", "") })
}

func (r *Registration) SetUsername(v string) {
	r.edit(func(f *RegistrationForm) { f.Username = strings.TrimSpace(v) })
}

func (r *Registration) SetPassword(v string) {
	r.edit(func(f *RegistrationForm) { f.Password = v })
}

func (r *Registration) SetConfirmation(v string) {
	r.edit(func(f *RegistrationForm) { f.Confirmation = v })
}

func (r *Registration) SetCode(v string) {
	r.edit(func(f *RegistrationForm) { f.Code = strings.TrimSpace(v) })
}

// stepResult is what a successful operation hands back to the controller.
type stepResult struct {
	client *Client
	userID string
}

// Submit validates the current step and runs its operation. It reports
// whether the wizard advanced.
func (r *Registration) Submit(ctx context.Context) bool {
	r.mu.Lock()
	if !r.idle() || r.step == RegistrationSuccess {
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

	out, failure := r.invoke(ctx, step, form)

	r.mu.Lock()
	applied := r.current(ticket)
	advanced := r.finish(ticket, messageOf(failure))
	if advanced {
		if out.client != nil {
			r.client = *out.client
		}
		if out.userID != "" {
			r.userID = out.userID
		}
		r.step = r.next(step)
	}
	r.mu.Unlock()

	if applied {
		r.record(ctx, step, failure)
	}
	return advanced
}

func (r *Registration) validate(step RegistrationStep, f RegistrationForm) string {
	switch step {
	case RegistrationIdentification:
		return firstError(
			field{f.DocumentNumber, documentRules()},
			field{f.BirthDate, birthDateRules(r.now)},
		)
	case RegistrationVerification:
		return firstError(
			field{f.Email, emailRules()},
			field{f.Phone, phoneRules()},
		)
	case RegistrationAccountSetup:
		return firstError(
			field{f.Username, usernameRules()},
			field{f.Password, passwordRules(r.pol, f.Confirmation)},
		)
	case RegistrationOTP:
		return firstError(field{f.Code, codeRules()})
	case RegistrationSuccess:
		return ""
	default:
		return "Unknown step."
	}
}

func (r *Registration) invoke(ctx context.Context, step RegistrationStep, f RegistrationForm) (stepResult, *apperr.Error) {
	switch step {
	case RegistrationIdentification:
		res := r.hook.ValidateClient(ctx, remote.ValidateClientRequest{
			DocumentNumber: f.DocumentNumber,
			BirthDate:      f.BirthDate,
		})
		if res.IsErr() {
			return stepResult{}, res.Err()
		}
		v := res.Value()
		if !v.Valid {
			return stepResult{}, apperr.NotFound("We couldn't find a client with these details.")
		}
		if v.AlreadyEnrolled {
			return stepResult{}, apperr.OperationNotAllowed("This client already has an account. Sign in instead.")
		}
		return stepResult{client: &Client{Name: v.ClientName, MaskedEmail: v.MaskedEmail, MaskedPhone: v.MaskedPhone}}, nil
	case RegistrationVerification:
		return stepResult{}, r.hook.ResendCode(ctx, f.Email).Err()
	case RegistrationAccountSetup:
		res := r.hook.Register(ctx, remote.RegisterRequest{
			DocumentNumber: f.DocumentNumber,
			BirthDate:      f.BirthDate,
			Email:          f.Email,
			Phone:          f.Phone,
			Username:       f.Username,
			Password:       f.Password,
			Name:           r.clientName(),
		})
		if res.IsErr() {
			return stepResult{}, res.Err()
		}
		return stepResult{userID: res.Value().UserID}, nil
	case RegistrationOTP:
		res := r.hook.VerifyEmail(ctx, remote.VerifyEmailRequest{Identifier: f.Email, Code: f.Code})
		if res.IsErr() {
			return stepResult{}, res.Err()
		}
		if !res.Value().Verified {
			return stepResult{}, apperr.Validation("The code is not valid.")
		}
		return stepResult{}, nil
	case RegistrationSuccess:
		return stepResult{}, nil
	default:
		return stepResult{}, apperr.Unknown("")
	}
}

func (r *Registration) clientName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client.Name
}

func (r *Registration) next(step RegistrationStep) RegistrationStep {
	switch step {
	case RegistrationIdentification:
		return RegistrationVerification
	case RegistrationVerification:
		return RegistrationAccountSetup
	case RegistrationAccountSetup:
		return RegistrationOTP
	case RegistrationOTP:
		return RegistrationSuccess
	case RegistrationSuccess:
		return RegistrationSuccess
	default:
		return step
	}
}

func (r *Registration) record(ctx context.Context, step RegistrationStep, failure *apperr.Error) {
	if failure != nil {
		r.opts.Metrics.Inc(metrics.RegistrationFailure)
		r.log.Debug().Str("step", step.String()).Str("code", string(failure.Code())).Msg("registration step failed")
		r.opts.emit(ctx, audit.EventRegistrationStep, step.String(), failure)
		return
	}
	switch step {
	case RegistrationIdentification:
		r.opts.Metrics.Inc(metrics.RegistrationClientValidated)
	case RegistrationVerification:
		r.opts.Metrics.Inc(metrics.RegistrationCodeSent)
	case RegistrationAccountSetup:
		r.opts.Metrics.Inc(metrics.RegistrationAccountCreated)
	case RegistrationOTP:
		r.opts.Metrics.Inc(metrics.RegistrationEmailVerified)
		r.opts.emit(ctx, audit.EventRegistrationComplete, "", nil)
		return
	case RegistrationSuccess:
		return
	}
	r.opts.emit(ctx, audit.EventRegistrationStep, step.String(), nil)
}

// ResendCode sends a new email code. It is available on the otp step only.
func (r *Registration) ResendCode(ctx context.Context) bool {
	r.mu.Lock()
	if !r.idle() || r.step != RegistrationOTP {
		r.mu.Unlock()
		return false
	}
	email := r.form.Email
	ticket := r.begin()
	r.mu.Unlock()

	failure := r.hook.ResendCode(ctx, email).Err()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.finish(ticket, messageOf(failure)) {
		return false
	}
	r.form.Code = ""
	return true
}

// Back moves one step toward the start. Leaving the otp step discards the
// entered code. It reports whether the cursor moved.
func (r *Registration) Back() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return false
	}
	switch r.step {
	case RegistrationIdentification, RegistrationSuccess:
		return false
	case RegistrationVerification:
		r.step = RegistrationIdentification
	case RegistrationAccountSetup:
		r.step = RegistrationVerification
	case RegistrationOTP:
		r.form.Code = ""
		r.step = RegistrationAccountSetup
	default:
		return false
	}
	r.retreat()
	return true
}

// OnSuccess runs the callback given in Options once, and only on the
// success step. It reports whether the callback ran.
func (r *Registration) OnSuccess() bool {
	r.mu.Lock()
	if r.step != RegistrationSuccess || r.fired || r.disposed {
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
func (r *Registration) Dispose() {
	r.mu.Lock()
	r.dispose()
	r.mu.Unlock()
}
