package hooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/apperr"
)

// State is the observable hook state. An empty Error means no error.
type State struct {
	IsLoading bool
	Error     string
}

// Options configures a hook. OnChange, when set, is called after every state
// transition with the new state; it must not call back into the hook.
type Options struct {
	Logger   *zerolog.Logger
	OnChange func(State)
}

type tracker struct {
	mu       sync.Mutex
	state    State
	onChange func(State)
	log      zerolog.Logger
}

func newTracker(component string, opts Options) *tracker {
	l := zerolog.Nop()
	if opts.Logger != nil {
		l = *opts.Logger
	}
	return &tracker{
		onChange: opts.OnChange,
		log:      l.With().Str("component", component).Logger(),
	}
}

func (t *tracker) set(next State) {
	t.mu.Lock()
	t.state = next
	notify := t.onChange
	t.mu.Unlock()

	if notify != nil {
		notify(next)
	}
}

func (t *tracker) snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *tracker) clearError() {
	t.mu.Lock()
	if t.state.Error == "" {
		t.mu.Unlock()
		return
	}
	next := State{IsLoading: t.state.IsLoading}
	t.mu.Unlock()
	t.set(next)
}

func errEmptyResponse(op string) *apperr.Error {
	return apperr.Server("The server returned an empty response.").WithCause(fmt.Errorf("%s: nil response", op))
}

// run executes call under the tracker's loading and error bookkeeping.
func run[T any](ctx context.Context, t *tracker, op string, call func(context.Context) (*T, error)) (res apperr.Result[*T]) {
	t.set(State{IsLoading: true})

	defer func() {
		if r := recover(); r != nil {
			t.log.Error().Interface("panic", r).Str("op", op).Msg("auth operation panicked")
			res = apperr.Fail[*T](apperr.Unknown("").WithCause(fmt.Errorf("%s: panic: %v", op, r)))
		}

		final := State{}
		if failure := res.Err(); failure != nil {
			final.Error = failure.Message()
			t.log.Debug().Str("op", op).Str("code", string(failure.Code())).Msg("auth operation failed")
		}
		t.set(final)
	}()

	value, err := call(ctx)
	if err != nil {
		return apperr.Fail[*T](apperr.From(err))
	}
	if value == nil {
		return apperr.Fail[*T](errEmptyResponse(op))
	}
	return apperr.Ok(value)
}
