package flows

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/password"
)

// Options are shared by both controllers. Every field is optional.
type Options struct {
	Policy    password.Policy
	Metrics   *metrics.Metrics
	Audit     audit.Emitter
	Logger    *zerolog.Logger
	Now       func() time.Time
	OnSuccess func()
}

func (o Options) logger(component string) zerolog.Logger {
	l := zerolog.Nop()
	if o.Logger != nil {
		l = *o.Logger
	}
	return l.With().Str("component", component).Logger()
}

func (o Options) clock() func() time.Time {
	if o.Now == nil {
		return time.Now
	}
	return o.Now
}

func (o Options) policy() password.Policy {
	if o.Policy.MinLength <= 0 {
		p := o.Policy
		p.MinLength = password.DefaultPolicy().MinLength
		return p
	}
	return o.Policy
}

func (o Options) emit(ctx context.Context, eventType, step string, failure *apperr.Error) {
	if o.Audit == nil {
		return
	}
	ev := audit.NewEvent(eventType, failure == nil)
	if failure != nil {
		ev.ErrorCode = string(failure.Code())
	}
	if step != "" {
		ev.Metadata = map[string]string{"step": step}
	}
	o.Audit.Emit(ctx, ev)
}
