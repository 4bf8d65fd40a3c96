// Package retry provides backoff policies for transient failures such as
// remote clones.
package retry

import (
	"context"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/foundation/normalization"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
)

// BackoffMode selects how the delay grows between attempts.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

var backoffModes = normalization.NewEnum("retry backoff", map[string]BackoffMode{
	"fixed":       BackoffFixed,
	"linear":      BackoffLinear,
	"exponential": BackoffExponential,
}, BackoffLinear)

// ParseBackoffMode validates raw. Empty input means linear.
func ParseBackoffMode(raw string) (BackoffMode, error) {
	return backoffModes.Parse(raw)
}

// Policy encapsulates retry/backoff settings. It is immutable after
// construction.
type Policy struct {
	Mode       BackoffMode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // attempts after the first failure
}

// DefaultPolicy returns linear backoff, 1s initial, 30s cap, 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 2}
}

// NewPolicy builds a policy from raw settings; zero values fall back to the
// defaults and a negative retry count keeps the default.
func NewPolicy(mode BackoffMode, initial, maxDuration time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDuration > 0 {
		p.Max = maxDuration
	}
	if mode != "" {
		p.Mode = backoffModes.Normalize(string(mode))
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the delay before the given retry (1-based).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case BackoffFixed:
		return p.Initial
	case BackoffExponential:
		d = p.Initial * (1 << (retryCount - 1))
	default:
		d = time.Duration(retryCount) * p.Initial
	}
	if d > p.Max || d <= 0 {
		return p.Max
	}
	return d
}

// Validate reports a ConfigError when the policy cannot be applied.
func (p Policy) Validate() error {
	switch {
	case p.Initial <= 0:
		return ferrors.ConfigError("retry initial delay must be positive").WithContext("initial", p.Initial.String()).Build()
	case p.Max <= 0:
		return ferrors.ConfigError("retry max delay must be positive").WithContext("max", p.Max.String()).Build()
	case p.MaxRetries < 0:
		return ferrors.ConfigError("retry count cannot be negative").WithContext("retries", p.MaxRetries).Build()
	}
	return nil
}

// Transient reports whether err is worth retrying: git transport failures
// are, configuration and filesystem problems are not.
func Transient(err error) bool {
	return ferrors.HasCategory(err, ferrors.CategoryGit)
}

// Do calls fn until it succeeds, fails with a non-transient error, the
// retries are used up or ctx is done.
func (p Policy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil || !Transient(err) || attempt >= p.MaxRetries {
			return err
		}
		delay := p.Delay(attempt + 1)
		slog.Warn("Transient failure; retrying",
			slog.String("operation", op),
			slog.Int("retry", attempt+1),
			logfields.DurationMS(float64(delay.Milliseconds())),
			logfields.Error(err))
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
}
