// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Func is retried until it succeeds, returns a permanent error or the
// attempts run out.
type Func func(ctx context.Context) error

type Backoff func(attempt int) time.Duration

func Fixed(d time.Duration) Backoff {
	return func(int) time.Duration { return d }
}

// Exponential doubles base per attempt, capped at max when max > 0.
func Exponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base << attempt
		if d <= 0 || (max > 0 && d > max) {
			return max
		}
		return d
	}
}

type config struct {
	attempts int
	backoff  Backoff
	jitter   bool
	retryIf  func(error) bool
}

type Option func(*config)

func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithJitter randomizes each wait in [d/2, d).
func WithJitter() Option {
	return func(c *config) { c.jitter = true }
}

func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

var errPermanent = errors.New("permanent")

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }
func (e permanentError) Is(target error) bool {
	return target == errPermanent
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Retryable reports whether Do would retry err by default.
func Retryable(err error) bool {
	return err != nil &&
		!errors.Is(err, errPermanent) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// Do runs fn, waiting between failed attempts. It returns the last error,
// unwrapped from Permanent, or the context error when ctx ends first.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	cfg := &config{
		attempts: 3,
		backoff:  Exponential(100*time.Millisecond, 5*time.Second),
		retryIf:  Retryable,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var err error
	for attempt := 0; attempt < cfg.attempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if !cfg.retryIf(err) || attempt == cfg.attempts-1 {
			return err
		}

		wait := cfg.backoff(attempt)
		if cfg.jitter && wait > 1 {
			wait = wait/2 + rand.N(wait/2)
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
