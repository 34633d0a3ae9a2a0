// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fallback implements the try-remote, validate, fall-back-local
// pattern shared by the expansion and rating stages: a remote capability
// is attempted when available, its result is accepted only when valid,
// and every disqualifying condition routes to a local computation.
package fallback

import "context"

// Try runs remote when available and returns its result when remote
// reports no error and valid accepts the value. In every other case
// (capability unavailable, remote error, invalid value, or a panic inside
// remote) it returns local(). The second return reports whether the
// remote result was used. Errors never escape to the caller.
func Try[T any](ctx context.Context, available bool, remote func(context.Context) (T, error), valid func(T) bool, local func() T) (T, bool) {
	if available {
		if v, err := tryRemote(ctx, remote); err == nil && valid(v) {
			return v, true
		}
	}
	return local(), false
}

// tryRemote invokes remote, converting a panic into an error so a
// misbehaving backend degrades instead of crashing the pipeline.
func tryRemote[T any](ctx context.Context, remote func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return remote(ctx)
}

// panicError wraps a recovered panic value.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return "remote call panicked"
}
