package handlers

import (
	"encoding/json"
	"fmt"

	"babayaga/internal/domain"
	"babayaga/pkg/api"
)

// TypedHandlerFunc works on an already decoded payload.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc needs no payload (STOP, INTERACT).
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload decodes and validates T before calling handler.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		var payload T

		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Result{}, fmt.Errorf("invalid payload format: %w", err)
		}

		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, fmt.Errorf("validation failed: %w", err)
			}
		}

		return handler(ctx, payload)
	}
}

// WithEmptyPayload ignores whatever payload came with the command.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

// RequireActor rejects commands sent without an acting entity.
func RequireActor(next HandlerFunc) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		if ctx.Actor.IsNil() {
			return Result{}, fmt.Errorf("command needs a token: %w", domain.ErrNoSuchEntity)
		}
		return next(ctx, raw)
	}
}
