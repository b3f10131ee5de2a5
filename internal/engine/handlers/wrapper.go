package handlers

import (
	"encoding/json"
	"fmt"

	"spaceship-server/pkg/api"
)

// TypedHandlerFunc is a "clean" handler working on a decoded payload T.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc is a handler that needs no payload data.
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload lifts a typed handler into a standard HandlerFunc,
// taking care of unmarshalling and validation.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		var payload T

		if err := json.Unmarshal(raw, &payload); err != nil {
			return Result{}, fmt.Errorf("invalid payload format: %w", err)
		}

		// Automatic validation when T implements api.Validator.
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, fmt.Errorf("validation failed: %w", err)
			}
		}

		return handler(ctx, payload)
	}
}

// WithEmptyPayload wraps commands that carry no data.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}
