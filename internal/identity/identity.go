// Package identity answers "who is calling" for the coordination services.
package identity

import (
	"context"
	"errors"
)

// ErrNotSignedIn is returned when no authenticated user is attached.
var ErrNotSignedIn = errors.New("not signed in")

// Provider returns the current authenticated user id.
type Provider interface {
	EnsureSignedIn(ctx context.Context) (string, error)
}

type ctxKey struct{}

// WithUser attaches uid to ctx.
func WithUser(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, uid)
}

// FromContext returns the uid attached by WithUser.
func FromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(ctxKey{}).(string)
	return uid, ok && uid != ""
}

// ContextProvider reads the identity the auth middleware put on the request context.
type ContextProvider struct{}

func (ContextProvider) EnsureSignedIn(ctx context.Context) (string, error) {
	uid, ok := FromContext(ctx)
	if !ok {
		return "", ErrNotSignedIn
	}
	return uid, nil
}

// Static always reports the same user. An empty Static is signed out.
type Static string

func (s Static) EnsureSignedIn(context.Context) (string, error) {
	if s == "" {
		return "", ErrNotSignedIn
	}
	return string(s), nil
}
