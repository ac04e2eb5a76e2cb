package session

import (
	"context"

	dErrors "moortracker/pkg/domain-errors"
)

type storeKey struct{}

// ErrNoStore is raised when the session store is read outside a lifecycle scope.
var ErrNoStore = &dErrors.Error{
	Code:    dErrors.CodeNotInitialized,
	Message: "session store used outside of an auth lifecycle scope",
}

// NewContext returns a copy of ctx carrying store.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// Lookup returns the store carried by ctx, if any.
func Lookup(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(storeKey{}).(*Store)
	return store, ok && store != nil
}

// FromContext returns the store carried by ctx.
// It panics with ErrNoStore when there is none: a missing store is a wiring bug.
func FromContext(ctx context.Context) *Store {
	store, ok := Lookup(ctx)
	if !ok {
		panic(ErrNoStore)
	}
	return store
}
