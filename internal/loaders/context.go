package loaders

import (
	"context"

	"github.com/pkg/errors"
)

type registryKey struct{}

// ErrNoRegistry is returned by FromContext when the execution was started
// without a registry.
var ErrNoRegistry = errors.New("loaders: no registry in context")

// WithRegistry returns a copy of ctx carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// FromContext returns the registry of the current execution.
func FromContext(ctx context.Context) (*Registry, error) {
	r, ok := ctx.Value(registryKey{}).(*Registry)
	if !ok || r == nil {
		return nil, ErrNoRegistry
	}
	return r, nil
}
