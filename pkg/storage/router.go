package storage

import (
	"context"
	"fmt"
)

// Router dispatches locations to sources by scheme.
// Plain paths and file:// locations go to the fallback source.
type Router struct {
	fallback Source
	schemes  map[string]Source
}

// NewRouter returns a Router that sends scheme-less locations to fallback.
func NewRouter(fallback Source) *Router {
	return &Router{fallback: fallback, schemes: make(map[string]Source)}
}

// Handle registers src for locations with the given scheme.
func (r *Router) Handle(scheme string, src Source) *Router {
	r.schemes[scheme] = src
	return r
}

// Get implements Source.
func (r *Router) Get(ctx context.Context, location string) (*Object, error) {
	scheme := Scheme(location)
	if scheme == "" || scheme == "file" {
		return r.fallback.Get(ctx, location)
	}
	src, ok := r.schemes[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
	return src.Get(ctx, location)
}

var _ Source = (*Router)(nil)
