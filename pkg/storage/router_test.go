package storage_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

func named(name string) storage.Source {
	return storage.SourceFunc(func(_ context.Context, location string) (*storage.Object, error) {
		return &storage.Object{Location: location, Name: name}, nil
	})
}

func TestRouter_Get(t *testing.T) {
	t.Parallel()

	r := storage.NewRouter(named("local")).Handle(storage.S3Scheme, named("s3"))
	ctx := context.Background()

	tests := []struct {
		location string
		want     string
	}{
		{"files/a.pdf", "local"},
		{"file:///tmp/a.pdf", "local"},
		{"s3://bucket/a.pdf", "s3"},
		{"S3://bucket/a.pdf", "s3"},
	}

	for _, tt := range tests {
		obj, err := r.Get(ctx, tt.location)
		require.NoError(t, err, tt.location)
		require.Equal(t, tt.want, obj.Name, tt.location)
	}

	_, err := r.Get(ctx, "gs://bucket/a.pdf")
	require.ErrorIs(t, err, storage.ErrUnsupportedScheme)
}

func TestCached_Get(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	src := storage.SourceFunc(func(_ context.Context, location string) (*storage.Object, error) {
		calls.Add(1)
		if location == "missing.pdf" {
			return nil, storage.ErrNotFound
		}
		return &storage.Object{Location: location, Name: location, Data: []byte("shared")}, nil
	})

	c := storage.NewCached(src)
	ctx := context.Background()

	first, err := c.Get(ctx, "brochure.pdf")
	require.NoError(t, err)
	second, err := c.Get(ctx, "brochure.pdf")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, int32(1), calls.Load())

	for range 2 {
		_, err = c.Get(ctx, "missing.pdf")
		require.ErrorIs(t, err, storage.ErrNotFound)
	}
	require.Equal(t, int32(3), calls.Load(), "errors are not cached")
}
