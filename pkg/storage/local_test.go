package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

func TestLocal_Get(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Ann.pdf"), []byte("%PDF-1.4"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "folder"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.bin"), make([]byte, 32), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.xyz"), []byte("plain words"), 0o600))

	src := storage.NewLocal(root, 16)
	ctx := context.Background()

	t.Run("relative path", func(t *testing.T) {
		t.Parallel()

		obj, err := src.Get(ctx, "Ann.pdf")
		require.NoError(t, err)
		require.Equal(t, "Ann.pdf", obj.Name)
		require.Equal(t, "application/pdf", obj.ContentType)
		require.Equal(t, []byte("%PDF-1.4"), obj.Data)
		require.Equal(t, 8, obj.Size())
	})

	t.Run("absolute path and file scheme", func(t *testing.T) {
		t.Parallel()

		abs := filepath.Join(root, "Ann.pdf")
		obj, err := storage.NewLocal(root, 0).Get(ctx, "file://"+abs)
		require.NoError(t, err)
		require.Equal(t, "Ann.pdf", obj.Name)
	})

	t.Run("unknown extension is octet-stream", func(t *testing.T) {
		t.Parallel()

		obj, err := src.Get(ctx, "notes.xyz")
		require.NoError(t, err)
		require.Equal(t, storage.MIMEOctetStream, obj.ContentType)
	})

	t.Run("stays inside root", func(t *testing.T) {
		t.Parallel()

		for _, location := range []string{
			"../outside.txt",
			"sub/../../outside.txt",
			filepath.Join(filepath.Dir(root), "outside.txt"),
			"file://" + filepath.Join(filepath.Dir(root), "outside.txt"),
		} {
			_, err := src.Get(ctx, location)
			require.ErrorIs(t, err, storage.ErrAccessDenied, location)
		}
	})

	t.Run("dot segments inside root", func(t *testing.T) {
		t.Parallel()

		obj, err := src.Get(ctx, "folder/../Ann.pdf")
		require.NoError(t, err)
		require.Equal(t, "Ann.pdf", obj.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := src.Get(ctx, "Bob.pdf")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := src.Get(ctx, "folder")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		_, err := src.Get(ctx, "big.bin")
		require.ErrorIs(t, err, storage.ErrTooLarge)
	})

	t.Run("empty location", func(t *testing.T) {
		t.Parallel()

		_, err := src.Get(ctx, "")
		require.ErrorIs(t, err, storage.ErrInvalidLocation)
	})
}
