package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"fs":     fs,
		"memory": NewMemory(),
	}
}

func TestPutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			info, err := s.Put(ctx, "Classic Pancakes.pdf", bytes.NewReader([]byte("first")), PutOptions{ContentType: "application/pdf"})
			require.NoError(t, err)
			assert.Equal(t, int64(5), info.Size)
			assert.Equal(t, "application/pdf", info.ContentType)

			_, err = s.Put(ctx, "Classic Pancakes.pdf", bytes.NewReader([]byte("second!")), PutOptions{})
			require.NoError(t, err, "put must overwrite")

			_, rc, err := s.Get(ctx, "Classic Pancakes.pdf")
			require.NoError(t, err)
			data, _ := io.ReadAll(rc)
			rc.Close()
			assert.Equal(t, "second!", string(data))
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.Get(context.Background(), "nope.pdf")
			assert.True(t, errors.Is(err, ErrNotExist), "got %v", err)
		})
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"b.pdf", "a.pdf", "other/c.pdf"} {
				_, err := s.Put(ctx, k, bytes.NewReader([]byte(k)), PutOptions{})
				require.NoError(t, err)
			}
			all, err := s.List(ctx, "")
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "a.pdf", all[0].Key)

			sub, err := s.List(ctx, "other/")
			require.NoError(t, err)
			require.Len(t, sub, 1)
			assert.Equal(t, "other/c.pdf", sub[0].Key)
		})
	}
}

func TestInvalidKeys(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"", "/abs.pdf", "../escape.pdf", "a//b.pdf"} {
				_, err := s.Put(context.Background(), k, bytes.NewReader(nil), PutOptions{})
				assert.ErrorIs(t, err, ErrInvalidKey, "key %q", k)
			}
		})
	}
}

func TestFilesystemLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystem(root)
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "favorites.pdf", bytes.NewReader([]byte("%PDF")), PutOptions{})
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "favorites.pdf", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(root, "favorites.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, s.Driver())

	s, err = Open(ctx, Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, s.Driver())

	_, err = Open(ctx, Config{Driver: DriverS3})
	assert.Error(t, err, "s3 without bucket must fail")

	_, err = Open(ctx, Config{Driver: "ftp"})
	assert.Error(t, err)
}
