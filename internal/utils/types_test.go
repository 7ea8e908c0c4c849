package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	t.Run("OverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "options.yaml")
		raw := []byte("path: /tmp/test.db\nbuffer_pool_size: 8\nreplacer: lru\nlog:\n  level: debug\n")
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		opts, err := LoadOptions(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/test.db", opts.Path)
		assert.Equal(t, 8, opts.BufferPoolSize)
		assert.Equal(t, ReplacerLRU, opts.Replacer)
		assert.Equal(t, "debug", opts.Log.Level)
		assert.Equal(t, 1, opts.InitialPages, "unset field keeps default")
	})

	t.Run("InvalidPoolSize", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "options.yaml")
		require.NoError(t, os.WriteFile(path, []byte("buffer_pool_size: -1\n"), 0o644))

		_, err := LoadOptions(path)
		assert.ErrorIs(t, err, ErrInvalidPoolSize)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
