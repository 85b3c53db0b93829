package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
)

func TestFileStorage_MissingFile_IsEmpty(t *testing.T) {
	s := config.NewFileStorage(filepath.Join(t.TempDir(), "no-such-file.json"))

	v, ok, err := s.Get(config.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFileStorage_SetGetDelete_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json") // вложенная директория
	s := config.NewFileStorage(p)

	require.NoError(t, s.Set(config.TokenKey, "token-1"))

	// новый экземпляр читает то же самое с диска
	v, ok, err := config.NewFileStorage(p).Get(config.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-1", v)

	require.NoError(t, s.Delete(config.TokenKey))
	_, ok, err = s.Get(config.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorage_Delete_MissingFile_NoError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	s := config.NewFileStorage(p)

	require.NoError(t, s.Delete(config.TokenKey))
	_, err := os.Stat(p)
	assert.True(t, os.IsNotExist(err), "delete must not create the file")
}

func TestFileStorage_CorruptJSON_ReturnsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{not-json"), 0o600))

	_, _, err := config.NewFileStorage(p).Get(config.TokenKey)
	require.Error(t, err)
}

func TestFileStorage_NullFile_IsEmptyAndWritable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("null"), 0o600))
	s := config.NewFileStorage(p)

	_, ok, err := s.Get(config.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		require.NoError(t, s.Set(config.TokenKey, "tok"))
	})
	v, ok, err := config.NewFileStorage(p).Get(config.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, os.WriteFile(p, []byte("null"), 0o600))
	assert.NoError(t, s.Delete(config.TokenKey))
}

func TestFileStorage_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	p := filepath.Join(t.TempDir(), "dir", "credentials.json")
	require.NoError(t, config.NewFileStorage(p).Set(config.TokenKey, "x"))

	st, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	dst, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dst.Mode().Perm())
}
