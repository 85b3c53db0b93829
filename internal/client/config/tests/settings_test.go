package tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_NoFile_UsesDefaults(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAPIURL, s.APIURL)
	assert.Equal(t, config.DefaultStorageURL, s.StorageURL)
	assert.Equal(t, config.DefaultPlaceholderImage, s.PlaceholderImage)
	assert.Equal(t, "pt-BR", s.Locale)
	assert.Equal(t, "R$", s.CurrencySymbol)
	assert.Equal(t, 10*time.Second, s.Timeout)
	assert.NotEmpty(t, s.TokenPath)
	assert.NotEmpty(t, s.LogDir)
}

func TestLoad_ExpandsEnvAndParsesDuration(t *testing.T) {
	t.Setenv("SHOP_HOST", "shop.example.com")

	p := writeConfig(t, `
api_url: "https://${SHOP_HOST}/api"
storage_url: "https://cdn.example.com"
locale: en-US
currency_symbol: "$"
timeout: 3s
token_path: /tmp/tok.json
log_dir: /tmp/logs
`)

	s, err := config.Load(p)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/api", s.APIURL)
	assert.Equal(t, "https://cdn.example.com", s.StorageURL)
	assert.Equal(t, "en-US", s.Locale)
	assert.Equal(t, "$", s.CurrencySymbol)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, "/tmp/tok.json", s.TokenPath)
}

func TestLoad_UnresolvedVariable_ReturnsError(t *testing.T) {
	p := writeConfig(t, `api_url: "https://${MARKETPLACE_TEST_UNSET_HOST}/api"`)

	_, err := config.Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_url")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARKETPLACE_API_URL", "http://localhost:9000/api")
	t.Setenv("MARKETPLACE_LOCALE", "en")

	s, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api", s.APIURL)
	assert.Equal(t, "en", s.Locale)
}

func TestLoad_BadYAML_ReturnsError(t *testing.T) {
	p := writeConfig(t, "api_url: [unterminated")

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestValidate_RejectsRelativeURL(t *testing.T) {
	s := &config.Settings{}
	require.NoError(t, config.ApplyDefaults(s))
	s.APIURL = "/api"

	require.Error(t, s.Validate())
}

func TestValidate_RejectsBadLocale(t *testing.T) {
	s := &config.Settings{}
	require.NoError(t, config.ApplyDefaults(s))
	s.Locale = "not a locale!!"

	require.Error(t, s.Validate())
}

func TestValidate_RejectsNegativeTimeout(t *testing.T) {
	s := &config.Settings{}
	require.NoError(t, config.ApplyDefaults(s))
	s.Timeout = -time.Second

	require.Error(t, s.Validate())
}
