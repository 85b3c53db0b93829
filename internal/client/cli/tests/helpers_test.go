package tests

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/apitest"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/cli"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
)

// env — поддельный бэкенд и конфиг во временной директории.
type env struct {
	b       *apitest.Backend
	dir     string
	cfgPath string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	t.Setenv("MARKETPLACE_API_URL", "")
	t.Setenv("MARKETPLACE_STORAGE_URL", "")
	t.Setenv("MARKETPLACE_LOCALE", "")

	origDotEnv := cli.LoadDotEnv
	origPassword := cli.ReadPassword
	origImage := cli.OpenImage
	t.Cleanup(func() {
		cli.LoadDotEnv = origDotEnv
		cli.ReadPassword = origPassword
		cli.OpenImage = origImage
	})
	cli.LoadDotEnv = func() error { return nil }
	cli.ReadPassword = func(*cobra.Command, string) (string, error) {
		return "", fmt.Errorf("unexpected password prompt")
	}

	b := apitest.New(t)
	dir := t.TempDir()
	cfg := fmt.Sprintf(`api_url: %s
storage_url: %s
locale: pt-BR
currency_symbol: R$
token_path: %s
log_dir: %s
`, b.URL(), b.Origin(), filepath.Join(dir, "credentials.json"), filepath.Join(dir, "logs"))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	return &env{b: b, dir: dir, cfgPath: cfgPath}
}

// run выполняет root-команду с конфигом env и возвращает вывод (stdout+stderr).
func (e *env) run(stdin string, args ...string) (string, error) {
	root := cli.NewRootCmd("1.0.0", "2026-01-16")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.cfgPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func (e *env) storedToken(t *testing.T) string {
	t.Helper()

	token, _, err := config.NewFileStorage(filepath.Join(e.dir, "credentials.json")).Get(config.TokenKey)
	require.NoError(t, err)
	return token
}

// login логинит Ana через CLI и очищает журнал вызовов бэкенда.
func (e *env) login(t *testing.T) {
	t.Helper()

	_, err := e.run("", "login", "--email", "ana@example.com", "--password", "secret123")
	require.NoError(t, err)
	e.b.ResetCalls()
}

func fakeImage(content string) func(string) (io.ReadCloser, error) {
	return func(string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}
}
