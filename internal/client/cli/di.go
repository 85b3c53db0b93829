package cli

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/api"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	NewLogger    = logger.NewClientLogger
	LoadSettings = config.Load
	LoadDotEnv   = func() error { return godotenv.Load() }
	ReadPassword = func(cmd *cobra.Command, prompt string) (string, error) {
		return readPassword(cmd, prompt)
	}
	OpenImage = func(path string) (io.ReadCloser, error) { return os.Open(path) }
)
