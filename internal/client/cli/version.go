package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт CLI-команду для отображения информации о сборке.
//
// Команде не нужны настройки и сеть, поэтому инициализация App пропускается.
//
// Пример использования:
//
//	marketplace version
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"version=%s\nbuild_date=%s\n",
				buildVersion,
				buildDate,
			)
		},
	}
}
