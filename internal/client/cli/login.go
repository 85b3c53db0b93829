package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
)

// NewLoginCmd создаёт CLI-команду входа продавца.
//
// Команда отправляет учётные данные на /auth/login и при успехе сохраняет
// bearer токен в хранилище (credentials.json или память при --ephemeral).
// Если --password не задан, пароль запрашивается интерактивно (скрытый ввод).
//
// Пример использования:
//
//	marketplace login --email ana@example.com
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход продавца (токен сохраняется локально)",
		Long: `Вход продавца.

Пример:
  marketplace login --email ana@example.com
  (пароль будет запрошен со скрытым вводом)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := ReadPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				password = pw
			}

			fallback := app.Printer.Sprintf(view.MsgLoginFailed)
			resp, err := app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return newUserError(view.BackendMessage(err, fallback), err)
			}
			if !resp.OK() {
				return newUserError(view.EnvelopeMessage(resp.Message, fallback), nil)
			}

			if u := app.Session.CurrentUser(); u != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "login ok: %s <%s>\n", u.Name, u.Email)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
