package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/register"
)

// NewRegisterCmd создаёт CLI-команду регистрации продавца.
//
// Форма проверяется локально (все поля, совпадение паролей) до запроса.
// Успешная регистрация сразу аутентифицирует аккаунт.
// Пароль и подтверждение запрашиваются интерактивно, если флаги не заданы.
//
// Пример использования:
//
//	marketplace register --name Ana --email ana@example.com
func NewRegisterCmd(app *App) *cobra.Command {
	var form register.Form

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация продавца",
		Long: `Регистрация продавца.

Пример:
  marketplace register --name Ana --email ana@example.com
  (пароль и подтверждение будут запрошены со скрытым вводом)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.Password == "" {
				pw, err := ReadPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				form.Password = pw
			}
			if form.PasswordConfirmation == "" {
				pw, err := ReadPassword(cmd, "Confirm password: ")
				if err != nil {
					return err
				}
				form.PasswordConfirmation = pw
			}

			flow := register.NewFlow(app.Session, app.Nav, app.Printer, app.Log)
			if !flow.Submit(cmd.Context(), form) {
				return newUserError(flow.Error(), nil)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "account created, logged in as %s\n", form.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "seller name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email")
	cmd.Flags().StringVar(&form.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&form.PasswordConfirmation, "password-confirmation", "", "password confirmation (prompted when omitted)")

	return cmd
}
