package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
	serr "github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/errors"
)

// NewLogoutCmd создаёт CLI-команду выхода.
//
// Локальная сессия очищается всегда, даже если бэкенд недоступен:
// ошибка сети выводится предупреждением в stderr.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выход (токен удаляется локально в любом случае)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: server logout failed: %v (local session cleared)\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

// NewMeCmd создаёт CLI-команду, которая спрашивает у бэкенда, кто залогинен.
//
// Если бэкенд отклонил токен (401), локальная сессия очищается.
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Текущий пользователь по сохранённому токену",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Session.FetchCurrentUser(cmd.Context())
			if err != nil {
				if errors.Is(err, serr.ErrUnauthorized) {
					return newUserError("session expired, run: marketplace login", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "id=%d\nname=%s\nemail=%s\n", u.ID, u.Name, u.Email)
			return nil
		},
	}
}

// NewRefreshCmd создаёт CLI-команду обновления bearer токена.
func NewRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Обменять текущий токен на новый",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Session.RefreshToken(cmd.Context())
			if err != nil {
				return err
			}
			if !resp.OK() {
				return fmt.Errorf("refresh rejected: status %q %s", resp.Status, resp.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token refreshed")
			return nil
		},
	}
}

// NewStatusCmd создаёт CLI-команду локального состояния сессии.
//
// Сеть не используется: выводится только "локально считаем себя залогиненными"
// и данные токена, прочитанные без проверки подписи.
func NewStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Локальное состояние сессии (без запроса к бэкенду)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.Session.IsAuthenticated() {
				fmt.Fprintln(out, "not logged in")
				return nil
			}

			where := "memory"
			if fs, ok := app.Storage.(*config.FileStorage); ok {
				where = fs.Path()
			}
			fmt.Fprintf(out, "logged in (token stored in %s)\n", where)

			info, err := app.Session.TokenClaims()
			if err != nil {
				fmt.Fprintln(out, "token is opaque")
				return nil
			}
			if info.Subject != "" {
				fmt.Fprintf(out, "subject=%s\n", info.Subject)
			}
			if !info.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "expires_at=%s\n", info.ExpiresAt.Local().Format(time.RFC3339))
				if info.Expired(time.Now()) {
					fmt.Fprintln(out, "token expired, run: marketplace refresh or marketplace login")
				}
			}
			return nil
		},
	}
}
