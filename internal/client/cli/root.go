// Package cli реализует командный интерфейс (CLI) клиента маркетплейса.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку настроек (config.yaml, .env, переменные окружения);
//   - сборку зависимостей: логгер, API-клиент, хранилище токена, сессия, репозиторий товаров;
//   - запуск view (catalog, register, console) и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/api"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/memory"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/products"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/session"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
)

// ErrNotLoggedIn — консоль продавца увела на /login.
var ErrNotLoggedIn = errors.New("not logged in, run: marketplace login")

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Флаги заполняются cobra, остальные поля собираются в PersistentPreRunE.
type App struct {
	// ConfigPath — путь к config.yaml (по умолчанию ~/.marketplace/config.yaml).
	ConfigPath string
	// APIURL — переопределение api_url из конфига (флаг --api).
	APIURL string
	// Ephemeral — держать токен только в памяти процесса.
	Ephemeral bool

	Settings *config.Settings
	Log      *logger.ClientLogger
	Client   *api.Client
	Storage  config.Storage
	Session  *session.Store
	Products *products.Repository
	Printer  *message.Printer
	Images   view.Images
	Nav      *view.RouteRecorder
}

// Init загружает настройки и собирает зависимости.
func (app *App) Init() error {
	if err := LoadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	path := app.ConfigPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	settings, err := LoadSettings(path)
	if err != nil {
		return err
	}
	if app.APIURL != "" {
		settings.APIURL = app.APIURL
		if err := settings.Validate(); err != nil {
			return err
		}
	}
	app.Settings = settings

	app.Log = NewLogger(settings.LogDir)

	opts := []api.Option{api.WithTimeout(settings.Timeout), api.WithLogger(app.Log)}
	if settings.InsecureTLS {
		opts = append(opts, api.WithInsecureTLS())
	}
	app.Client = NewAPIClient(settings.APIURL, opts...)

	if app.Ephemeral {
		app.Storage = memory.NewStorage()
	} else {
		app.Storage = config.NewFileStorage(settings.TokenPath)
	}

	app.Session = session.NewStore(app.Client, app.Storage, app.Log)
	app.Products = products.NewRepository(app.Client, app.Session)
	app.Printer = view.NewPrinter(settings.Locale)
	app.Images = view.Images{StorageURL: settings.StorageURL, Placeholder: settings.PlaceholderImage}
	app.Nav = &view.RouteRecorder{}
	return nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "marketplace",
		Short: "Marketplace CLI — витрина и консоль продавца",
		Long: `Marketplace CLI.

Команды:
  products      Публичный каталог товаров
  register      Регистрация продавца
  login         Вход (токен сохраняется локально)
  logout        Выход
  me            Текущий пользователь (проверка токена на бэкенде)
  refresh       Обновить токен
  status        Локальное состояние сессии
  my-products   Свои товары
  product       Создать / изменить / удалить свой товар
  version       Версия и дата сборки

Примеры:
  marketplace products
  marketplace login --email ana@example.com
  marketplace product create --name "Pão" --description "fresco" --price 12.50 --image ./pao.jpg
  marketplace product delete 7
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Init()
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "path to config.yaml (default ~/.marketplace/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api", "", "override backend API base URL")
	cmd.PersistentFlags().BoolVar(&app.Ephemeral, "ephemeral", false, "keep the token in memory only")

	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewRefreshCmd(app))
	cmd.AddCommand(NewStatusCmd(app))
	cmd.AddCommand(NewProductsCmd(app))
	cmd.AddCommand(NewMyProductsCmd(app))
	cmd.AddCommand(NewProductCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// userError — ошибка с текстом для пользователя и исходной причиной.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func newUserError(msg string, err error) error {
	return &userError{msg: msg, err: err}
}
