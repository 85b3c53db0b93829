package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/console"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// openConsole восстанавливает пользователя по сохранённому токену и открывает
// консоль продавца. Если консоль увела на /login, возвращает ErrNotLoggedIn.
func openConsole(ctx context.Context, app *App, confirm view.Confirmer) (*console.Console, error) {
	// 401 на /auth/me очищает токен, и консоль уводит на /login
	app.Session.Restore(ctx)

	c := console.NewConsole(app.Session, app.Products, app.Nav, confirm,
		app.Printer, app.Settings.CurrencySymbol, app.Images, app.Log)

	c.Init(ctx)
	if app.Nav.Last() == view.RouteLogin {
		c.Teardown()
		return nil, ErrNotLoggedIn
	}
	return c, nil
}

// NewMyProductsCmd создаёт CLI-команду списка своих товаров.
func NewMyProductsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "my-products",
		Short: "Свои товары (нужен вход)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openConsole(cmd.Context(), app, nil)
			if err != nil {
				return err
			}
			defer c.Teardown()

			snap := c.Snapshot()
			if snap.Error != "" {
				return newUserError(snap.Error, nil)
			}
			printItems(cmd.OutOrStdout(), app, snap.Items)
			return nil
		},
	}
}

// NewProductCmd создаёт группу команд управления своими товарами.
//
// Пример использования:
//
//	marketplace product create --name "Pão" --description "fresco" --price 12.50 --image ./pao.jpg
//	marketplace product update 7 --price 14
//	marketplace product delete 7 --yes
func NewProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Создать / изменить / удалить свой товар",
	}
	cmd.AddCommand(newProductCreateCmd(app))
	cmd.AddCommand(newProductUpdateCmd(app))
	cmd.AddCommand(newProductDeleteCmd(app))
	return cmd
}

type productFlags struct {
	name        string
	description string
	price       float64
	image       string
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.description, "description", "", "product description")
	cmd.Flags().Float64Var(&f.price, "price", 0, "price, > 0")
	cmd.Flags().StringVar(&f.image, "image", "", "path to an image file")
}

// apply переносит заданные флаги в черновик. Не заданные флаги не трогают его.
func (f *productFlags) apply(cmd *cobra.Command, d *console.Draft) {
	if cmd.Flags().Changed("name") {
		d.Name = f.name
	}
	if cmd.Flags().Changed("description") {
		d.Description = f.description
	}
	if cmd.Flags().Changed("price") {
		d.Price = f.price
	}
}

// submit применяет флаги к открытой форме и сохраняет её.
func (f *productFlags) submit(cmd *cobra.Command, c *console.Console) error {
	c.UpdateForm(func(d *console.Draft) { f.apply(cmd, d) })

	if f.image != "" {
		rc, err := OpenImage(f.image)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer rc.Close()
		c.SetImage(&models.ImageFile{Name: filepath.Base(f.image), Content: rc})
	}

	if !c.Submit(cmd.Context()) {
		return newUserError(c.Snapshot().Error, nil)
	}
	fmt.Fprintln(cmd.OutOrStdout(), c.Snapshot().Success)
	return nil
}

func newProductCreateCmd(app *App) *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать товар",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openConsole(cmd.Context(), app, nil)
			if err != nil {
				return err
			}
			defer c.Teardown()

			c.OpenCreate()
			return f.submit(cmd, c)
		},
	}
	f.register(cmd)
	return cmd
}

func newProductUpdateCmd(app *App) *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить свой товар (не заданные поля берутся из текущего товара)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c, err := openConsole(cmd.Context(), app, nil)
			if err != nil {
				return err
			}
			defer c.Teardown()

			if msg := c.Snapshot().Error; msg != "" {
				return newUserError(msg, nil)
			}
			item, ok := c.Item(id)
			if !ok {
				return fmt.Errorf("product %d not found among your products", id)
			}

			c.OpenEdit(item.Product)
			return f.submit(cmd, c)
		},
	}
	f.register(cmd)
	return cmd
}

func newProductDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить свой товар (с подтверждением)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var confirm view.Confirmer = view.ConfirmerFunc(func(string) bool { return true })
			if !yes {
				confirm = &promptConfirmer{cmd: cmd}
			}

			c, err := openConsole(cmd.Context(), app, confirm)
			if err != nil {
				return err
			}
			defer c.Teardown()

			if msg := c.Snapshot().Error; msg != "" {
				return newUserError(msg, nil)
			}
			item, ok := c.Item(id)
			if !ok {
				return fmt.Errorf("product %d not found among your products", id)
			}

			if !c.Delete(cmd.Context(), item.Product) {
				if msg := c.Snapshot().Error; msg != "" {
					return newUserError(msg, nil)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Snapshot().Success)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
