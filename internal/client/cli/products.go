package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/catalog"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
)

// NewProductsCmd создаёт CLI-команду публичного каталога.
//
// Токен не требуется. Подкоманда show выводит карточку одного товара.
//
// Пример использования:
//
//	marketplace products
//	marketplace products show 7
func NewProductsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Публичный каталог товаров",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := catalog.NewView(app.Products, app.Images, app.Printer, app.Settings.CurrencySymbol, app.Log)
			defer v.Teardown()

			v.Init(cmd.Context())
			snap := v.Snapshot()
			if snap.State == catalog.StateFailed {
				return newUserError(snap.Error, nil)
			}
			printItems(cmd.OutOrStdout(), app, snap.Items)
			return nil
		},
	}

	cmd.AddCommand(newProductShowCmd(app))
	return cmd
}

func newProductShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Карточка товара",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			v := catalog.NewView(app.Products, app.Images, app.Printer, app.Settings.CurrencySymbol, app.Log)
			item, err := v.Detail(cmd.Context(), id)
			if err != nil {
				return newUserError(v.DetailMessage(err), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id=%d\nname=%s\ndescription=%s\nprice=%s\nimage=%s\n",
				item.Product.ID, item.Product.Name, item.Product.Description, item.PriceLabel, item.ImageURL)
			if owner := item.Product.User; owner != nil {
				fmt.Fprintf(out, "seller=%s\n", owner.Name)
			}
			return nil
		},
	}
}

// printItems печатает товары таблицей.
func printItems(w io.Writer, app *App, items []view.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, app.Printer.Sprintf(view.MsgNoProducts))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tIMAGE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.Product.ID, it.Product.Name, it.PriceLabel, it.ImageURL)
	}
	_ = tw.Flush()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}
