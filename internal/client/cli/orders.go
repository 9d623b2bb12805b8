package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/washstore/internal/client/models"
)

// Catalog fetches and prints the cleaning services. The listing is kept
// so that "add" can refer to services by their number.
func (a *App) Catalog(ctx context.Context) error {
	list, err := a.catalogService.List(ctx)
	if err != nil {
		return a.report(ctx, "Loading catalog", err)
	}
	a.catalog = list

	if len(list) == 0 {
		a.println("The catalog is empty")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for i, s := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s %s\n", i+1, s.Name, models.FormatMoney(s.Price), unitLabel(s.Unit))
	}
	return tw.Flush()
}

func (a *App) Orders(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	list, err := a.ordersService.List(ctx)
	if err != nil {
		return a.report(ctx, "Loading orders", err)
	}
	if len(list) == 0 {
		a.println("No orders yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, o := range list {
		fmt.Fprintf(tw, "#%s\t%s\t%s\t%s\n", orderRef(o), o.Status, o.Date, models.FormatMoney(o.Total))
	}
	return tw.Flush()
}

func (a *App) Order(ctx context.Context, id string) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	o, err := a.ordersService.Get(ctx, strings.TrimPrefix(id, "#"))
	if err != nil {
		return a.report(ctx, "Loading order", err)
	}

	a.printf("Order #%s: %s\n", orderRef(*o), o.Status)
	if o.Date != "" {
		a.printf("Date: %s\n", o.Date)
	}
	if o.Address != "" {
		a.printf("Address: %s\n", o.Address)
	}
	for _, it := range o.Items {
		line := "  " + it.Name
		if it.Width > 0 && it.Length > 0 {
			line += " " + dims(it.Width, it.Length)
		}
		a.printf("%s x%d  %s\n", line, it.Quantity, models.FormatMoney(it.Price))
	}
	a.printf("Total: %s\n", models.FormatMoney(o.Total))
	return nil
}

func (a *App) requireLogin(ctx context.Context) bool {
	if a.isLoggedIn(ctx) {
		return true
	}
	a.println("Please log in first")
	return false
}

func orderRef(o models.Order) string {
	if o.Number != "" {
		return o.Number
	}
	return strconv.FormatInt(o.ID, 10)
}
