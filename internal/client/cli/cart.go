package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/washstore/internal/client/models"
)

// Cart prints the cart lines numbered from 1 with the running total.
func (a *App) Cart(ctx context.Context) error {
	items, err := a.cartService.Items(ctx)
	if err != nil {
		return a.report(ctx, "Loading cart", err)
	}
	if len(items) == 0 {
		a.println("Your cart is empty")
		return nil
	}

	var total int64
	for i, it := range items {
		total += it.LineTotal()
		a.printf("%d. %s\n", i+1, describe(it))
	}
	a.printf("Total: %s\n", models.FormatMoney(total))
	return nil
}

// Add asks for a catalog service, its size when priced by area, and a
// quantity, then puts the line into the cart.
func (a *App) Add(ctx context.Context) error {
	if len(a.catalog) == 0 {
		list, err := a.catalogService.List(ctx)
		if err != nil {
			return a.report(ctx, "Loading catalog", err)
		}
		a.catalog = list
	}
	if len(a.catalog) == 0 {
		a.println("The catalog is empty")
		return nil
	}

	for i, s := range a.catalog {
		a.printf("%d. %s (%s %s)\n", i+1, s.Name, models.FormatMoney(s.Price), unitLabel(s.Unit))
	}

	n, err := a.askInt("Service number", 1, len(a.catalog))
	if err != nil {
		return a.report(ctx, "Adding item", err)
	}
	svc := a.catalog[n-1]

	item := models.CartItem{
		ServiceID: svc.ID,
		Name:      svc.Name,
		Unit:      svc.Unit,
		UnitPrice: svc.Price,
	}

	if svc.Unit == models.PerSquareMeter {
		if item.Width, err = a.askFloat("Width, m"); err != nil {
			return a.report(ctx, "Adding item", err)
		}
		if item.Length, err = a.askFloat("Length, m"); err != nil {
			return a.report(ctx, "Adding item", err)
		}
	}

	if item.Quantity, err = a.askInt("Quantity", 1, 1000); err != nil {
		return a.report(ctx, "Adding item", err)
	}

	if err := a.cartService.Add(ctx, item); err != nil {
		return a.report(ctx, "Adding item", err)
	}
	a.printf("Added %s\n", describe(item))
	return nil
}

// Remove deletes the cart line at the given 1-based position.
func (a *App) Remove(ctx context.Context, position string) error {
	n, err := strconv.Atoi(position)
	if err != nil || n < 1 {
		a.println("Usage: remove <n>, where n is the line number shown by 'cart'")
		return nil
	}
	if err := a.cartService.Remove(ctx, n-1); err != nil {
		return a.report(ctx, "Removing item", err)
	}
	a.println("Removed")
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	if err := a.cartService.Clear(ctx); err != nil {
		return a.report(ctx, "Clearing cart", err)
	}
	a.println("Cart cleared")
	return nil
}

// Checkout collects the booking details and turns the cart into an order.
func (a *App) Checkout(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}
	if a.cartSize(ctx) == 0 {
		a.println("Your cart is empty")
		return nil
	}

	var b models.Booking
	var err error
	if b.Address, err = a.askRequired("Pickup address"); err != nil {
		return a.report(ctx, "Checkout", err)
	}
	if b.Date, err = a.askRequired("Pickup date (YYYY-MM-DD)"); err != nil {
		return a.report(ctx, "Checkout", err)
	}
	if b.Phone, err = a.askRequired("Contact phone"); err != nil {
		return a.report(ctx, "Checkout", err)
	}
	if b.Comment, err = getSimpleText(a.reader, "Comment (optional)", a.out); err != nil {
		return a.report(ctx, "Checkout", err)
	}

	order, err := a.cartService.Checkout(ctx, b)
	if order == nil && err != nil {
		return a.report(ctx, "Checkout", err)
	}
	a.printf("Order #%s created, total %s\n", orderRef(*order), models.FormatMoney(order.Total))
	if err != nil {
		a.log.Warn(ctx, "order created but cart kept", "error", err)
	}
	return nil
}

func (a *App) askRequired(prompt string) (string, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(prompt), errAborted)
	}
	return s, nil
}

func (a *App) askInt(prompt string, lo, hi int) (int, error) {
	s, err := a.askRequired(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("expected a number from %d to %d, got %q", lo, hi, s)
	}
	return n, nil
}

func (a *App) askFloat(prompt string) (float64, error) {
	s, err := a.askRequired(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("expected a positive number, got %q", s)
	}
	return f, nil
}

func describe(it models.CartItem) string {
	name := it.Name
	if it.Unit == models.PerSquareMeter {
		name += fmt.Sprintf(" %s (%.2f m²)", dims(it.Width, it.Length), it.Area())
	}
	return fmt.Sprintf("%s x%d  %s", name, it.Quantity, models.FormatMoney(it.LineTotal()))
}

func dims(w, l float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + "x" + strconv.FormatFloat(l, 'f', -1, 64)
}

func unitLabel(u models.PricingUnit) string {
	if u == models.PerSquareMeter {
		return "per m²"
	}
	return "per item"
}
