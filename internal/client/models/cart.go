package models

import (
	"fmt"
	"math"
)

// CartItem is a line of the shopping cart. Width and Length are meters and
// only matter for PerSquareMeter lines.
type CartItem struct {
	ServiceID int64       `json:"service_id"`
	Name      string      `json:"name"`
	Unit      PricingUnit `json:"unit"`
	UnitPrice int64       `json:"unit_price"`
	Width     float64     `json:"width,omitempty"`
	Length    float64     `json:"length,omitempty"`
	Quantity  int         `json:"quantity"`
}

// Area is the surface of one piece in m², rounded to 0.01.
func (i CartItem) Area() float64 {
	if i.Unit != PerSquareMeter {
		return 0
	}
	return math.Round(i.Width*i.Length*100) / 100
}

// LineTotal is the price of the line in minor units.
func (i CartItem) LineTotal() int64 {
	switch i.Unit {
	case PerSquareMeter:
		return int64(math.Round(i.Area() * float64(i.Quantity) * float64(i.UnitPrice)))
	case PerItem:
		return int64(i.Quantity) * i.UnitPrice
	default:
		return 0
	}
}

// Validate checks the line is priceable.
func (i CartItem) Validate() error {
	if !i.Unit.Valid() {
		return fmt.Errorf("unknown pricing unit %q", i.Unit)
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", i.Quantity)
	}
	if i.UnitPrice < 0 {
		return fmt.Errorf("price must not be negative, got %d", i.UnitPrice)
	}
	if i.Unit == PerSquareMeter && (i.Width <= 0 || i.Length <= 0) {
		return fmt.Errorf("dimensions must be positive, got %.2fx%.2f", i.Width, i.Length)
	}
	return nil
}

// SameLine reports whether other describes the same service and size, so
// the two can be merged by adding quantities.
func (i CartItem) SameLine(other CartItem) bool {
	return i.ServiceID == other.ServiceID &&
		i.Unit == other.Unit &&
		i.UnitPrice == other.UnitPrice &&
		i.Width == other.Width &&
		i.Length == other.Length
}

// Cart is the persisted cart snapshot.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.LineTotal()
	}
	return total
}

// FormatMoney renders minor units as "1234.50".
func FormatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
