package models

// PricingUnit tells how a cleaning service is charged.
type PricingUnit string

const (
	// PerSquareMeter services (carpets) are charged by area.
	PerSquareMeter PricingUnit = "sqm"
	// PerItem services (sofas, chairs, pillows) are charged per piece.
	PerItem PricingUnit = "item"
)

func (u PricingUnit) Valid() bool {
	return u == PerSquareMeter || u == PerItem
}

// Service is a catalog entry. Price is in minor currency units per Unit.
type Service struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Unit        PricingUnit `json:"unit"`
	Price       int64       `json:"price"`
}
