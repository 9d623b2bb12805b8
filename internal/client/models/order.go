package models

import (
	"encoding/json"
	"time"
)

type OrderItem struct {
	ServiceID int64   `json:"service_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Width     float64 `json:"width,omitempty"`
	Length    float64 `json:"length,omitempty"`
	Price     int64   `json:"price,omitempty"`
}

type Order struct {
	ID        int64       `json:"id"`
	Number    string      `json:"number,omitempty"`
	Status    string      `json:"status"`
	Address   string      `json:"address,omitempty"`
	Date      string      `json:"date,omitempty"`
	Total     int64       `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items,omitempty"`
}

// OrderList accepts both a bare JSON array and a paginated
// {"count": n, "results": [...]} page.
type OrderList []Order

func (l *OrderList) UnmarshalJSON(b []byte) error {
	var plain []Order
	if err := json.Unmarshal(b, &plain); err == nil {
		*l = plain
		return nil
	}
	var page struct {
		Results []Order `json:"results"`
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return err
	}
	*l = page.Results
	return nil
}

// Booking holds the checkout details entered by the customer.
type Booking struct {
	Address string `json:"address"`
	Date    string `json:"date"`
	Phone   string `json:"phone"`
	Comment string `json:"comment,omitempty"`
}

// BookingRequest is the payload of POST /bookings/.
type BookingRequest struct {
	Booking
	Items []OrderItem `json:"items"`
	Total int64       `json:"total"`
}
