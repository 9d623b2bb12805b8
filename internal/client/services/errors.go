package services

import "errors"

var (
	ErrAuthRejected = errors.New("authentication rejected")
	ErrCartEmpty    = errors.New("cart is empty")
	ErrItemNotFound = errors.New("cart item not found")
	ErrInvalidItem  = errors.New("invalid cart item")
)
