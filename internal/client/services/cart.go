package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/models"
	"github.com/dmitrijs2005/washstore/internal/client/repositories/metadata"
)

const (
	cartKey      = "cart"
	bookingsPath = "/bookings/"
)

// CartService keeps the shopping cart in the local database so it survives
// restarts, and turns it into a booking at checkout.
// Item positions are zero-based indexes into Items.
type CartService interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	Add(ctx context.Context, item models.CartItem) error
	SetQuantity(ctx context.Context, index int, quantity int) error
	Remove(ctx context.Context, index int) error
	Clear(ctx context.Context) error
	Total(ctx context.Context) (int64, error)
	Checkout(ctx context.Context, booking models.Booking) (*models.Order, error)
}

type cartService struct {
	client *api.Client
	repo   metadata.Repository
	// serialises read-modify-write cycles on the snapshot
	mu sync.Mutex
}

func NewCartService(client *api.Client, repo metadata.Repository) CartService {
	return &cartService{client: client, repo: repo}
}

func (s *cartService) load(ctx context.Context) (models.Cart, error) {
	var cart models.Cart
	raw, err := s.repo.Get(ctx, cartKey)
	if err != nil {
		return cart, err
	}
	if len(raw) == 0 {
		return cart, nil
	}
	if err := json.Unmarshal(raw, &cart); err != nil {
		return cart, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	return cart, nil
}

func (s *cartService) save(ctx context.Context, cart models.Cart) error {
	if len(cart.Items) == 0 {
		return s.repo.Delete(ctx, cartKey)
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, cartKey, raw)
}

func (s *cartService) update(ctx context.Context, fn func(cart *models.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&cart); err != nil {
		return err
	}
	return s.save(ctx, cart)
}

func (s *cartService) Items(ctx context.Context) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// Add appends item, or bumps the quantity of an identical line.
func (s *cartService) Add(ctx context.Context, item models.CartItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return s.update(ctx, func(cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].SameLine(item) {
				cart.Items[i].Quantity += item.Quantity
				return nil
			}
		}
		cart.Items = append(cart.Items, item)
		return nil
	})
}

// SetQuantity changes a line's quantity; zero removes the line.
func (s *cartService) SetQuantity(ctx context.Context, index int, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidItem)
	}
	return s.update(ctx, func(cart *models.Cart) error {
		if index < 0 || index >= len(cart.Items) {
			return ErrItemNotFound
		}
		if quantity == 0 {
			cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
			return nil
		}
		cart.Items[index].Quantity = quantity
		return nil
	})
}

func (s *cartService) Remove(ctx context.Context, index int) error {
	return s.SetQuantity(ctx, index, 0)
}

func (s *cartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, cartKey)
}

func (s *cartService) Total(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return cart.Total(), nil
}

// Checkout posts the cart as a booking and empties the cart once the
// backend has accepted it. On failure the cart is left untouched.
func (s *cartService) Checkout(ctx context.Context, booking models.Booking) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	req := models.BookingRequest{Booking: booking, Total: cart.Total()}
	for _, it := range cart.Items {
		req.Items = append(req.Items, models.OrderItem{
			ServiceID: it.ServiceID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Width:     it.Width,
			Length:    it.Length,
			Price:     it.LineTotal(),
		})
	}

	res := api.Post[models.Order](ctx, s.client, bookingsPath, req)
	if !res.Success {
		return nil, res.Err()
	}

	if err := s.repo.Delete(ctx, cartKey); err != nil {
		return res.Data, fmt.Errorf("booking created but cart not cleared: %w", err)
	}
	return res.Data, nil
}
