package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/models"
)

const ordersPath = "/orders/"

type OrdersService interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
}

type ordersService struct {
	client *api.Client
}

func NewOrdersService(client *api.Client) OrdersService {
	return &ordersService{client: client}
}

func (s *ordersService) List(ctx context.Context) ([]models.Order, error) {
	res := api.Get[models.OrderList](ctx, s.client, ordersPath)
	if !res.Success {
		return nil, res.Err()
	}
	return *res.Data, nil
}

func (s *ordersService) Get(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order id is required")
	}
	res := api.Get[models.Order](ctx, s.client, ordersPath+url.PathEscape(id)+"/")
	if !res.Success {
		return nil, res.Err()
	}
	return res.Data, nil
}
