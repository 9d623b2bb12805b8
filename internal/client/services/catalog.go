package services

import (
	"context"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/models"
)

const catalogPath = "/services/"

// CatalogService lists the cleaning services that can be put in the cart.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
}

type catalogService struct {
	client *api.Client
}

func NewCatalogService(client *api.Client) CatalogService {
	return &catalogService{client: client}
}

func (s *catalogService) List(ctx context.Context) ([]models.Service, error) {
	res := api.Get[[]models.Service](ctx, s.client, catalogPath)
	if !res.Success {
		return nil, res.Err()
	}
	return *res.Data, nil
}
