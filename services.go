package washly

import (
	"context"

	"github.com/washly/washly-go/cache"
	"github.com/washly/washly-go/domain"
)

// CatalogService wraps the provider's service-catalog endpoints.
type CatalogService struct {
	c *Client
}

// List returns published services, optionally filtered. Failures yield an
// empty list.
func (s *CatalogService) List(ctx context.Context, filter *domain.ServiceFilter) []domain.Service {
	key := filterKey(keyServices, filter)
	path := queryPath("/services", filter)
	return cachedList[domain.Service](ctx, s.c, key, path, s.c.staleness.ServicesTTL)
}

// Categories returns the fixed category list. Failures yield an empty list.
func (s *CatalogService) Categories(ctx context.Context) []domain.ServiceCategory {
	return cachedList[domain.ServiceCategory](ctx, s.c, keyCategories, "/services/categories", s.c.staleness.ServicesTTL)
}

// Create adds a service to the provider's catalog. A provider without a
// registered business gets ErrBusinessRequired and no request is issued;
// the UI is expected to route them to business registration instead.
func (s *CatalogService) Create(ctx context.Context, req domain.ServiceCreateRequest) (*domain.Service, error) {
	business, err := s.c.Business.Mine(ctx)
	if err != nil {
		return nil, err
	}

	var service domain.Service
	if err := s.c.post(ctx, "/services", req, &service); err != nil {
		return nil, err
	}

	s.c.invalidate(ctx, keyServices, cache.Key(keyBusinessServices, business.ID))
	return &service, nil
}

// Update applies a partial update to a service.
func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ServicePatch) (*domain.Service, error) {
	var service domain.Service
	if err := s.c.patch(ctx, "/services/"+id, patch, &service); err != nil {
		return nil, err
	}

	s.c.invalidate(ctx, keyServices, cache.Key(keyBusinessServices, service.BusinessID))
	return &service, nil
}

// Delete removes a service from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.c.delete(ctx, "/services/"+id); err != nil {
		return err
	}

	s.c.invalidate(ctx, keyServices, keyBusinessServices)
	return nil
}
