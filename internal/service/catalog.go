package service

import (
	"context"
	"fmt"

	"hallbook/internal/apperr"
	"hallbook/internal/cache"
	"hallbook/internal/models"
	"hallbook/internal/repository"
)

// CatalogService serves the public resource and pricing listings. These
// are plain projections with no decision logic.
type CatalogService struct {
	tenants      TenantDirectory
	resources    *repository.ResourceRepository
	pricing      *repository.PricingRepository
	valkeyClient *cache.ValkeyClient
}

func NewCatalogService(tenants TenantDirectory, resources *repository.ResourceRepository, pricing *repository.PricingRepository, valkeyClient *cache.ValkeyClient) *CatalogService {
	return &CatalogService{
		tenants:      tenants,
		resources:    resources,
		pricing:      pricing,
		valkeyClient: valkeyClient,
	}
}

func (s *CatalogService) PublicResources(ctx context.Context, tenantID string) (*models.ListResourcesResponse, error) {
	tenant, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resources, err := s.resources.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	return &models.ListResourcesResponse{
		Resources: resources,
		HallOwner: models.HallOwnerInfo{
			Name:    tenant.BusinessName,
			Address: tenant.Address,
			Phone:   tenant.Phone,
			Email:   tenant.Email,
		},
	}, nil
}

func (s *CatalogService) PublicPricing(ctx context.Context, tenantID string) (models.ListPricingResponse, error) {
	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	rules, err := s.pricing.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}
	return rules, nil
}

func (s *CatalogService) getTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	if s.valkeyClient != nil {
		if tenant, err := s.valkeyClient.GetTenant(ctx, tenantID); err == nil && tenant != nil {
			if tenant.Role != models.RoleHallOwner {
				return nil, apperr.NotFound("Hall owner not found")
			}
			return tenant, nil
		}
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant == nil || tenant.Role != models.RoleHallOwner {
		return nil, apperr.NotFound("Hall owner not found")
	}
	return tenant, nil
}
