package service

import (
	"context"
	"fmt"

	"hallbook/internal/apperr"
	"hallbook/internal/cache"
	"hallbook/internal/logger"
	"hallbook/internal/models"
)

// TenantResourceValidator confirms the tenant and every requested
// resource exist and belong to each other. Lookups go through the
// Valkey cache when one is configured.
type TenantResourceValidator struct {
	tenants      TenantDirectory
	resources    ResourceDirectory
	valkeyClient *cache.ValkeyClient
}

func NewTenantResourceValidator(tenants TenantDirectory, resources ResourceDirectory, valkeyClient *cache.ValkeyClient) *TenantResourceValidator {
	return &TenantResourceValidator{
		tenants:      tenants,
		resources:    resources,
		valkeyClient: valkeyClient,
	}
}

// Validate resolves the tenant and the requested resources, enforcing
// ownership. When customerID identifies an authenticated account, the
// account must be registered with the same tenant.
func (v *TenantResourceValidator) Validate(ctx context.Context, tenantID, customerID string, resourceIDs []string) (*models.Tenant, []models.Resource, error) {
	tenant, err := v.getTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant == nil || tenant.Role != models.RoleHallOwner {
		return nil, nil, apperr.NotFound("Hall owner not found")
	}

	if customerID != "" {
		customerTenant, err := v.tenants.GetCustomerTenant(ctx, customerID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get customer tenant: %w", err)
		}
		// Unknown accounts resolve to an empty tenant and are
		// rejected the same as a mismatched one.
		if customerTenant != tenantID {
			return nil, nil, apperr.Forbidden("Account does not belong to this hall. Please login/register for this venue.")
		}
	}

	resources := make([]models.Resource, 0, len(resourceIDs))
	for _, id := range resourceIDs {
		resource, err := v.getResource(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get resource: %w", err)
		}
		if resource == nil {
			return nil, nil, apperr.NotFound("Selected resource not found: %s", id)
		}
		if resource.TenantID != tenantID {
			return nil, nil, apperr.Validation("Selected resource does not belong to the specified hall owner: %s", id)
		}
		resources = append(resources, *resource)
	}

	return tenant, resources, nil
}

func (v *TenantResourceValidator) getTenant(ctx context.Context, id string) (*models.Tenant, error) {
	if v.valkeyClient != nil {
		if tenant, err := v.valkeyClient.GetTenant(ctx, id); err == nil && tenant != nil {
			return tenant, nil
		} else if err != nil {
			logger.WithContext(ctx).Warn("Tenant cache read failed", "error", err, "tenant_id", id)
		}
	}

	tenant, err := v.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tenant != nil && v.valkeyClient != nil {
		if err := v.valkeyClient.SetTenant(ctx, tenant); err != nil {
			logger.WithContext(ctx).Warn("Tenant cache write failed", "error", err, "tenant_id", id)
		}
	}
	return tenant, nil
}

func (v *TenantResourceValidator) getResource(ctx context.Context, id string) (*models.Resource, error) {
	if v.valkeyClient != nil {
		if resource, err := v.valkeyClient.GetResource(ctx, id); err == nil && resource != nil {
			return resource, nil
		} else if err != nil {
			logger.WithContext(ctx).Warn("Resource cache read failed", "error", err, "resource_id", id)
		}
	}

	resource, err := v.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if resource != nil && v.valkeyClient != nil {
		if err := v.valkeyClient.SetResource(ctx, resource); err != nil {
			logger.WithContext(ctx).Warn("Resource cache write failed", "error", err, "resource_id", id)
		}
	}
	return resource, nil
}
