package service

import (
	"context"

	"hallbook/internal/cache"
	"hallbook/internal/models"
	"hallbook/internal/repository"
)

// BookingStore is the storage surface booking creation works against.
// Two implementations exist: the Postgres primary and the Elasticsearch
// fallback. WithSlotLock serializes conflict-check-and-insert for one
// (tenant, date) slot.
type BookingStore interface {
	Name() string
	Insert(ctx context.Context, booking *models.Booking) error
	GetByCode(ctx context.Context, code string) (*models.Booking, error)
	ListForDate(ctx context.Context, tenantID, bookingDate string) ([]models.Booking, error)
	WithSlotLock(ctx context.Context, tenantID, bookingDate string, fn func(ctx context.Context) error) error
}

// BookingLister serves date-range projections. Only the primary store
// supports range queries.
type BookingLister interface {
	ListByTenant(ctx context.Context, tenantID, startDate, endDate string) ([]models.Booking, error)
}

// TenantDirectory resolves tenants and the tenant a customer account is
// registered with.
type TenantDirectory interface {
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	GetCustomerTenant(ctx context.Context, customerID string) (string, error)
}

// ResourceDirectory resolves bookable resources.
type ResourceDirectory interface {
	GetByID(ctx context.Context, id string) (*models.Resource, error)
}

// RateSource resolves the pricing rule consulted for one resource.
type RateSource interface {
	GetByTenantAndResource(ctx context.Context, tenantID, resourceID string) (*models.PricingRule, error)
}

// Publisher dispatches side-effect events. Callers absorb failures.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

type Services struct {
	Bookings     *BookingService
	Availability *AvailabilityService
	Catalog      *CatalogService
}

func NewServices(repos *repository.Repositories, primary, fallback BookingStore, valkeyClient *cache.ValkeyClient, publisher Publisher) *Services {
	validator := NewTenantResourceValidator(repos.Tenants, repos.Resources, valkeyClient)
	pricing := NewPricingCalculator(repos.Pricing)
	bookingService := NewBookingService(validator, pricing, primary, fallback, publisher)
	availabilityService := NewAvailabilityService(repos.Tenants, repos.Bookings)
	catalogService := NewCatalogService(repos.Tenants, repos.Resources, repos.Pricing, valkeyClient)

	return &Services{
		Bookings:     bookingService,
		Availability: availabilityService,
		Catalog:      catalogService,
	}
}
