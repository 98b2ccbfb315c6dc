package repository

import (
	"hallbook/internal/database"
)

type Repositories struct {
	Tenants       *TenantRepository
	Resources     *ResourceRepository
	Pricing       *PricingRepository
	Bookings      *BookingRepository
	Notifications *NotificationRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Tenants:       NewTenantRepository(db),
		Resources:     NewResourceRepository(db),
		Pricing:       NewPricingRepository(db),
		Bookings:      NewBookingRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}
