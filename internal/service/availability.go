package service

import (
	"context"
	"fmt"

	"hallbook/internal/apperr"
	"hallbook/internal/models"
)

// AvailabilityService builds the unavailable-dates projection: a
// read-only view of which slots are occupied, using the same
// active-status filter as conflict detection.
type AvailabilityService struct {
	tenants  TenantDirectory
	bookings BookingLister
}

func NewAvailabilityService(tenants TenantDirectory, bookings BookingLister) *AvailabilityService {
	return &AvailabilityService{tenants: tenants, bookings: bookings}
}

// UnavailableDates maps date -> resource id -> occupying bookings for
// one tenant. resourceID, startDate and endDate are optional filters.
func (s *AvailabilityService) UnavailableDates(ctx context.Context, tenantID, resourceID, startDate, endDate string) (*models.UnavailableDatesResponse, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant == nil || tenant.Role != models.RoleHallOwner {
		return nil, apperr.NotFound("Hall owner not found")
	}

	bookings, err := s.bookings.ListByTenant(ctx, tenantID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dates := make(map[string]map[string][]models.UnavailableSlot)
	total := 0

	for i := range bookings {
		booking := &bookings[i]
		if !booking.IsActive() {
			continue
		}

		slot := models.UnavailableSlot{
			BookingID:    booking.ID,
			StartTime:    booking.StartTime,
			EndTime:      booking.EndTime,
			CustomerName: booking.CustomerName,
			EventType:    booking.EventType,
			Status:       booking.Status,
		}

		matched := false
		for _, rid := range booking.ResourceIDs {
			if resourceID != "" && rid != resourceID {
				continue
			}
			matched = true
			byResource, ok := dates[booking.BookingDate]
			if !ok {
				byResource = make(map[string][]models.UnavailableSlot)
				dates[booking.BookingDate] = byResource
			}
			byResource[rid] = append(byResource[rid], slot)
		}
		if matched {
			total++
		}
	}

	return &models.UnavailableDatesResponse{
		UnavailableDates: dates,
		TotalBookings:    total,
		Message:          "Successfully fetched unavailable dates",
	}, nil
}
