package service

import (
	"context"
	"testing"

	"hallbook/internal/apperr"
	"hallbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	bookings []models.Booking
}

func (f *fakeLister) ListByTenant(_ context.Context, tenantID, startDate, endDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TenantID != tenantID {
			continue
		}
		if startDate != "" && b.BookingDate < startDate {
			continue
		}
		if endDate != "" && b.BookingDate > endDate {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func availabilityFixture() *fakeLister {
	return &fakeLister{bookings: []models.Booking{
		{ID: "b1", TenantID: "tenant-1", ResourceIDs: []string{"hall-a"}, BookingDate: "2026-01-10",
			StartTime: "10:00", EndTime: "12:00", CustomerName: "A", EventType: "wedding", Status: models.StatusPending},
		{ID: "b2", TenantID: "tenant-1", ResourceIDs: []string{"hall-a", "hall-b"}, BookingDate: "2026-01-10",
			StartTime: "14:00", EndTime: "18:00", CustomerName: "B", EventType: "conference", Status: models.StatusConfirmed},
		{ID: "b3", TenantID: "tenant-1", ResourceIDs: []string{"hall-b"}, BookingDate: "2026-01-11",
			StartTime: "09:00", EndTime: "11:00", CustomerName: "C", EventType: "birthday", Status: models.StatusCancelled},
	}}
}

func TestUnavailableDatesProjection(t *testing.T) {
	svc := NewAvailabilityService(newTestDirectory(), availabilityFixture())

	resp, err := svc.UnavailableDates(context.Background(), "tenant-1", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Successfully fetched unavailable dates", resp.Message)
	assert.Equal(t, 2, resp.TotalBookings) // cancelled b3 excluded

	day := resp.UnavailableDates["2026-01-10"]
	require.NotNil(t, day)
	assert.Len(t, day["hall-a"], 2)
	assert.Len(t, day["hall-b"], 1)

	// Multi-resource bookings appear under every resource they occupy.
	assert.Equal(t, "b2", day["hall-b"][0].BookingID)

	_, hasCancelledDay := resp.UnavailableDates["2026-01-11"]
	assert.False(t, hasCancelledDay)
}

func TestUnavailableDatesResourceFilter(t *testing.T) {
	svc := NewAvailabilityService(newTestDirectory(), availabilityFixture())

	resp, err := svc.UnavailableDates(context.Background(), "tenant-1", "hall-b", "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalBookings)
	day := resp.UnavailableDates["2026-01-10"]
	require.NotNil(t, day)
	assert.Len(t, day["hall-b"], 1)
	_, hasOther := day["hall-a"]
	assert.False(t, hasOther)
}

func TestUnavailableDatesDateRangeFilter(t *testing.T) {
	lister := availabilityFixture()
	lister.bookings = append(lister.bookings, models.Booking{
		ID: "b4", TenantID: "tenant-1", ResourceIDs: []string{"hall-a"}, BookingDate: "2026-02-01",
		StartTime: "10:00", EndTime: "12:00", CustomerName: "D", EventType: "wedding", Status: models.StatusPending,
	})
	svc := NewAvailabilityService(newTestDirectory(), lister)

	resp, err := svc.UnavailableDates(context.Background(), "tenant-1", "", "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalBookings)
	assert.Contains(t, resp.UnavailableDates, "2026-02-01")
}

func TestUnavailableDatesUnknownTenant(t *testing.T) {
	svc := NewAvailabilityService(newTestDirectory(), availabilityFixture())

	_, err := svc.UnavailableDates(context.Background(), "missing", "", "", "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
