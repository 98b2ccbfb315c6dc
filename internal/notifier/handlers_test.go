package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hallbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	notifications []models.Notification
	err           error
}

func (f *fakeSink) Insert(_ context.Context, n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, *n)
	return nil
}

type fakeMailer struct {
	customerMails []models.BookingCreatedEvent
	tenantMails   []models.BookingCreatedEvent
	customerErr   error
}

func (f *fakeMailer) SendBookingConfirmationToCustomer(e *models.BookingCreatedEvent) error {
	if f.customerErr != nil {
		return f.customerErr
	}
	f.customerMails = append(f.customerMails, *e)
	return nil
}

func (f *fakeMailer) SendBookingAlertToTenant(e *models.BookingCreatedEvent) error {
	f.tenantMails = append(f.tenantMails, *e)
	return nil
}

func sampleEvent() models.BookingCreatedEvent {
	return models.BookingCreatedEvent{
		BookingID:     "booking-1",
		BookingCode:   "BK-20260112-ABCDE",
		TenantID:      "tenant-1",
		TenantEmail:   "owner@venue.test",
		CustomerName:  "Aigerim Bekova",
		CustomerEmail: "aigerim@example.com",
		EventType:     "wedding",
		HallName:      "Hall A",
		BookingDate:   "2026-01-12",
		StartTime:     "10:00",
		EndTime:       "13:00",
	}
}

func TestProcessBookingCreated(t *testing.T) {
	sink := &fakeSink{}
	mailer := &fakeMailer{}
	h := &Handlers{notifications: sink, mailer: mailer}

	payload, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	h.processBookingCreated(payload)

	require.Len(t, sink.notifications, 1)
	n := sink.notifications[0]
	assert.Equal(t, "tenant-1", n.TenantID)
	assert.Equal(t, "new_booking", n.Type)
	assert.Equal(t, "New Booking Request", n.Title)
	assert.Equal(t, "New booking request from Aigerim Bekova for 2026-01-12", n.Message)
	assert.Equal(t, "BK-20260112-ABCDE", n.Data["bookingCode"])
	assert.False(t, n.IsRead)

	require.Len(t, mailer.customerMails, 1)
	require.Len(t, mailer.tenantMails, 1)
}

func TestProcessBookingCreatedFailuresAreIndependent(t *testing.T) {
	sink := &fakeSink{err: errors.New("insert failed")}
	mailer := &fakeMailer{customerErr: errors.New("smtp down")}
	h := &Handlers{notifications: sink, mailer: mailer}

	payload, _ := json.Marshal(sampleEvent())
	h.processBookingCreated(payload)

	// The tenant email still goes out even when the notification record
	// and customer email fail.
	assert.Len(t, mailer.tenantMails, 1)
}

func TestProcessBookingCreatedBadPayload(t *testing.T) {
	sink := &fakeSink{}
	mailer := &fakeMailer{}
	h := &Handlers{notifications: sink, mailer: mailer}

	h.processBookingCreated([]byte("{broken"))

	assert.Empty(t, sink.notifications)
	assert.Empty(t, mailer.customerMails)
}
