package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"hallbook/internal/models"
	"hallbook/internal/repository"

	"github.com/google/uuid"
	"github.com/nats-io/stan.go"
)

// NotificationSink records tenant notifications.
type NotificationSink interface {
	Insert(ctx context.Context, notification *models.Notification) error
}

// Mailer sends the booking emails.
type Mailer interface {
	SendBookingConfirmationToCustomer(event *models.BookingCreatedEvent) error
	SendBookingAlertToTenant(event *models.BookingCreatedEvent) error
}

type Handlers struct {
	notifications NotificationSink
	mailer        Mailer
}

func NewHandlers(repos *repository.Repositories, mailer Mailer) *Handlers {
	return &Handlers{
		notifications: repos.Notifications,
		mailer:        mailer,
	}
}

// HandleBookingCreated records a tenant notification and sends both
// emails. Every step is independent; one failing never blocks the
// others, and the message is acked regardless so a poisoned event
// cannot wedge the queue.
func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	h.processBookingCreated(m.Data)
	m.Ack()
}

func (h *Handlers) processBookingCreated(data []byte) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Processing booking created event",
		"booking_id", event.BookingID,
		"booking_code", event.BookingCode,
		"tenant_id", event.TenantID)

	ctx := context.Background()

	notification := &models.Notification{
		ID:       uuid.New().String(),
		TenantID: event.TenantID,
		Type:     "new_booking",
		Title:    "New Booking Request",
		Message:  fmt.Sprintf("New booking request from %s for %s", event.CustomerName, event.BookingDate),
		Data: map[string]any{
			"bookingId":    event.BookingID,
			"bookingCode":  event.BookingCode,
			"customerName": event.CustomerName,
			"bookingDate":  event.BookingDate,
			"hallName":     event.HallName,
		},
	}
	if err := h.notifications.Insert(ctx, notification); err != nil {
		slog.Error("Failed to insert notification", "error", err, "booking_id", event.BookingID)
	}

	if err := h.mailer.SendBookingConfirmationToCustomer(&event); err != nil {
		slog.Error("Failed to send customer confirmation email", "error", err, "booking_id", event.BookingID)
	}

	if err := h.mailer.SendBookingAlertToTenant(&event); err != nil {
		slog.Error("Failed to send tenant alert email", "error", err, "booking_id", event.BookingID)
	}
}
