package models

import "time"

// NATS subjects published by the booking engine
const (
	EventBookingCreated = "booking.created"
)

// BookingCreatedEvent is published after a booking is persisted. It
// carries everything the notifier needs so consumers never have to read
// the booking store.
type BookingCreatedEvent struct {
	BookingID       string    `json:"booking_id"`
	BookingCode     string    `json:"booking_code"`
	TenantID        string    `json:"tenant_id"`
	TenantEmail     string    `json:"tenant_email"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	EventType       string    `json:"event_type"`
	HallName        string    `json:"hall_name"`
	BookingDate     string    `json:"booking_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	GuestCount      *int      `json:"guest_count,omitempty"`
	CalculatedPrice float64   `json:"calculated_price"`
	Backend         string    `json:"backend"`
	Timestamp       time.Time `json:"timestamp"`
}
