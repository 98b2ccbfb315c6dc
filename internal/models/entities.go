package models

import "time"

// Tenant roles. Only hall owners can receive bookings.
const RoleHallOwner = "hall_owner"

// Booking statuses. Only pending and confirmed bookings occupy a slot.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// Pricing rate types
const (
	RateTypeHourly = "hourly"
	RateTypeDaily  = "daily"
)

// Tenant is a venue operator that owns bookable resources. The engine
// treats tenants as read-only.
type Tenant struct {
	ID                string    `json:"id"`
	Role              string    `json:"role"`
	Email             string    `json:"email"`
	BusinessName      string    `json:"businessName"`
	Address           string    `json:"address"`
	Phone             string    `json:"phone"`
	AllowedEventTypes []string  `json:"allowedEventTypes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Resource is a bookable unit (hall, room) owned by exactly one tenant.
type Resource struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Capacity    int       `json:"capacity"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PricingRule configures how a single resource is priced. The first rule
// found for (tenant, resource) is the one consulted.
type PricingRule struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	ResourceID   string    `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	RateType     string    `json:"rateType"`
	WeekdayRate  float64   `json:"weekdayRate"`
	WeekendRate  float64   `json:"weekendRate"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PriceBreakdownItem records how one resource contributed to the total.
type PriceBreakdownItem struct {
	ResourceID      string  `json:"resourceId"`
	WeekdayRate     float64 `json:"weekdayRate"`
	WeekendRate     float64 `json:"weekendRate"`
	RateType        string  `json:"rateType"`
	AppliedRate     float64 `json:"appliedRate"`
	DurationHours   float64 `json:"durationHours"`
	IsWeekend       bool    `json:"isWeekend"`
	CalculatedPrice float64 `json:"calculatedPrice"`
}

// PriceDetails is the per-resource pricing envelope stored with the
// booking. Nil when no resource had a matching rule.
type PriceDetails struct {
	MultiResource          bool                 `json:"multiResource"`
	Breakdown              []PriceBreakdownItem `json:"breakdown"`
	Total                  float64              `json:"total"`
	CalculationMethod      string               `json:"calculationMethod"`
	FrontendEstimatedPrice *float64             `json:"frontendEstimatedPrice"`
}

// Booking is the record this engine creates. It is never mutated after
// creation; lifecycle transitions happen elsewhere.
type Booking struct {
	ID                    string        `json:"id"`
	TenantID              string        `json:"tenantId"`
	ResourceIDs           []string      `json:"resourceIds"`
	ResourceNames         []string      `json:"resourceNames"`
	BookingDate           string        `json:"bookingDate"`
	StartTime             string        `json:"startTime"`
	EndTime               string        `json:"endTime"`
	CustomerID            *string       `json:"customerId,omitempty"`
	CustomerName          string        `json:"customerName"`
	CustomerEmail         string        `json:"customerEmail"`
	CustomerPhone         string        `json:"customerPhone"`
	CustomerAvatar        *string       `json:"customerAvatar,omitempty"`
	EventType             string        `json:"eventType"`
	GuestCount            *int          `json:"guestCount,omitempty"`
	AdditionalDescription string        `json:"additionalDescription"`
	Status                string        `json:"status"`
	CalculatedPrice       float64       `json:"calculatedPrice"`
	PriceDetails          *PriceDetails `json:"priceDetails,omitempty"`
	BookingCode           string        `json:"bookingCode"`
	BookingSource         string        `json:"bookingSource"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

// IsActive reports whether the booking occupies its slot for conflict
// purposes.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Notification is the tenant-facing record created after a successful
// booking write.
type Notification struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenantId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"isRead"`
	CreatedAt time.Time      `json:"createdAt"`
}
