package models

// CreateBookingRequest is the wire model for booking creation. The
// legacy single-resource field is accepted alongside the list form and
// normalized exactly once at the system boundary.
type CreateBookingRequest struct {
	TenantID              string   `json:"hallOwnerId"`
	CustomerID            string   `json:"customerId"`
	CustomerName          string   `json:"customerName"`
	CustomerEmail         string   `json:"customerEmail"`
	CustomerPhone         string   `json:"customerPhone"`
	CustomerAvatar        string   `json:"customerAvatar"`
	EventType             string   `json:"eventType"`
	SelectedHall          string   `json:"selectedHall"`
	SelectedHalls         []string `json:"selectedHalls"`
	BookingDate           string   `json:"bookingDate"`
	StartTime             string   `json:"startTime"`
	EndTime               string   `json:"endTime"`
	GuestCount            *int     `json:"guestCount"`
	AdditionalDescription string   `json:"additionalDescription"`
	EstimatedPrice        *float64 `json:"estimatedPrice"`
	BookingSource         string   `json:"bookingSource"`
}

// Resources returns the normalized resource id list: the multi-resource
// field when present, otherwise the legacy single field. Duplicates are
// dropped, order preserved.
func (r *CreateBookingRequest) Resources() []string {
	raw := r.SelectedHalls
	if len(raw) == 0 && r.SelectedHall != "" {
		raw = []string{r.SelectedHall}
	}

	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, id := range raw {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CreateBookingResponse is the success body for booking creation
type CreateBookingResponse struct {
	Message         string  `json:"message"`
	BookingID       string  `json:"bookingId"`
	BookingCode     string  `json:"bookingCode"`
	BookingSource   string  `json:"bookingSource"`
	CalculatedPrice float64 `json:"calculatedPrice"`
	Status          string  `json:"status"`
}

// ConflictingBooking identifies the booking occupying the requested slot
type ConflictingBooking struct {
	BookingID    string `json:"bookingId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
}

// ConflictDebug carries requested-vs-booked diagnostics for 409 bodies
type ConflictDebug struct {
	RequestedTime string `json:"requestedTime"`
	BookedTime    string `json:"bookedTime"`
	Date          string `json:"date"`
	Resource      string `json:"resource"`
}

// ConflictResponse is the 409 body for booking creation
type ConflictResponse struct {
	Message            string             `json:"message"`
	ConflictingBooking ConflictingBooking `json:"conflictingBooking"`
	Debug              ConflictDebug      `json:"debug"`
}

// UnavailableSlot describes one occupying booking inside the
// unavailable-dates projection
type UnavailableSlot struct {
	BookingID    string `json:"bookingId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	CustomerName string `json:"customerName"`
	EventType    string `json:"eventType"`
	Status       string `json:"status"`
}

// UnavailableDatesResponse maps date -> resource id -> occupying bookings
type UnavailableDatesResponse struct {
	UnavailableDates map[string]map[string][]UnavailableSlot `json:"unavailableDates"`
	TotalBookings    int                                      `json:"totalBookings"`
	Message          string                                   `json:"message"`
}

// HallOwnerInfo is the tenant contact block returned with public listings
type HallOwnerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ListResourcesResponse is the public resource listing body
type ListResourcesResponse struct {
	Resources []Resource    `json:"resources"`
	HallOwner HallOwnerInfo `json:"hallOwner"`
}

// ListPricingResponse is the public pricing listing body
type ListPricingResponse []PricingRule
