package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hallbook/internal/models"
	"hallbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct{}

func (stubDirectory) GetByID(_ context.Context, id string) (*models.Tenant, error) {
	if id != "tenant-1" {
		return nil, nil
	}
	return &models.Tenant{
		ID:           "tenant-1",
		Role:         models.RoleHallOwner,
		Email:        "owner@venue.test",
		BusinessName: "Test Venue",
	}, nil
}

func (stubDirectory) GetCustomerTenant(context.Context, string) (string, error) {
	return "", nil
}

type stubResources struct{}

func (stubResources) GetByID(_ context.Context, id string) (*models.Resource, error) {
	if id != "hall-a" {
		return nil, nil
	}
	return &models.Resource{ID: "hall-a", TenantID: "tenant-1", Name: "Hall A"}, nil
}

type stubRates struct{}

func (stubRates) GetByTenantAndResource(_ context.Context, tenantID, resourceID string) (*models.PricingRule, error) {
	return &models.PricingRule{
		TenantID: tenantID, ResourceID: resourceID,
		RateType: models.RateTypeHourly, WeekdayRate: 100, WeekendRate: 50,
	}, nil
}

type memoryStore struct {
	name     string
	bookings []models.Booking
}

func (m *memoryStore) Name() string { return m.name }

func (m *memoryStore) Insert(_ context.Context, booking *models.Booking) error {
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *memoryStore) GetByCode(_ context.Context, code string) (*models.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].BookingCode == code {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) ListForDate(_ context.Context, tenantID, bookingDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.TenantID == tenantID && b.BookingDate == bookingDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryStore) ListByTenant(_ context.Context, tenantID, startDate, endDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
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

func (m *memoryStore) WithSlotLock(ctx context.Context, _, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func setupRouter() (*gin.Engine, *memoryStore) {
	gin.SetMode(gin.TestMode)

	primary := &memoryStore{name: "postgres"}
	fallback := &memoryStore{name: "elasticsearch"}

	validator := service.NewTenantResourceValidator(stubDirectory{}, stubResources{}, nil)
	pricing := service.NewPricingCalculator(stubRates{})
	services := &service.Services{
		Bookings:     service.NewBookingService(validator, pricing, primary, fallback, nil),
		Availability: service.NewAvailabilityService(stubDirectory{}, primary),
	}

	h := NewHandlers(services)

	r := gin.New()
	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/unavailable-dates/:tenantId", h.UnavailableDates)
		}
	}

	return r, primary
}

func postBooking(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBookingBody() map[string]any {
	return map[string]any{
		"hallOwnerId":   "tenant-1",
		"customerName":  "Aigerim Bekova",
		"customerEmail": "aigerim@example.com",
		"customerPhone": "+77011234567",
		"eventType":     "wedding",
		"selectedHalls": []string{"hall-a"},
		"bookingDate":   "2030-06-10",
		"startTime":     "10:00",
		"endTime":       "13:00",
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	r, primary := setupRouter()

	w := postBooking(t, r, validBookingBody())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Booking created successfully", resp.Message)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.NotEmpty(t, resp.BookingID)
	assert.Regexp(t, `^BK-20300610-`, resp.BookingCode)
	assert.Equal(t, 300.0, resp.CalculatedPrice)

	assert.Len(t, primary.bookings, 1)
}

func TestCreateBookingEndpointInvalidJSON(t *testing.T) {
	r, _ := setupRouter()

	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	r, _ := setupRouter()

	body := validBookingBody()
	delete(body, "customerEmail")

	w := postBooking(t, r, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
}

func TestCreateBookingEndpointTenantNotFound(t *testing.T) {
	r, _ := setupRouter()

	body := validBookingBody()
	body["hallOwnerId"] = "ghost"

	w := postBooking(t, r, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Hall owner not found")
}

func TestCreateBookingEndpointConflict(t *testing.T) {
	r, _ := setupRouter()

	w := postBooking(t, r, validBookingBody())
	require.Equal(t, http.StatusOK, w.Code)

	// Same slot again.
	w = postBooking(t, r, validBookingBody())
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp models.ConflictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Time slot is already booked. Please choose a different time.", resp.Message)
	assert.NotEmpty(t, resp.ConflictingBooking.BookingID)
	assert.Equal(t, "10:00 - 13:00", resp.Debug.RequestedTime)
	assert.Equal(t, "2030-06-10", resp.Debug.Date)
	assert.Equal(t, "one or more selected resources", resp.Debug.Resource)
}

func TestCreateBookingEndpointBoundaryTimes(t *testing.T) {
	r, _ := setupRouter()

	w := postBooking(t, r, validBookingBody())
	require.Equal(t, http.StatusOK, w.Code)

	// Starts exactly when the first booking ends.
	body := validBookingBody()
	body["startTime"] = "13:00"
	body["endTime"] = "15:00"

	w = postBooking(t, r, body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnavailableDatesEndpoint(t *testing.T) {
	r, _ := setupRouter()

	w := postBooking(t, r, validBookingBody())
	require.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/api/bookings/unavailable-dates/tenant-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.UnavailableDatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalBookings)
	require.Contains(t, resp.UnavailableDates, "2030-06-10")
	assert.Len(t, resp.UnavailableDates["2030-06-10"]["hall-a"], 1)
}

func TestUnavailableDatesEndpointUnknownTenant(t *testing.T) {
	r, _ := setupRouter()

	req, _ := http.NewRequest("GET", "/api/bookings/unavailable-dates/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
