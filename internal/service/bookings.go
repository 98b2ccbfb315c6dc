package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hallbook/internal/apperr"
	"hallbook/internal/logger"
	"hallbook/internal/metrics"
	"hallbook/internal/models"

	"github.com/google/uuid"
)

// BookingService runs the admission pipeline: field validation, tenant
// and resource validation, conflict detection, pricing, code allocation
// and the primary/fallback write.
type BookingService struct {
	validator *TenantResourceValidator
	pricing   *PricingCalculator
	primary   BookingStore
	fallback  BookingStore
	publisher Publisher

	now func() time.Time
}

func NewBookingService(validator *TenantResourceValidator, pricing *PricingCalculator, primary, fallback BookingStore, publisher Publisher) *BookingService {
	return &BookingService{
		validator: validator,
		pricing:   pricing,
		primary:   primary,
		fallback:  fallback,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	resourceIDs := req.Resources()

	if err := validateRequest(req, resourceIDs, s.now()); err != nil {
		return nil, err
	}

	tenant, resources, err := s.validator.Validate(ctx, req.TenantID, req.CustomerID, resourceIDs)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal("Internal server error", err)
	}

	window, err := NewTimeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, apperr.Validation("Invalid time format")
	}

	booking := buildBooking(req, resourceIDs, resources)
	booking.CalculatedPrice, booking.PriceDetails = s.pricing.Price(
		ctx, req.TenantID, resourceIDs, req.BookingDate, window, req.EstimatedPrice)

	backend, err := s.persist(ctx, booking, window)
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, tenant, booking, backend)

	return &models.CreateBookingResponse{
		Message:         "Booking created successfully",
		BookingID:       booking.ID,
		BookingCode:     booking.BookingCode,
		BookingSource:   booking.BookingSource,
		CalculatedPrice: booking.CalculatedPrice,
		Status:          booking.Status,
	}, nil
}

// persist writes the booking through the primary store, falling back
// once to the alternate store when the primary path fails with a
// storage error. A typed rejection (conflict) never triggers the
// fallback. At most one record is persisted per request.
func (s *BookingService) persist(ctx context.Context, booking *models.Booking, window TimeWindow) (string, error) {
	primaryErr := s.createWith(ctx, s.primary, booking, window)
	if primaryErr == nil {
		return s.primary.Name(), nil
	}
	if _, ok := apperr.As(primaryErr); ok {
		return "", primaryErr
	}

	logger.WithContext(ctx).Error("Primary booking write failed, trying fallback store",
		"error", primaryErr,
		"backend", s.primary.Name(),
		"booking_id", booking.ID)
	metrics.FallbackWrites.Inc()

	fallbackErr := s.createWith(ctx, s.fallback, booking, window)
	if fallbackErr == nil {
		return s.fallback.Name(), nil
	}
	if _, ok := apperr.As(fallbackErr); ok {
		return "", fallbackErr
	}

	return "", apperr.Internal("Internal server error", errors.Join(primaryErr, fallbackErr))
}

// createWith runs conflict detection, code allocation and the insert
// under the store's slot lock, so two concurrent requests for the same
// tenant and date cannot both pass the conflict check.
func (s *BookingService) createWith(ctx context.Context, store BookingStore, booking *models.Booking, window TimeWindow) error {
	return store.WithSlotLock(ctx, booking.TenantID, booking.BookingDate, func(ctx context.Context) error {
		existing, err := store.ListForDate(ctx, booking.TenantID, booking.BookingDate)
		if err != nil {
			return fmt.Errorf("failed to list bookings for conflict check: %w", err)
		}

		if conflict := findConflict(existing, booking.ResourceIDs, window); conflict != nil {
			metrics.BookingConflicts.Inc()
			return apperr.Conflict("Time slot is already booked. Please choose a different time.", &apperr.ConflictInfo{
				BookingID:     conflict.ID,
				StartTime:     conflict.StartTime,
				EndTime:       conflict.EndTime,
				CustomerName:  conflict.CustomerName,
				Status:        conflict.Status,
				RequestedTime: booking.StartTime + " - " + booking.EndTime,
				BookedTime:    conflict.StartTime + " - " + conflict.EndTime,
				Date:          booking.BookingDate,
			})
		}

		// The fallback path re-derives a code only when the primary
		// path failed before allocation completed.
		if booking.BookingCode == "" {
			code, err := NewBookingCodeAllocator(store).Allocate(ctx, booking.BookingDate, booking.ID)
			if err != nil {
				return err
			}
			booking.BookingCode = code
		}

		if err := store.Insert(ctx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		metrics.BookingsCreated.WithLabelValues(store.Name()).Inc()
		return nil
	})
}

// findConflict returns the first active booking sharing a resource and
// overlapping the requested window. Which conflict is reported when
// several exist is not defined.
func findConflict(existing []models.Booking, resourceIDs []string, window TimeWindow) *models.Booking {
	requested := make(map[string]struct{}, len(resourceIDs))
	for _, id := range resourceIDs {
		requested[id] = struct{}{}
	}

	for i := range existing {
		candidate := &existing[i]
		if !candidate.IsActive() {
			continue
		}

		intersects := false
		for _, id := range candidate.ResourceIDs {
			if _, ok := requested[id]; ok {
				intersects = true
				break
			}
		}
		if !intersects {
			continue
		}

		candidateWindow, err := NewTimeWindow(candidate.StartTime, candidate.EndTime)
		if err != nil {
			continue
		}
		if window.Overlaps(candidateWindow) {
			return candidate
		}
	}
	return nil
}

func buildBooking(req *models.CreateBookingRequest, resourceIDs []string, resources []models.Resource) *models.Booking {
	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = r.Name
	}

	booking := &models.Booking{
		ID:                    uuid.New().String(),
		TenantID:              req.TenantID,
		ResourceIDs:           resourceIDs,
		ResourceNames:         names,
		BookingDate:           req.BookingDate,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		CustomerName:          strings.TrimSpace(req.CustomerName),
		CustomerEmail:         strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:         normalizePhone(req.CustomerPhone),
		EventType:             req.EventType,
		GuestCount:            req.GuestCount,
		AdditionalDescription: req.AdditionalDescription,
		Status:                models.StatusPending,
		BookingSource:         req.BookingSource,
	}
	if req.CustomerID != "" {
		booking.CustomerID = &req.CustomerID
	}
	if req.CustomerAvatar != "" {
		booking.CustomerAvatar = &req.CustomerAvatar
	}
	if booking.BookingSource == "" {
		booking.BookingSource = "website"
	}
	return booking
}

// publishCreated dispatches the side-effect event. Delivery failures
// are logged and absorbed so the booking outcome stays independent of
// notifications.
func (s *BookingService) publishCreated(ctx context.Context, tenant *models.Tenant, booking *models.Booking, backend string) {
	if s.publisher == nil {
		return
	}

	event := models.BookingCreatedEvent{
		BookingID:       booking.ID,
		BookingCode:     booking.BookingCode,
		TenantID:        booking.TenantID,
		TenantEmail:     tenant.Email,
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		CustomerPhone:   booking.CustomerPhone,
		EventType:       booking.EventType,
		HallName:        strings.Join(booking.ResourceNames, ", "),
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		GuestCount:      booking.GuestCount,
		CalculatedPrice: booking.CalculatedPrice,
		Backend:         backend,
		Timestamp:       s.now(),
	}

	if err := s.publisher.Publish(models.EventBookingCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", models.EventBookingCreated)
	}
}
