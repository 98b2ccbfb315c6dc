package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hallbook/internal/apperr"
	"hallbook/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	phoneNoise   = regexp.MustCompile(`[\s\-\(\)]`)
)

// TimeWindow is a half-open [start, end) time-of-day interval in
// minutes since midnight.
type TimeWindow struct {
	Start int
	End   int
}

// NewTimeWindow parses two HH:MM clock values. It does not check
// ordering; that is the caller's validation step.
func NewTimeWindow(startTime, endTime string) (TimeWindow, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return TimeWindow{}, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Overlaps tests half-open interval overlap: a window ending exactly
// when another starts does not overlap it.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start < other.End && w.End > other.Start
}

// Hours returns the window duration in fractional hours.
func (w TimeWindow) Hours() float64 {
	return float64(w.End-w.Start) / 60.0
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}

func parseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h*60 + m, nil
}

func normalizePhone(phone string) string {
	return phoneNoise.ReplaceAllString(phone, "")
}

// validateRequest checks the booking request fields in order,
// short-circuiting on the first failure. resourceIDs is the already
// normalized resource list.
func validateRequest(req *models.CreateBookingRequest, resourceIDs []string, now time.Time) error {
	missing := req.TenantID == "" || req.CustomerName == "" || req.CustomerEmail == "" ||
		req.CustomerPhone == "" || req.EventType == "" || len(resourceIDs) == 0 ||
		req.BookingDate == "" || req.StartTime == "" || req.EndTime == ""
	if missing {
		return apperr.Validation("Missing required fields")
	}

	if !emailPattern.MatchString(req.CustomerEmail) {
		return apperr.Validation("Invalid email format")
	}

	if !phonePattern.MatchString(normalizePhone(req.CustomerPhone)) {
		return apperr.Validation("Invalid phone number format")
	}

	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return apperr.Validation("Invalid booking date format")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if bookingDate.Before(today) {
		return apperr.Validation("Booking date cannot be in the past")
	}

	if !clockPattern.MatchString(req.StartTime) || !clockPattern.MatchString(req.EndTime) {
		return apperr.Validation("Invalid time format")
	}

	window, err := NewTimeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return apperr.Validation("Invalid time format")
	}
	if window.Start >= window.End {
		return apperr.Validation("Start time must be before end time")
	}

	return nil
}

// isWeekend reports whether the booking date falls on Saturday or
// Sunday. The date is assumed already validated.
func isWeekend(bookingDate string) bool {
	d, err := time.Parse("2006-01-02", bookingDate)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// dateDigits strips the dashes out of a YYYY-MM-DD date for use in
// booking codes.
func dateDigits(bookingDate string) string {
	return strings.ReplaceAll(bookingDate, "-", "")
}
