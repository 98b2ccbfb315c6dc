package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hallbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodeChecker struct {
	existing  map[string]bool
	alwaysHit bool
	err       error
	probes    int
}

func (f *fakeCodeChecker) GetByCode(_ context.Context, code string) (*models.Booking, error) {
	f.probes++
	if f.err != nil {
		return nil, f.err
	}
	if f.alwaysHit || f.existing[code] {
		return &models.Booking{BookingCode: code}, nil
	}
	return nil, nil
}

func TestAllocateReturnsUnusedCode(t *testing.T) {
	checker := &fakeCodeChecker{existing: map[string]bool{}}
	allocator := NewBookingCodeAllocator(checker)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := allocator.Allocate(context.Background(), "2026-01-12", "booking-id")
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
		assert.True(t, strings.HasPrefix(code, "BK-20260112-"))
		assert.False(t, checker.existing[code])
		seen[code] = true
		checker.existing[code] = true
	}
	// 50 allocations against a growing store stay unique.
	assert.Len(t, seen, 50)
}

func TestAllocateSuffixUsesRestrictedAlphabet(t *testing.T) {
	allocator := NewBookingCodeAllocator(&fakeCodeChecker{})

	for i := 0; i < 20; i++ {
		code, err := allocator.Allocate(context.Background(), "2026-01-12", "x")
		require.NoError(t, err)
		suffix := code[len(code)-codeSuffixLen:]
		for _, ch := range suffix {
			assert.Contains(t, codeAlphabet, string(ch))
		}
	}
}

func TestAllocateDeterministicFallback(t *testing.T) {
	checker := &fakeCodeChecker{alwaysHit: true}
	allocator := NewBookingCodeAllocator(checker)

	code, err := allocator.Allocate(context.Background(), "2026-01-12", "7bb9f2c0-4f6e-4a1d-9c3a-1f2e3d4c5b6a")
	require.NoError(t, err)

	assert.Equal(t, maxCodeDraws, checker.probes)
	// Last 6 chars of the id, uppercased.
	assert.Equal(t, "BK-20260112-4C5B6A", code)
}

func TestAllocateShortIDFallback(t *testing.T) {
	allocator := NewBookingCodeAllocator(&fakeCodeChecker{alwaysHit: true})

	code, err := allocator.Allocate(context.Background(), "2026-01-12", "ab1")
	require.NoError(t, err)
	assert.Equal(t, "BK-20260112-AB1", code)
}

func TestAllocatePropagatesReadErrors(t *testing.T) {
	allocator := NewBookingCodeAllocator(&fakeCodeChecker{err: errors.New("store down")})

	_, err := allocator.Allocate(context.Background(), "2026-01-12", "id")
	assert.Error(t, err)
}
