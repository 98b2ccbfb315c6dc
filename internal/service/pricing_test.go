package service

import (
	"context"
	"errors"
	"testing"

	"hallbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestPricingHourly(t *testing.T) {
	dir := newTestDirectory()
	calc := NewPricingCalculator(fakeRates{dir})

	window, err := NewTimeWindow("10:00", "13:00")
	require.NoError(t, err)

	price, details := calc.Price(context.Background(), "tenant-1", []string{"hall-a"}, "2026-01-12", window, nil)
	assert.Equal(t, 300.0, price)
	require.NotNil(t, details)
	assert.False(t, details.MultiResource)
	require.Len(t, details.Breakdown, 1)
	assert.Equal(t, models.RateTypeHourly, details.Breakdown[0].RateType)
	assert.Equal(t, 100.0, details.Breakdown[0].AppliedRate)
	assert.Equal(t, 3.0, details.Breakdown[0].DurationHours)
	assert.False(t, details.Breakdown[0].IsWeekend)
}

func TestPricingDailyHalfDayThreshold(t *testing.T) {
	dir := newTestDirectory()
	calc := NewPricingCalculator(fakeRates{dir})

	short, _ := NewTimeWindow("10:00", "14:00") // 4h, under threshold
	price, _ := calc.Price(context.Background(), "tenant-1", []string{"hall-b"}, "2026-01-12", short, nil)
	assert.Equal(t, 250.0, price)

	long, _ := NewTimeWindow("09:00", "18:00") // 9h
	price, _ = calc.Price(context.Background(), "tenant-1", []string{"hall-b"}, "2026-01-12", long, nil)
	assert.Equal(t, 500.0, price)

	exact, _ := NewTimeWindow("09:00", "17:00") // exactly 8h
	price, _ = calc.Price(context.Background(), "tenant-1", []string{"hall-b"}, "2026-01-12", exact, nil)
	assert.Equal(t, 500.0, price)
}

func TestPricingWeekendSelectsWeekendRate(t *testing.T) {
	dir := newTestDirectory()
	calc := NewPricingCalculator(fakeRates{dir})

	window, _ := NewTimeWindow("10:00", "12:00")

	// Saturday and Sunday use the weekend rate regardless of today.
	for _, date := range []string{"2026-01-10", "2026-01-11"} {
		price, details := calc.Price(context.Background(), "tenant-1", []string{"hall-a"}, date, window, nil)
		assert.Equal(t, 100.0, price, "date %s", date) // 50 * 2h
		assert.True(t, details.Breakdown[0].IsWeekend)
		assert.Equal(t, 50.0, details.Breakdown[0].AppliedRate)
	}
}

func TestPricingFractionalHours(t *testing.T) {
	dir := newTestDirectory()
	calc := NewPricingCalculator(fakeRates{dir})

	window, _ := NewTimeWindow("10:00", "11:30")
	price, _ := calc.Price(context.Background(), "tenant-1", []string{"hall-a"}, "2026-01-12", window, nil)
	assert.Equal(t, 150.0, price)
}

func TestPricingNoRuleFallsBackToEstimate(t *testing.T) {
	dir := newTestDirectory()
	dir.rates = map[string]*models.PricingRule{}
	calc := NewPricingCalculator(fakeRates{dir})

	window, _ := NewTimeWindow("10:00", "12:00")

	price, details := calc.Price(context.Background(), "tenant-1", []string{"hall-a"}, "2026-01-12", window, floatPtr(777))
	assert.Equal(t, 777.0, price)
	assert.Nil(t, details)

	price, details = calc.Price(context.Background(), "tenant-1", []string{"hall-a"}, "2026-01-12", window, nil)
	assert.Equal(t, 0.0, price)
	assert.Nil(t, details)
}

func TestPricingLookupErrorDegradesToEstimate(t *testing.T) {
	dir := newTestDirectory()
	dir.rateErr = errors.New("store unavailable")
	calc := NewPricingCalculator(fakeRates{dir})

	window, _ := NewTimeWindow("10:00", "12:00")
	price, details := calc.Price(context.Background(), "tenant-1", []string{"hall-a"}, "2026-01-12", window, floatPtr(123))
	assert.Equal(t, 123.0, price)
	assert.Nil(t, details)
}

func TestPricingUnmatchedResourceOmittedFromBreakdown(t *testing.T) {
	dir := newTestDirectory()
	delete(dir.rates, "tenant-1:hall-b")
	calc := NewPricingCalculator(fakeRates{dir})

	window, _ := NewTimeWindow("10:00", "12:00")
	price, details := calc.Price(context.Background(), "tenant-1", []string{"hall-a", "hall-b"}, "2026-01-12", window, nil)
	assert.Equal(t, 200.0, price)
	require.NotNil(t, details)
	assert.True(t, details.MultiResource)
	require.Len(t, details.Breakdown, 1)
	assert.Equal(t, "hall-a", details.Breakdown[0].ResourceID)
}
