package service

import (
	"context"

	"hallbook/internal/logger"
	"hallbook/internal/models"
)

// Half-day discount threshold for daily rates, in hours.
const halfDayThresholdHours = 8.0

// PricingCalculator computes per-resource and aggregate prices from the
// tenant's configured rate rules. It never fails a booking: missing
// rules and lookup errors degrade to the client-supplied estimate.
type PricingCalculator struct {
	rates RateSource
}

func NewPricingCalculator(rates RateSource) *PricingCalculator {
	return &PricingCalculator{rates: rates}
}

// Price returns the aggregate price and the per-resource breakdown for
// the requested resources. estimated is the client-supplied estimate
// used when no resource has a matching rule.
func (p *PricingCalculator) Price(ctx context.Context, tenantID string, resourceIDs []string, bookingDate string, window TimeWindow, estimated *float64) (float64, *models.PriceDetails) {
	durationHours := window.Hours()
	weekend := isWeekend(bookingDate)

	var breakdown []models.PriceBreakdownItem
	total := 0.0

	for _, resourceID := range resourceIDs {
		rule, err := p.rates.GetByTenantAndResource(ctx, tenantID, resourceID)
		if err != nil {
			logger.WithContext(ctx).Warn("Pricing rule lookup failed, falling back to client estimate",
				"error", err,
				"tenant_id", tenantID,
				"resource_id", resourceID)
			return clientEstimate(estimated), nil
		}
		if rule == nil {
			continue
		}

		rate := rule.WeekdayRate
		if weekend {
			rate = rule.WeekendRate
		}

		var price float64
		switch rule.RateType {
		case models.RateTypeDaily:
			if durationHours >= halfDayThresholdHours {
				price = rate
			} else {
				price = rate * 0.5
			}
		default:
			price = rate * durationHours
		}

		total += price
		breakdown = append(breakdown, models.PriceBreakdownItem{
			ResourceID:      resourceID,
			WeekdayRate:     rule.WeekdayRate,
			WeekendRate:     rule.WeekendRate,
			RateType:        rule.RateType,
			AppliedRate:     rate,
			DurationHours:   durationHours,
			IsWeekend:       weekend,
			CalculatedPrice: price,
		})
	}

	if len(breakdown) == 0 {
		return clientEstimate(estimated), nil
	}

	details := &models.PriceDetails{
		MultiResource:          len(resourceIDs) > 1,
		Breakdown:              breakdown,
		Total:                  total,
		CalculationMethod:      "sum_per_resource",
		FrontendEstimatedPrice: estimated,
	}
	return total, details
}

func clientEstimate(estimated *float64) float64 {
	if estimated == nil {
		return 0
	}
	return *estimated
}
