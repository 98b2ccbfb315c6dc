package repository

import (
	"context"
	"database/sql"

	"hallbook/internal/database"
	"hallbook/internal/models"
)

type PricingRepository struct {
	db *database.DB
}

func NewPricingRepository(db *database.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// GetByTenantAndResource returns the first pricing rule configured for
// the (tenant, resource) pair, or nil when the resource has no rule.
func (r *PricingRepository) GetByTenantAndResource(ctx context.Context, tenantID, resourceID string) (*models.PricingRule, error) {
	rule := &models.PricingRule{}
	query := `
		SELECT id, tenant_id, resource_id, resource_name, rate_type,
		       weekday_rate, weekend_rate, description, created_at, updated_at
		FROM pricing_rules
		WHERE tenant_id = $1 AND resource_id = $2
		ORDER BY created_at
		LIMIT 1`

	err := r.db.QueryRowContext(ctx, query, tenantID, resourceID).Scan(
		&rule.ID,
		&rule.TenantID,
		&rule.ResourceID,
		&rule.ResourceName,
		&rule.RateType,
		&rule.WeekdayRate,
		&rule.WeekendRate,
		&rule.Description,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return rule, err
}

func (r *PricingRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.PricingRule, error) {
	var rules []models.PricingRule
	query := `
		SELECT id, tenant_id, resource_id, resource_name, rate_type,
		       weekday_rate, weekend_rate, description, created_at, updated_at
		FROM pricing_rules
		WHERE tenant_id = $1
		ORDER BY resource_name`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rule models.PricingRule
		err := rows.Scan(
			&rule.ID,
			&rule.TenantID,
			&rule.ResourceID,
			&rule.ResourceName,
			&rule.RateType,
			&rule.WeekdayRate,
			&rule.WeekendRate,
			&rule.Description,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}
