package repository

import (
	"context"
	"database/sql"

	"hallbook/internal/database"
	"hallbook/internal/models"

	"github.com/lib/pq"
)

type TenantRepository struct {
	db *database.DB
}

func NewTenantRepository(db *database.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, role, email, business_name, address, phone, allowed_event_types,
		       created_at, updated_at
		FROM tenants
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Role,
		&tenant.Email,
		&tenant.BusinessName,
		&tenant.Address,
		&tenant.Phone,
		pq.Array(&tenant.AllowedEventTypes),
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return tenant, err
}

// GetCustomerTenant returns the tenant id a registered customer account
// belongs to, or empty when the customer is unknown.
func (r *TenantRepository) GetCustomerTenant(ctx context.Context, customerID string) (string, error) {
	var tenantID string
	query := `SELECT tenant_id FROM customers WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&tenantID)
	if err == sql.ErrNoRows {
		return "", nil
	}

	return tenantID, err
}
