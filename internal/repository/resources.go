package repository

import (
	"context"
	"database/sql"

	"hallbook/internal/database"
	"hallbook/internal/models"
)

type ResourceRepository struct {
	db *database.DB
}

func NewResourceRepository(db *database.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	resource := &models.Resource{}
	query := `
		SELECT id, tenant_id, name, type, capacity, code, description, created_at, updated_at
		FROM resources
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&resource.ID,
		&resource.TenantID,
		&resource.Name,
		&resource.Type,
		&resource.Capacity,
		&resource.Code,
		&resource.Description,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return resource, err
}

func (r *ResourceRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Resource, error) {
	var resources []models.Resource
	query := `
		SELECT id, tenant_id, name, type, capacity, code, description, created_at, updated_at
		FROM resources
		WHERE tenant_id = $1
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resource models.Resource
		err := rows.Scan(
			&resource.ID,
			&resource.TenantID,
			&resource.Name,
			&resource.Type,
			&resource.Capacity,
			&resource.Code,
			&resource.Description,
			&resource.CreatedAt,
			&resource.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}

	return resources, rows.Err()
}
