package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hallbook/internal/database"
	"hallbook/internal/models"

	"github.com/lib/pq"
)

// BookingRepository is the primary (Postgres) booking store.
type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Name() string {
	return "postgres"
}

const bookingColumns = `
	id, tenant_id, resource_ids, resource_names, booking_date, start_time, end_time,
	customer_id, customer_name, customer_email, customer_phone, customer_avatar,
	event_type, guest_count, additional_description, status, calculated_price,
	price_details, booking_code, booking_source, created_at, updated_at`

func (r *BookingRepository) Insert(ctx context.Context, booking *models.Booking) error {
	var priceDetails any
	if booking.PriceDetails != nil {
		raw, err := json.Marshal(booking.PriceDetails)
		if err != nil {
			return fmt.Errorf("failed to marshal price details: %w", err)
		}
		priceDetails = raw
	}

	query := `
		INSERT INTO bookings (
			id, tenant_id, resource_ids, resource_names, booking_date, start_time, end_time,
			customer_id, customer_name, customer_email, customer_phone, customer_avatar,
			event_type, guest_count, additional_description, status, calculated_price,
			price_details, booking_code, booking_source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		booking.ID,
		booking.TenantID,
		pq.Array(booking.ResourceIDs),
		pq.Array(booking.ResourceNames),
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.CustomerID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.CustomerAvatar,
		booking.EventType,
		booking.GuestCount,
		booking.AdditionalDescription,
		booking.Status,
		booking.CalculatedPrice,
		priceDetails,
		booking.BookingCode,
		booking.BookingSource,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *BookingRepository) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListForDate returns every booking of the tenant on the given calendar
// date, regardless of status. Exact date-string equality, not a range.
func (r *BookingRepository) ListForDate(ctx context.Context, tenantID, bookingDate string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE tenant_id = $1 AND booking_date = $2
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, tenantID, bookingDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListByTenant returns the tenant's bookings with optional inclusive
// date-string bounds, used by the unavailable-dates projection.
func (r *BookingRepository) ListByTenant(ctx context.Context, tenantID, startDate, endDate string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = $1`
	args := []any{tenantID}

	if startDate != "" {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND booking_date >= $%d", len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND booking_date <= $%d", len(args))
	}
	query += " ORDER BY booking_date, start_time"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// WithSlotLock runs fn while holding a Postgres advisory lock keyed on
// (tenant, date). The conflict check and the insert both run inside the
// lock, so two concurrent requests for the same slot serialize even
// across instances.
func (r *BookingRepository) WithSlotLock(ctx context.Context, tenantID, bookingDate string, fn func(ctx context.Context) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for slot lock: %w", err)
	}
	defer conn.Close()

	key := tenantID + ":" + bookingDate
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to take slot lock: %w", err)
	}
	defer conn.ExecContext(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock(hashtext($1))`, key)

	return fn(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var (
		priceDetails   []byte
		customerID     sql.NullString
		customerAvatar sql.NullString
		guestCount     sql.NullInt64
	)

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		pq.Array(&booking.ResourceIDs),
		pq.Array(&booking.ResourceNames),
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&customerID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&customerAvatar,
		&booking.EventType,
		&guestCount,
		&booking.AdditionalDescription,
		&booking.Status,
		&booking.CalculatedPrice,
		&priceDetails,
		&booking.BookingCode,
		&booking.BookingSource,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		booking.CustomerID = &customerID.String
	}
	if customerAvatar.Valid {
		booking.CustomerAvatar = &customerAvatar.String
	}
	if guestCount.Valid {
		count := int(guestCount.Int64)
		booking.GuestCount = &count
	}

	if len(priceDetails) > 0 {
		details := &models.PriceDetails{}
		if err := json.Unmarshal(priceDetails, details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal price details: %w", err)
		}
		booking.PriceDetails = details
	}

	return booking, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}
