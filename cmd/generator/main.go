package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"hallbook/internal/config"
	"hallbook/internal/database"
	"hallbook/internal/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

var (
	clearExisting = flag.Bool("clear", false, "Clear existing tenants, resources and pricing before seeding")
	tenantCount   = flag.Int("tenants", 3, "Number of demo tenants to create")
	dryRun        = flag.Bool("dry-run", false, "Show what would be generated without making changes")
)

var eventTypes = []string{"wedding", "birthday", "conference", "corporate", "graduation"}

var resourceNames = []string{"Grand Hall", "Garden Pavilion", "Crystal Room", "Terrace", "Banquet Hall"}

type Seeder struct {
	db *database.DB
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	slog.Info("Starting demo data generator...")

	cfg := config.Load()
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := &Seeder{db: db}

	if *clearExisting && !*dryRun {
		if err := seeder.clear(); err != nil {
			slog.Error("Failed to clear existing data", "error", err)
			os.Exit(1)
		}
	}

	if err := seeder.Generate(*tenantCount); err != nil {
		slog.Error("Failed to generate demo data", "error", err)
		os.Exit(1)
	}

	slog.Info("Demo data generation completed successfully!")
}

func (s *Seeder) clear() error {
	for _, table := range []string{"bookings", "pricing_rules", "resources", "notifications", "customers", "tenants"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	slog.Info("Cleared existing data")
	return nil
}

func (s *Seeder) Generate(tenants int) error {
	for i := 0; i < tenants; i++ {
		tenantID := uuid.New().String()
		businessName := fmt.Sprintf("Demo Venue %d", i+1)

		if *dryRun {
			slog.Info("Would create tenant", "id", tenantID, "business_name", businessName)
			continue
		}

		if err := s.insertTenant(tenantID, businessName, i); err != nil {
			return fmt.Errorf("failed to insert tenant %s: %w", tenantID, err)
		}

		resources := 2 + rand.Intn(3)
		for j := 0; j < resources; j++ {
			if err := s.insertResourceWithPricing(tenantID, j); err != nil {
				return fmt.Errorf("failed to insert resource for tenant %s: %w", tenantID, err)
			}
		}

		slog.Info("Created tenant", "id", tenantID, "business_name", businessName, "resources", resources)
	}
	return nil
}

func (s *Seeder) insertTenant(id, businessName string, n int) error {
	_, err := s.db.Exec(`
		INSERT INTO tenants (id, role, email, business_name, address, phone, allowed_event_types)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id,
		models.RoleHallOwner,
		fmt.Sprintf("owner%d@hallbook.local", n+1),
		businessName,
		fmt.Sprintf("%d Demo Street", 100+n),
		fmt.Sprintf("+7700000%04d", n),
		pq.Array(eventTypes),
	)
	return err
}

func (s *Seeder) insertResourceWithPricing(tenantID string, n int) error {
	resourceID := uuid.New().String()
	name := resourceNames[n%len(resourceNames)]

	_, err := s.db.Exec(`
		INSERT INTO resources (id, tenant_id, name, type, capacity, code, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		resourceID,
		tenantID,
		name,
		"hall",
		50+rand.Intn(450),
		fmt.Sprintf("R%03d", rand.Intn(1000)),
		"Demo bookable space",
	)
	if err != nil {
		return err
	}

	rateType := models.RateTypeHourly
	weekday := float64(50 + rand.Intn(150))
	if n%2 == 1 {
		rateType = models.RateTypeDaily
		weekday = float64(300 + rand.Intn(700))
	}

	_, err = s.db.Exec(`
		INSERT INTO pricing_rules (id, tenant_id, resource_id, resource_name, rate_type, weekday_rate, weekend_rate, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New().String(),
		tenantID,
		resourceID,
		name,
		rateType,
		weekday,
		weekday*1.5,
		"Demo rate",
	)
	return err
}
