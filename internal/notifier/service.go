package notifier

import (
	"context"
	"log/slog"

	"hallbook/internal/config"
	"hallbook/internal/database"
	"hallbook/internal/mail"
	"hallbook/internal/messaging"
	"hallbook/internal/models"
	"hallbook/internal/repository"
)

// Service consumes booking events and delivers the best-effort side
// effects: a notification record for the tenant plus confirmation
// emails. It runs as its own process so email latency never sits on
// the booking request path.
type Service struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewService(cfg *config.Config) (*Service, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := repository.NewRepositories(db)
	mailer := mail.NewMailer(cfg.Mail)
	handlers := NewHandlers(repos, mailer)

	return &Service{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (s *Service) Start() error {
	slog.Info("Starting notification consumers...")

	_, err := s.nats.SubscribeQueue(models.EventBookingCreated, "notifier", s.handlers.HandleBookingCreated)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down notifier service...")

	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
