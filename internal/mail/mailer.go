package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"hallbook/internal/models"

	gomail "gopkg.in/gomail.v2"
)

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
}

// Mailer delivers booking emails over SMTP. Delivery is best-effort:
// callers log failures and move on.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

var customerTemplate = template.Must(template.New("customer").Parse(`
<p>Hi {{.CustomerName}},</p>
<p>Your booking request for {{.EventType}} at {{.HallName}} on {{.BookingDate}}
({{.StartTime}} - {{.EndTime}}) has been received.</p>
<p>Booking code: <strong>{{.BookingCode}}</strong></p>
<p>Estimated price: {{printf "%.2f" .CalculatedPrice}}</p>
<p>The venue will confirm your request shortly.</p>`))

var tenantTemplate = template.Must(template.New("tenant").Parse(`
<p>New booking request for {{.HallName}} on {{.BookingDate}}
({{.StartTime}} - {{.EndTime}}).</p>
<p>Customer: {{.CustomerName}} ({{.CustomerEmail}}, {{.CustomerPhone}})</p>
<p>Event type: {{.EventType}}</p>
<p>Booking code: {{.BookingCode}}</p>
<p>Calculated price: {{printf "%.2f" .CalculatedPrice}}</p>`))

// SendBookingConfirmationToCustomer acknowledges the booking request to
// the customer.
func (m *Mailer) SendBookingConfirmationToCustomer(event *models.BookingCreatedEvent) error {
	subject := fmt.Sprintf("Booking Request Received - %s at %s", event.EventType, event.HallName)
	return m.send(event.CustomerEmail, subject, customerTemplate, event)
}

// SendBookingAlertToTenant notifies the venue owner about the new
// request.
func (m *Mailer) SendBookingAlertToTenant(event *models.BookingCreatedEvent) error {
	if event.TenantEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("New Booking Request - %s", event.CustomerName)
	return m.send(event.TenantEmail, subject, tenantTemplate, event)
}

func (m *Mailer) send(to, subject string, tmpl *template.Template, data any) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
