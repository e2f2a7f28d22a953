package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	FrontendURL string
}

// Notifier sends transactional mail. The webhook path calls it after the
// reconciliation transaction commits; a send failure never fails the webhook.
type Notifier interface {
	SendPurchaseReceipt(to, planName, displayPrice, endsAt string) error
	SendWelcome(to, name string) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

var _ Notifier = (*SMTPEmailService)(nil)

func (s *SMTPEmailService) SendPurchaseReceipt(to, planName, displayPrice, endsAt string) error {
	subject := "Your plan is active"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Payment received</h2>
			<p>Your <strong>%s</strong> plan (%s) is now active.</p>
			<p>It is valid until %s.</p>
			<p><a href="%s/account/billing">Manage your subscription</a></p>
		</body>
		</html>
	`, planName, displayPrice, endsAt, s.config.FrontendURL)

	plainBody := fmt.Sprintf(`
Payment received

Your %s plan (%s) is now active.
It is valid until %s.

Manage your subscription: %s/account/billing
	`, planName, displayPrice, endsAt, s.config.FrontendURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendWelcome(to, name string) error {
	subject := "Welcome to Habita"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome, %s!</h2>
			<p>Your account is ready. You can publish your first listing right away on the free plan.</p>
			<p><a href="%s/listings/new">Create a listing</a></p>
		</body>
		</html>
	`, name, s.config.FrontendURL)

	plainBody := fmt.Sprintf(`
Welcome, %s!

Your account is ready. You can publish your first listing right away on the free plan.

Create a listing: %s/listings/new
	`, name, s.config.FrontendURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// NoopNotifier is used when email delivery is disabled in config.
type NoopNotifier struct{}

func (NoopNotifier) SendPurchaseReceipt(string, string, string, string) error { return nil }
func (NoopNotifier) SendWelcome(string, string) error                         { return nil }
