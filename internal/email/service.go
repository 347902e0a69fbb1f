package email

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. All deliveries are best-effort; the
// caller decides whether a failure matters.
type Sender interface {
	SendPasswordReset(to, link string) error
	SendAppointmentNotice(to, subject, body string) error
}

type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type service struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

func NewService(cfg Config, logger zerolog.Logger) Sender {
	return &service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (s *service) SendPasswordReset(to, link string) error {
	body := fmt.Sprintf(`<p>We received a request to reset your password.</p>
<p><a href=%q>Reset your password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>`, link)
	return s.send(to, "Reset your Agendou password", body)
}

func (s *service) SendAppointmentNotice(to, subject, body string) error {
	return s.send(to, subject, body)
}

func (s *service) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("email delivery failed")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
