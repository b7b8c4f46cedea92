// Package mail delivers outbound notification mail over SMTP.
package mail

import (
	"fmt"

	"github.com/chroniclelabs/chronicle/backend/internal/config"
	"github.com/chroniclelabs/chronicle/backend/internal/logger"
	gomail "gopkg.in/gomail.v2"
)

// Service sends HTML mail through the configured SMTP relay.
type Service struct {
	config *config.MailConfig
	logger logger.Logger
}

// NewService creates a new mail service.
func NewService(config *config.MailConfig, logger logger.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Send delivers a single HTML message. When mail is disabled in config
// the message is dropped with a debug log and no error, so callers don't
// need to special-case disabled installations.
func (s *Service) Send(from, to, subject, htmlBody string) error {
	if !s.config.Enabled {
		s.logger.LogDebug("Mail disabled, dropping message", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	s.logger.LogDebug("Mail sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
