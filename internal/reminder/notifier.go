package reminder

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rgehrsitz/gravityless/internal/config"
	"github.com/sirupsen/logrus"
)

// Message is a rendered digest ready for delivery
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers a digest to its recipient
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NewNotifier returns an SMTP notifier when a relay is configured and a log notifier otherwise
func NewNotifier(cfg config.SMTPConfig, log logrus.FieldLogger) Notifier {
	if cfg.Enabled() {
		return NewEmailNotifier(cfg, log)
	}
	return NewLogNotifier(log)
}

// EmailNotifier sends digests over SMTP
type EmailNotifier struct {
	cfg    config.SMTPConfig
	logger logrus.FieldLogger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewEmailNotifier creates a new EmailNotifier
func NewEmailNotifier(cfg config.SMTPConfig, logger logrus.FieldLogger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: orDiscard(logger),
		send:   func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// Send delivers msg as a plain-text email
func (n *EmailNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	if err := n.send(e, addr, auth); err != nil {
		n.logger.Errorf("Failed to send email to %s: %v", msg.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Infof("Email sent to %s: %s", msg.To, msg.Subject)
	return nil
}

// LogNotifier writes digests to the log instead of sending them
type LogNotifier struct {
	logger logrus.FieldLogger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{logger: orDiscard(logger)}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}
