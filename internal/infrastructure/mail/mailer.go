// Package mail delivers outgoing messages over SMTP, or only logs them when no server is configured.
package mail

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// Config SMTP server settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// dialer is the part of gomail.Dialer the mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends HTML mail with gomail. A connection is opened per message.
type SMTPMailer struct {
	from   string
	dialer dialer
}

// NewSMTPMailer builds the mailer. STARTTLS is negotiated when the server offers it.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send delivers m.
func (s *SMTPMailer) Send(ctx context.Context, m ports.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(m.To) == 0 {
		return fmt.Errorf("mail: no recipients")
	}
	if err := s.dialer.DialAndSend(buildMessage(s.from, m)); err != nil {
		return fmt.Errorf("mail: send %q: %w", m.Subject, err)
	}
	return nil
}

func buildMessage(from string, m ports.Mail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTMLBody)
	for _, a := range m.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}
		msg.Attach(a.Filename, settings...)
	}
	return msg
}

// LogMailer writes messages to the log instead of sending them. Used when SMTP_HOST is empty.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer builds the mailer.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs m.
func (l *LogMailer) Send(_ context.Context, m ports.Mail) error {
	names := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		names = append(names, a.Filename)
	}
	l.log.Info().
		Strs("to", m.To).
		Str("subject", m.Subject).
		Strs("attachments", names).
		Str("body", m.HTMLBody).
		Msg("mail not sent: SMTP disabled")
	return nil
}
