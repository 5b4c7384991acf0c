package contact

import (
	"bytes"
	"context"
	"fmt"

	"github.com/insightexus/site/internal/config"
	"github.com/wneessen/go-mail"
)

// Mailer delivers composed messages.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer returns a mailer for cfg. The connection is opened per Send.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	if m.cfg.Secure {
		// Implicit TLS, port 465 style.
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(m.cfg.Host, opts...)
}

// Send builds a MIME message with text and HTML alternatives and delivers it.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}
	out := mail.NewMsg()
	if err := out.FromFormat(msg.FromName, msg.FromAddress); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := out.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Text)
	out.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	for _, a := range msg.Attachments {
		if err := out.AttachReader(a.Filename, bytes.NewReader(a.Content)); err != nil {
			return fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}

	c, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
