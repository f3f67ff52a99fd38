package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/DrOksusu/email-automation/internal/platform/config"
)

// Mailer sends one HTML message. It satisfies dispatch.Transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ErrDeliveryDisabled is returned for every message while EMAIL_ENABLED is
// false or no SMTP host is configured. Dispatch records such attempts as
// failed, so no log row claims a message was sent.
var ErrDeliveryDisabled = errors.New("email delivery disabled")

type disabledMailer struct{}

func (disabledMailer) Send(ctx context.Context, to, subject, body string) error {
	slog.Warn("email delivery disabled, message not sent", "to", to, "subject", subject, "bytes", len(body))
	return ErrDeliveryDisabled
}

type smtpMailer struct {
	cfg  config.Config
	from mail.Address
}

func New(cfg config.Config) Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return disabledMailer{}
	}
	return &smtpMailer{cfg: cfg, from: mail.Address{Name: cfg.EmailFromName, Address: cfg.EmailFrom}}
}

func (s *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	msg := buildMessage(s.from, to, subject, body)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.SMTPUseTLS {
		tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}
		if err := client.StartTLS(tlsConfig); err != nil {
			return err
		}
	}

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(s.from.Address); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from mail.Address, to, subject, body string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", from.String()),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", mime.BEncoding.Encode("UTF-8", subject)),
		fmt.Sprintf("Date: %s", time.Now().Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"Content-Transfer-Encoding: 8bit",
		"",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + body)
}
