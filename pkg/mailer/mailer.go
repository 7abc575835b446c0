package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"

	"herald/config"
)

// ErrDisabled is returned when the SMTP transport is switched off in config.
var ErrDisabled = errors.New("smtp transport disabled")

// Mailer sends HTML mail over SMTP with implicit TLS (port 465 style).
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether the transport is configured to send.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled
}

// Send delivers a multipart/alternative message with plain and HTML bodies.
// The context bounds the whole SMTP conversation.
func (m *Mailer) Send(ctx context.Context, to, subject, plainBody, htmlBody string) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	msg := buildMessage(from, to, subject, plainBody, htmlBody)

	serverAddr := m.cfg.Host + ":" + m.cfg.Port
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	dialer := &tls.Dialer{Config: tlsConfig}
	conn, err := dialer.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
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
		return err
	}
	return w.Close()
}

const altBoundary = "herald-alt-boundary"

func buildMessage(from, to, subject, plainBody, htmlBody string) []byte {
	return []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", altBoundary) +
			"\r\n" +
			fmt.Sprintf("--%s\r\n", altBoundary) +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			plainBody + "\r\n" +
			fmt.Sprintf("--%s\r\n", altBoundary) +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody + "\r\n" +
			fmt.Sprintf("--%s--\r\n", altBoundary),
	)
}
