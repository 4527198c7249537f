package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"CompetitorScout/internal/ports"
)

// Sink delivers reports and reminders over SMTP. This is the hand-off
// boundary: the pipeline's obligation ends at producing the report body.
type Sink struct {
	host     string
	port     string
	username string
	password string
	from     string
}

var _ ports.ReportSink = (*Sink)(nil)

// NewSink registers the SMTP endpoint and sender identity.
func NewSink(host, port, username, password, from string) *Sink {
	return &Sink{host: host, port: port, username: username, password: password, from: from}
}

// Deliver sends one plain-text message to the recipient.
func (s *Sink) Deliver(ctx context.Context, recipient, subject, body string) error {
	if s.host == "" || s.from == "" || recipient == "" {
		return fmt.Errorf("email sink misconfigured")
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := net.JoinHostPort(s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
