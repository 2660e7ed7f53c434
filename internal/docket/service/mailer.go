package service

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"

	"github.com/aussiebroadwan/docket/pkg/slogx"
)

// Mail is a plain text message to one recipient.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers invitation and password reset mail.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// LogMailer writes mail to the log instead of sending it. It is the default
// when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, m Mail) error {
	slogx.FromContext(ctx).Info("mail not sent, no smtp configured",
		slog.String("to", m.To),
		slog.String("subject", m.Subject),
		slog.String("body", m.Body),
	)
	return nil
}

// SMTPMailer sends through an SMTP relay with PLAIN auth when a username is
// set.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPMailer) Send(ctx context.Context, m Mail) error {
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + m.To,
		"Subject: " + m.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		m.Body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.From, []string{m.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.To, err)
	}
	return nil
}

// MemoryMailer keeps sent mail in memory for tests.
type MemoryMailer struct {
	mu   sync.Mutex
	sent []Mail
}

func (m *MemoryMailer) Send(_ context.Context, mail Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return nil
}

// Sent returns a copy of everything sent so far.
func (m *MemoryMailer) Sent() []Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Mail(nil), m.sent...)
}

// Last returns the most recent mail and whether there was one.
func (m *MemoryMailer) Last() (Mail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return Mail{}, false
	}
	return m.sent[len(m.sent)-1], true
}
