package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer dispatches notifications to users. Sending is best-effort from the
// caller's point of view: a failed send is reported, never rolled back.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string // host:port
	from string
}

// NewSMTPMailer creates a mailer that sends through the given relay address.
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", m.addr, err)
	}
	return nil
}

// LogMailer records outgoing mail in the server log. Used in development when
// no SMTP relay is configured. Only the envelope is logged: bodies carry
// reset codes, which must never end up in log output.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("MAIL to=%s subject=%q bytes=%d", to, subject, len(body))
	return nil
}
