package notify

import (
	"fmt"
	"net"
	"net/smtp"
)

// SMTPMailer sends plain-text mail over authenticated SMTP.
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Password string
}

func (m SMTPMailer) Send(to, subject, body string) error {
	host, _, err := net.SplitHostPort(m.Addr)
	if err != nil {
		return fmt.Errorf("smtp addr: %w", err)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.From, to, subject, body)
	auth := smtp.PlainAuth("", m.From, m.Password, host)
	return smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(msg))
}
