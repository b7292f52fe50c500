package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

// Sender delivers a single plain-text email.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPSender(host, port, username, password, from string) Sender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	return smtp.SendMail(addr, auth, s.from, []string{to}, msg)
}

// LogSender writes mail to the process log instead of the wire. Used when no
// SMTP host is configured (local development).
type LogSender struct{}

func (LogSender) Send(to, subject, body string) error {
	log.Printf("mail (not sent, SMTP unconfigured) to=%s subject=%q\n%s", to, subject, body)
	return nil
}
