package services

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends contact-message replies over SMTP. When the SMTP environment
// is absent the mailer is disabled and callers skip sending.
type Mailer struct {
	host     string
	port     int
	email    string
	password string
	sender   string
}

func NewMailerFromEnv() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		email:    os.Getenv("SMTP_AUTH_EMAIL"),
		password: os.Getenv("SMTP_AUTH_PASSWORD"),
		sender:   os.Getenv("SMTP_SENDER_NAME"),
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.host != "" && m.email != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	from := m.email
	if m.sender != "" {
		from = msg.FormatAddress(m.email, m.sender)
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.email, m.password)
	return dialer.DialAndSend(msg)
}
