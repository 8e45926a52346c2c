package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

// NewMailer creates a Mailer.
func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

// SendHTML sends an HTML email to a single recipient.
func (m *Mailer) SendHTML(to, subject, body string) error {
	if m.user == "" || m.pass == "" {
		log.Println("[Mail] SMTP credentials not configured")
		return fmt.Errorf("smtp credentials not configured")
	}

	if to == "" {
		return fmt.Errorf("no recipient email provided")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("[Mail] Failed to send to %s: %v", to, err)
		return err
	}

	return nil
}
