package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends transactional notifications to sellers.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

// SendAdFeaturedEmail confirms a featuring purchase to the seller.
func (m *SMTPMailer) SendAdFeaturedEmail(toEmail, adTitle string, featuredUntil time.Time) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your ad is now featured")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your ad '%s' is now featured until %s.\n\nFeatured ads are highlighted in the catalog and your listing's expiration has been extended accordingly.",
		adTitle, featuredUntil.Format("January 2, 2006"),
	))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
