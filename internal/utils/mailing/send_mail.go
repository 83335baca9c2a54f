package mailing

import (
	"log"
	"strconv"
	"sync"

	"warranty-hub-backend/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

var (
	dialer     *gomail.Dialer
	dialerOnce sync.Once
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// getDialer constructs the SMTP transport once per process.
func getDialer() *gomail.Dialer {
	dialerOnce.Do(func() {
		emailConfig := LoadMailConfig()
		port, err := strconv.Atoi(emailConfig.SMTPPort)
		if err != nil {
			log.Printf("invalid SMTP_PORT %q: %v", emailConfig.SMTPPort, err)
			port = 587
		}
		dialer = gomail.NewDialer(
			emailConfig.SMTPHost,
			port,
			emailConfig.SMTPEmail,
			emailConfig.SMTPPassword,
		)
	})
	return dialer
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	return getDialer().DialAndSend(mailer)
}

// SendMailAsync dispatches fire-and-forget: delivery failure must not abort
// the surrounding request, so it is only logged.
func SendMailAsync(toEmail string, subject string, body string) {
	go func() {
		if err := SendMail(toEmail, subject, body); err != nil {
			log.Printf("failed to send mail to %s: %v", toEmail, err)
		}
	}()
}
