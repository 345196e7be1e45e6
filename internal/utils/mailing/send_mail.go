package mailing

import (
	"Expiry-Reminder/domain"
	"Expiry-Reminder/internal/utils"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPEmail != ""
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := NewMessage(emailConfig, toEmail, subject, body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func NewMessage(cfg MailConfig, toEmail, subject, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", cfg.SMTPEmail, cfg.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer
}

func SweepReportSubject(day time.Time) string {
	return fmt.Sprintf("Expiry reminder sweep %s", day.Format(domain.DateLayout))
}

func SweepReportBody(report domain.SweepReport) string {
	return fmt.Sprintf(
		"<p>Items due tomorrow: %d</p>\n<p>Sent: %d</p>\n<p>Failed: %d</p>\n<p>Skipped (no push token): %d</p>\n",
		report.Selected, report.Sent, report.Failed, report.Skipped,
	)
}

// SendSweepReport mails a summary of one sweep.
func SendSweepReport(toEmail string, day time.Time, report domain.SweepReport) error {
	return SendMail(toEmail, SweepReportSubject(day), SweepReportBody(report))
}
