package services

import (
	"fmt"
	"strconv"

	"payment-module/config"
	"payment-module/models"

	"gopkg.in/gomail.v2"
)

// SendReceiptEmail mails the settlement receipt to the student on record.
func SendReceiptEmail(order *models.Order, status *models.OrderStatus, attachment string) error {
	subject := fmt.Sprintf("Payment Receipt - %s", status.CustomOrderID)
	body := fmt.Sprintf(`
<p>Dear <strong>%s</strong>,</p>
<p>Your payment for school <strong>%s</strong> has been settled successfully.</p>
<p>Order ID: %s<br/>Amount: INR %.2f</p>
<p>The receipt is attached.</p>
<p>This is an automated email. Please do not reply to this address.</p>
`, order.StudentInfo.Name, order.SchoolID, status.CustomOrderID, status.OrderAmount)

	return sendEmail(order.StudentInfo.Email, subject, body, attachment)
}

// sendEmail sends an HTML email via the configured SMTP server, optionally
// with an attachment.
func sendEmail(to, subject, body string, attachment ...string) error {
	from := config.AppConfig.EmailFrom
	if from == "" {
		from = config.AppConfig.SMTPUser
	}
	if from == "" {
		return fmt.Errorf("email sender not configured (set EMAIL_FROM or SMTP_USER)")
	}

	if config.AppConfig.SMTPUser == "" || config.AppConfig.SMTPPass == "" {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if len(attachment) > 0 && attachment[0] != "" {
		m.Attach(attachment[0])
	}

	port := 587
	if p := config.AppConfig.SMTPPort; p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	d := gomail.NewDialer(config.AppConfig.SMTPHost, port, config.AppConfig.SMTPUser, config.AppConfig.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
