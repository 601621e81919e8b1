package services

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"secure_law_firm_go/config"
	"secure_law_firm_go/models"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email via Resend. In test mode the email is logged
// to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		log.Printf("[EMAIL] (test mode) To: %v | Subject: %s\n%s", email.To, email.Subject, email.TextBody)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine, logging any failure
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

// SendWorkerWelcomeEmail mails a new worker their account details and a
// link to their 2FA enrollment QR code. The otpauth URI itself is not
// included: the QR endpoint requires an authenticated session.
func SendWorkerWelcomeEmail(cfg *config.Config, worker *models.Worker) {
	qrURL := fmt.Sprintf("%s/api/me/2fa-qr", cfg.AppURL)

	email := &Email{
		To:      []string{worker.Email},
		Subject: fmt.Sprintf("Welcome to %s", cfg.EmailFromName),
		HTMLBody: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your account (%s) has been created with employee id <strong>%s</strong>.</p>"+
				"<p>Log in and scan your two-factor enrollment code at <a href=\"%s\">%s</a> before your first use.</p>",
			worker.Name, worker.Email, worker.CompanyID, qrURL, qrURL),
		TextBody: fmt.Sprintf(
			"Hello %s,\n\nYour account (%s) has been created with employee id %s.\n"+
				"Log in and scan your two-factor enrollment code at %s before your first use.\n",
			worker.Name, worker.Email, worker.CompanyID, qrURL),
	}

	SendEmailAsync(cfg, email)
}
