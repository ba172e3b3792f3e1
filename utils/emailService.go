package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email through SendGrid.
func SendEmail(to, subject, htmlBody string) error {
	from := mail.NewEmail("Course Marketplace", config.AppConfig.EmailSender)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid error: %d", resp.StatusCode)
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1E293B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E293B; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>COURSE MARKETPLACE</h1></div>
			<div class="content"><h2>%s</h2>%s</div>
			<div class="footer">&copy; 2026 Course Marketplace. All rights reserved.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly provisioned user.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account is ready. Browse the catalog and start learning!</p>
	`, name)
	SendEmail(email, "Welcome to Course Marketplace", emailTemplate("Welcome!", body))
}

// SendEnrollmentEmail confirms a successful course enrollment.
func SendEnrollmentEmail(email, userName, courseName string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have successfully enrolled in:</p>
		<h3>%s</h3>
		<p>You can now access all the course content. Happy learning!</p>
	`, userName, courseName)
	SendEmail(email, "Course Enrollment Confirmation", emailTemplate("Enrollment Successful!", body))
}

// SendPayoutEmail notifies an instructor that a payout batch went out.
func SendPayoutEmail(email, name string, amount float64) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A payout of <strong>$%.2f</strong> has been sent to your PayPal account.</p>
	`, name, amount)
	SendEmail(email, "Instructor Payout Sent", emailTemplate("Payout Sent", body))
}
