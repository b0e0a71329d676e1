package email

import (
	"context"
	"fmt"
	"time"

	"mediconnect_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

// SendAppointmentConfirmedEmail notifies a patient of a confirmed appointment.
func (s *SMTPSender) SendAppointmentConfirmedEmail(ctx context.Context, toEmail, patientName, date, timeOfDay string) error {
	subject := "Your appointment is confirmed"
	body := renderAppointmentEmail(patientName,
		fmt.Sprintf("Your appointment on %s at %s was confirmed by the doctor.", date, timeOfDay))
	return s.send(ctx, toEmail, subject, body)
}

// SendAppointmentReminderEmail reminds a patient of an upcoming appointment.
func (s *SMTPSender) SendAppointmentReminderEmail(ctx context.Context, toEmail, patientName, date, timeOfDay string) error {
	subject := "Appointment reminder"
	body := renderAppointmentEmail(patientName,
		fmt.Sprintf("This is a reminder for your appointment on %s at %s.", date, timeOfDay))
	return s.send(ctx, toEmail, subject, body)
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func renderAppointmentEmail(patientName, line string) string {
	return fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>%s</p>
<p>If you can no longer attend, please cancel the appointment in your MediConnect dashboard.</p>
<p>The MediConnect Team</p>
</body></html>`, patientName, line)
}
