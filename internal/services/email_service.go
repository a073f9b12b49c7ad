package services

import (
	"fmt"
	"html"
	"log"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, fullName string) error
	SendVerificationCode(email, fullName, code string) error
	SendPasswordResetCode(email, code string) error
}

type emailService struct {
	dialer   *gomail.Dialer
	from     string
	suppress bool
}

// NewEmailService builds a gomail-backed sender. With suppress set messages
// are logged instead of dialed.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, suppress bool) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:   dialer,
		from:     fromEmail,
		suppress: suppress,
	}
}

func (s *emailService) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func (s *emailService) send(m *gomail.Message, kind string) error {
	if s.suppress {
		log.Printf("[email][suppressed] kind=%s to=%v", kind, m.GetHeader("To"))
		return nil
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}
	return nil
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to WealthWise, %s!</h2>
		<p>Your email is verified and your account is ready.</p>
		<p>Start by adding your first income or expense from the dashboard.</p>
		<p>Best regards,<br>The WealthWise Team</p>
	`, html.EscapeString(fullName))
	return s.send(s.message(email, "Welcome to WealthWise!", body), "welcome")
}

func (s *emailService) SendVerificationCode(email, fullName, code string) error {
	body := fmt.Sprintf(`
		<h3>Hello %s,</h3>
		<p>Your WealthWise verification code is: <strong>%s</strong></p>
		<p>The code expires shortly. If you did not sign up, ignore this email.</p>
	`, html.EscapeString(fullName), code)
	return s.send(s.message(email, "Verify your WealthWise account", body), "verification")
}

func (s *emailService) SendPasswordResetCode(email, code string) error {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Use the following code to reset your password: <strong>%s</strong></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, code)
	return s.send(s.message(email, "Password reset request", body), "password reset")
}
