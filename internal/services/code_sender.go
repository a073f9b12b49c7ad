package services

import (
	"context"
	"fmt"

	"wealthwise/internal/models"
	"wealthwise/internal/utils"
	"wealthwise/internal/validation"
)

// CodeSender delivers a one-time code to the user for the given purpose.
type CodeSender interface {
	SendCode(ctx context.Context, user *models.User, purpose, code string) error
}

type emailCodeSender struct {
	emails EmailService
}

func NewEmailCodeSender(emails EmailService) CodeSender {
	return &emailCodeSender{emails: emails}
}

func (s *emailCodeSender) SendCode(_ context.Context, user *models.User, purpose, code string) error {
	switch purpose {
	case models.PurposePasswordReset:
		return s.emails.SendPasswordResetCode(user.Email, code)
	default:
		return s.emails.SendVerificationCode(user.Email, user.FullName, code)
	}
}

type smsCodeSender struct {
	client *utils.Client
}

func NewSMSCodeSender(client *utils.Client) CodeSender {
	return &smsCodeSender{client: client}
}

func (s *smsCodeSender) SendCode(ctx context.Context, user *models.User, purpose, code string) error {
	text := fmt.Sprintf("WealthWise verification code: %s", code)
	if purpose == models.PurposePasswordReset {
		text = fmt.Sprintf("WealthWise password reset code: %s", code)
	}
	if _, err := s.client.SendSMS(ctx, smsRecipient(user.Phone), text); err != nil {
		return fmt.Errorf("mobizon error: %w", err)
	}
	return nil
}

// smsRecipient turns a stored 10-digit number into 977XXXXXXXXXX.
func smsRecipient(phone string) string {
	return validation.CountryPrefix[1:] + phone
}
