package auth

import (
	"fmt"

	"go.uber.org/zap"
)

func (s *Service) SendVerificationEmail(email, token string) error {
	if s.mailService == nil {
		return fmt.Errorf("mail service is not configured")
	}

	verificationURL := fmt.Sprintf("%s/api/auth/verify?token=%s", s.config.App.URL, token)

	data := map[string]any{
		"Email":           email,
		"VerificationURL": verificationURL,
		"ExpiryDuration":  s.config.Auth.VerificationExpiry.String(),
		"AppName":         s.config.App.Name,
	}

	subject := fmt.Sprintf("Verify your email address - %s", s.config.App.Name)
	return s.mailService.SendTemplate("verification", []string{email}, subject, data)
}

// RequestVerification re-issues a verification token for an unverified user
// and emails it. Unlike registration, a delivery failure here is returned to
// the caller.
func (s *Service) RequestVerification(email string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}

	if user.IsVerified() {
		return ErrAlreadyVerified
	}

	token, err := s.IssueVerificationToken(user.ID)
	if err != nil {
		return err
	}

	if err := s.SendVerificationEmail(user.Email, token.Token); err != nil {
		s.logger.Error("failed to send verification email",
			zap.Error(err),
			zap.String("user_id", user.ID))
		return fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	s.logger.Info("verification email sent", zap.String("user_id", user.ID))
	return nil
}
