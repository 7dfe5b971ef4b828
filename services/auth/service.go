package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPasswordHashingFailed = errors.New("failed to hash password")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailTaken            = errors.New("email already registered")
	ErrUsernameTaken         = errors.New("username already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrTokenInvalid          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token expired")
	ErrAlreadyVerified       = errors.New("email already verified")
	ErrEmailSendFailed       = errors.New("failed to send verification email")
)

type MailService interface {
	SendTemplate(templateName string, to []string, subject string, data map[string]any) error
}

// SessionRevoker removes every stored session belonging to a user. Wired in
// by the session package so account deletion can cascade to live sessions.
type SessionRevoker interface {
	RevokeAllForUser(tx *gorm.DB, userID string) error
}

type Service struct {
	config         *config.Config
	db             *gorm.DB
	mailService    MailService
	sessionRevoker SessionRevoker
	logger         *logging.Service

	// consumeTxHook runs inside the verify-and-consume transaction, between
	// the user update and the token delete. Tests use it to force a rollback.
	consumeTxHook func() error
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
	}
}

func (s *Service) SetMailService(mailService MailService) {
	s.mailService = mailService
}

func (s *Service) SetSessionRevoker(revoker SessionRevoker) {
	s.sessionRevoker = revoker
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	Name     string
}

// Register creates an unverified user. Email and username conflicts surface
// as ErrEmailTaken / ErrUsernameTaken regardless of which field the caller
// changed.
func (s *Service) Register(input RegisterInput) (*User, error) {
	var count int64
	if err := s.db.Model(&User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	if err := s.db.Model(&User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
	}
	if input.Name != "" {
		user.Name = &input.Name
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username))
	return user, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(email, password string) (*User, error) {
	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("password verification failed", zap.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return "", ErrPasswordHashingFailed
	}
	return string(hash), nil
}

func (s *Service) GetUserByID(id string) (*User, error) {
	var user User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// DeleteAccount removes the user and every row they own in one transaction.
// Live sessions are revoked through the session revoker inside the same
// transaction so no session survives its user.
func (s *Service) DeleteAccount(userID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM tasks WHERE user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}

		if s.sessionRevoker != nil {
			if err := s.sessionRevoker.RevokeAllForUser(tx, userID); err != nil {
				return fmt.Errorf("failed to revoke sessions: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&Account{}).Error; err != nil {
			return fmt.Errorf("failed to delete accounts: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&VerificationToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete verification tokens: %w", err)
		}

		result := tx.Where("id = ?", userID).Delete(&User{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("account deleted", zap.String("user_id", userID))
	return nil
}

func (s *Service) generateToken() (string, error) {
	bytes := make([]byte, s.config.Auth.VerificationTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// IssueVerificationToken replaces any live token for the user with a fresh
// one expiring after the configured window. Exactly one live token per user
// exists afterward.
func (s *Service) IssueVerificationToken(userID string) (*VerificationToken, error) {
	result := s.db.Where("user_id = ?", userID).Delete(&VerificationToken{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove previous verification tokens: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.logger.Debug("replaced existing verification tokens",
			zap.String("user_id", userID),
			zap.Int64("tokens_removed", result.RowsAffected))
	}

	token, err := s.generateToken()
	if err != nil {
		return nil, err
	}

	verificationToken := &VerificationToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.config.Auth.VerificationExpiry),
	}

	if err := s.db.Create(verificationToken).Error; err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	return verificationToken, nil
}

// ConsumeVerificationToken resolves a token to its user and marks the email
// verified. Expired tokens are deleted on detection. A token presented for an
// already-verified user is left in place so a duplicate click stays harmless.
// The verify-and-delete step is a single transaction.
func (s *Service) ConsumeVerificationToken(token string) (*User, error) {
	var verificationToken VerificationToken
	if err := s.db.Where("token = ?", token).First(&verificationToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("invalid verification token attempted")
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up verification token: %w", err)
	}

	if time.Now().After(verificationToken.ExpiresAt) {
		if err := s.db.Delete(&verificationToken).Error; err != nil {
			return nil, fmt.Errorf("failed to delete expired verification token: %w", err)
		}
		s.logger.Warn("expired verification token attempted",
			zap.String("user_id", verificationToken.UserID))
		return nil, ErrTokenExpired
	}

	user, err := s.GetUserByID(verificationToken.UserID)
	if err != nil {
		return nil, err
	}

	if user.IsVerified() {
		return nil, ErrAlreadyVerified
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{}).Where("id = ?", user.ID).Update("email_verified", now).Error; err != nil {
			return fmt.Errorf("failed to mark email as verified: %w", err)
		}
		if s.consumeTxHook != nil {
			if err := s.consumeTxHook(); err != nil {
				return err
			}
		}
		if err := tx.Delete(&verificationToken).Error; err != nil {
			return fmt.Errorf("failed to delete verification token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.EmailVerified = &now
	s.logger.Info("email verified", zap.String("user_id", user.ID))
	return user, nil
}

func (s *Service) CleanupExpiredVerificationTokens() error {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&VerificationToken{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup expired verification tokens: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.logger.Info("expired verification tokens cleaned up",
			zap.Int64("tokens_removed", result.RowsAffected))
	}
	return nil
}
