package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Username      string     `json:"username" gorm:"uniqueIndex;size:8;not null"`
	PasswordHash  string     `json:"-" gorm:"not null"`
	Name          *string    `json:"name,omitempty"`
	EmailVerified *time.Time `json:"email_verified,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}

// Account links a user to an external OAuth provider. Unused by
// password-based login but part of the persisted schema so provider logins
// can be added without a migration.
type Account struct {
	Provider          string     `json:"provider" gorm:"primaryKey;size:64"`
	ProviderAccountID string     `json:"provider_account_id" gorm:"primaryKey;size:128"`
	UserID            string     `json:"user_id" gorm:"size:36;index;not null"`
	Type              string     `json:"type" gorm:"not null"`
	AccessToken       string     `json:"-"`
	RefreshToken      string     `json:"-"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	Scope             string     `json:"scope"`
}

func (Account) TableName() string {
	return "accounts"
}

// VerificationToken is a single-use, time-limited secret proving control of
// the owning user's email address. At most one live token exists per user.
type VerificationToken struct {
	Token     string    `json:"-" gorm:"primaryKey;size:128"`
	UserID    string    `json:"user_id" gorm:"size:36;index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

func (VerificationToken) TableName() string {
	return "verification_tokens"
}
