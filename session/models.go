package session

import (
	"time"
)

// UserSession is a tracking row mapping an scs session token to its owning
// user. The scs store itself keys sessions only by token, so this table is
// what lets account deletion find and revoke every session a user holds.
type UserSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"-" gorm:"size:500"`
	Device    string    `json:"device" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
