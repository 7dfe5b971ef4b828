package session

import (
	"fmt"
	"time"

	"github.com/mileusna/useragent"
	"gorm.io/gorm"
)

// TrackingService maintains the user_sessions table alongside the scs store.
type TrackingService struct {
	db      *gorm.DB
	manager *Manager
}

func NewTrackingService(db *gorm.DB, manager *Manager) *TrackingService {
	return &TrackingService{
		db:      db,
		manager: manager,
	}
}

func (s *TrackingService) Track(userID, token, ipAddress, userAgent string, expiresAt time.Time) error {
	now := time.Now()
	session := UserSession{
		UserID:    userID,
		Token:     token,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Device:    deviceLabel(userAgent),
		CreatedAt: now,
		LastUsed:  now,
		ExpiresAt: expiresAt,
	}

	return s.db.Create(&session).Error
}

func (s *TrackingService) UpdateLastUsed(token string) error {
	return s.db.Model(&UserSession{}).
		Where("token = ?", token).
		Update("last_used", time.Now()).Error
}

func (s *TrackingService) GetUserSessions(userID string) ([]UserSession, error) {
	var sessions []UserSession
	err := s.db.Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("last_used DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrackingService) RemoveByToken(token string) error {
	return s.db.Where("token = ?", token).Delete(&UserSession{}).Error
}

// RevokeAllForUser deletes the user's tracking rows inside the caller's
// transaction and evicts the matching tokens from the scs store. Implements
// the auth service's SessionRevoker.
func (s *TrackingService) RevokeAllForUser(tx *gorm.DB, userID string) error {
	var sessions []UserSession
	if err := tx.Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if err := tx.Where("user_id = ?", userID).Delete(&UserSession{}).Error; err != nil {
		return fmt.Errorf("failed to delete session tracking rows: %w", err)
	}

	for _, sess := range sessions {
		if err := s.manager.Store.Delete(sess.Token); err != nil {
			return fmt.Errorf("failed to delete stored session: %w", err)
		}
	}

	return nil
}

func (s *TrackingService) CleanupExpired() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&UserSession{}).Error
}

func deviceLabel(uaString string) string {
	if uaString == "" {
		return "Unknown"
	}
	ua := useragent.Parse(uaString)
	switch {
	case ua.Name != "" && ua.OS != "":
		return fmt.Sprintf("%s on %s", ua.Name, ua.OS)
	case ua.Name != "":
		return ua.Name
	default:
		return "Unknown"
	}
}
