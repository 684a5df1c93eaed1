package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/gorm"
)

// Sessions tracks issued logins so they can be ended server-side.
type Sessions struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessions(db *gorm.DB, ttl time.Duration) *Sessions {
	return &Sessions{db: db, ttl: ttl}
}

// Start opens a new session for the user and drops the user's dead ones.
func (s *Sessions) Start(ctx context.Context, userID uint) (*models.Session, error) {
	now := time.Now()
	session := models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND (expires_at < ? OR revoked_at IS NOT NULL)", userID, now).
			Delete(&models.Session{}).Error
		if err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, storeErr("start session", err)
	}
	return &session, nil
}

// Active returns the session if it exists, is not revoked and has not expired.
func (s *Sessions) Active(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &AuthorizationError{Reason: "session not found"}
	}
	if err != nil {
		return nil, storeErr("load session", err)
	}
	if !session.Live(time.Now()) {
		return nil, &AuthorizationError{Reason: "session ended"}
	}
	return &session, nil
}

// Revoke ends the session. Revoking an ended session is a no-op.
func (s *Sessions) Revoke(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now()).Error
	if err != nil {
		return storeErr("revoke session", err)
	}
	log.Printf("session %s revoked", id)
	return nil
}

// Purge deletes every expired or revoked session.
func (s *Sessions) Purge(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&models.Session{})
	if res.Error != nil {
		return 0, storeErr("purge sessions", res.Error)
	}
	return res.RowsAffected, nil
}
