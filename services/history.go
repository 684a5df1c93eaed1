package services

import (
	"context"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/gorm"
)

// History reads a user's own attempts.
type History struct {
	db *gorm.DB
}

func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

type AttemptEntry struct {
	Score models.Score `json:"score"`
	Quiz  QuizSummary  `json:"quiz"`
}

// ListAttempts returns the principal's attempts, newest first. Ids grow with
// insertion so id order is recency order.
func (h *History) ListAttempts(ctx context.Context, p *Principal) ([]AttemptEntry, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	var scores []models.Score
	err := h.db.WithContext(ctx).
		Preload("Quiz").
		Where("user_id = ?", p.UserID).
		Order("id DESC").
		Find(&scores).Error
	if err != nil {
		return nil, storeErr("list attempts", err)
	}

	entries := make([]AttemptEntry, 0, len(scores))
	for _, sc := range scores {
		e := AttemptEntry{Score: sc}
		if sc.Quiz != nil {
			e.Quiz = summarize(*sc.Quiz)
		}
		e.Score.Quiz = nil
		entries = append(entries, e)
	}
	return entries, nil
}
