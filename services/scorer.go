package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Scorer grades quiz attempts and records them as Score rows.
type Scorer struct {
	db *gorm.DB
}

func NewScorer(db *gorm.DB) *Scorer {
	return &Scorer{db: db}
}

// ScoreAnswers counts the questions whose submitted option equals the correct
// one. Unanswered questions and answers for unknown questions score nothing.
func ScoreAnswers(questions []models.Question, answers map[uint]int) int {
	total := 0
	for _, q := range questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectOption {
			total++
		}
	}
	return total
}

// QuestionView is a question as shown to someone taking the quiz.
type QuestionView struct {
	ID        uint                       `json:"id"`
	Statement string                     `json:"question_statement"`
	Options   [models.OptionCount]string `json:"options"`
}

type AttemptSheet struct {
	Quiz      QuizSummary    `json:"quiz"`
	Questions []QuestionView `json:"questions"`
}

// AttemptResult is the latest attempt of the principal at one quiz.
type AttemptResult struct {
	Score         models.Score `json:"score"`
	QuestionCount int64        `json:"question_count"`
}

// unpublished is returned for a quiz without questions. Such a quiz is not
// listed on the dashboard and cannot be attempted.
func unpublished(quizID uint) error {
	return &NotFoundError{Entity: "quiz", ID: quizID}
}

// AttemptSheet loads a quiz for answering, without revealing correct options.
func (s *Scorer) AttemptSheet(ctx context.Context, p *Principal, quizID uint) (*AttemptSheet, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		return nil, findErr("quiz", quizID, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, unpublished(quizID)
	}

	sheet := &AttemptSheet{
		Quiz:      summarize(quiz),
		Questions: make([]QuestionView, 0, len(quiz.Questions)),
	}
	sheet.Quiz.QuestionCount = int64(len(quiz.Questions))
	for _, q := range quiz.Questions {
		sheet.Questions = append(sheet.Questions, QuestionView{
			ID:        q.ID,
			Statement: q.Statement,
			Options:   q.Options(),
		})
	}
	return sheet, nil
}

// SubmitAttempt grades answers (question id -> selected option) against every
// question of the quiz and stores a new Score. Each call inserts a new row.
func (s *Scorer) SubmitAttempt(ctx context.Context, p *Principal, quizID uint, answers map[uint]int) (*models.Score, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}

	var score models.Score
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.First(&quiz, quizID).Error; err != nil {
			return findErr("quiz", quizID, err)
		}
		var questions []models.Question
		if err := tx.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return unpublished(quizID)
		}

		snapshot := make(map[string]int, len(questions))
		for _, q := range questions {
			if v, ok := answers[q.ID]; ok {
				snapshot[strconv.FormatUint(uint64(q.ID), 10)] = v
			}
		}
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}

		score = models.Score{
			QuizID:      quizID,
			UserID:      p.UserID,
			TotalScored: ScoreAnswers(questions, answers),
			Answers:     datatypes.JSON(raw),
		}
		return tx.Create(&score).Error
	})
	if err != nil {
		return nil, storeErr("submit attempt", err)
	}
	log.Printf("user %d scored %d on quiz %d (attempt %d)", p.UserID, score.TotalScored, quizID, score.ID)
	return &score, nil
}

// LatestAttempt returns the principal's most recent attempt at the quiz.
func (s *Scorer) LatestAttempt(ctx context.Context, p *Principal, quizID uint) (*AttemptResult, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var res AttemptResult
	err := db.Where("user_id = ? AND quiz_id = ?", p.UserID, quizID).
		Order("id DESC").
		First(&res.Score).Error
	if err != nil {
		return nil, findErr("attempt for quiz", quizID, err)
	}
	if err := db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&res.QuestionCount).Error; err != nil {
		return nil, storeErr("count questions", err)
	}
	return &res, nil
}
