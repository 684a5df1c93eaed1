package services

import (
	"context"
	"log"
	"strings"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/gorm"
)

type QuestionInput struct {
	Statement     string `form:"question_statement" json:"question_statement"`
	Option1       string `form:"option1" json:"option1"`
	Option2       string `form:"option2" json:"option2"`
	Option3       string `form:"option3" json:"option3"`
	Option4       string `form:"option4" json:"option4"`
	CorrectOption string `form:"correct_option" json:"correct_option"`
}

// apply validates every field and copies them onto q. q is left untouched on error.
func (in QuestionInput) apply(q *models.Question) error {
	fields := []struct {
		name  string
		value string
	}{
		{"question_statement", in.Statement},
		{"option1", in.Option1},
		{"option2", in.Option2},
		{"option3", in.Option3},
		{"option4", in.Option4},
	}
	vals := make([]string, len(fields))
	for i, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return invalid(f.name, "is required")
		}
		vals[i] = v
	}
	correct, err := ParseCorrectOption("correct_option", in.CorrectOption)
	if err != nil {
		return err
	}
	q.Statement = vals[0]
	q.Option1, q.Option2, q.Option3, q.Option4 = vals[1], vals[2], vals[3], vals[4]
	q.CorrectOption = correct
	return nil
}

// ListQuestions returns the quiz together with its questions.
func (s *Catalog) ListQuestions(ctx context.Context, p *Principal, quizID uint) (*models.Quiz, error) {
	if err := RequireAdmin(p); err != nil {
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
	if quiz.Questions == nil {
		quiz.Questions = []models.Question{}
	}
	return &quiz, nil
}

func (s *Catalog) GetQuestion(ctx context.Context, p *Principal, id uint) (*models.Question, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, findErr("question", id, err)
	}
	return &question, nil
}

func (s *Catalog) CreateQuestion(ctx context.Context, p *Principal, quizID uint, in QuestionInput) (*models.Question, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	question := models.Question{QuizID: quizID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.First(&quiz, quizID).Error; err != nil {
			return findErr("quiz", quizID, err)
		}
		if err := in.apply(&question); err != nil {
			return err
		}
		return tx.Create(&question).Error
	})
	if err != nil {
		return nil, storeErr("create question", err)
	}
	log.Printf("question %d added to quiz %d", question.ID, quizID)
	return &question, nil
}

func (s *Catalog) UpdateQuestion(ctx context.Context, p *Principal, id uint, in QuestionInput) (*models.Question, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	var question models.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, id).Error; err != nil {
			return findErr("question", id, err)
		}
		if err := in.apply(&question); err != nil {
			return err
		}
		return tx.Save(&question).Error
	})
	if err != nil {
		return nil, storeErr("update question", err)
	}
	log.Printf("question %d updated", question.ID)
	return &question, nil
}

func (s *Catalog) DeleteQuestion(ctx context.Context, p *Principal, id uint) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, id).Error; err != nil {
			return findErr("question", id, err)
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return storeErr("delete question", err)
	}
	log.Printf("question %d deleted", id)
	return nil
}
