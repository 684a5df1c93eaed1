package services

import (
	"context"
	"log"
	"strings"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizInput carries the raw form values; date is YYYY-MM-DD and duration HH:MM.
type QuizInput struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
	Duration    string `form:"duration" json:"duration"`
}

type quizFields struct {
	name        string
	description string
	date        datatypes.Date
	duration    datatypes.Time
}

func (in QuizInput) parse() (quizFields, error) {
	name, err := requireName("name", in.Name)
	if err != nil {
		return quizFields{}, err
	}
	date, err := ParseDate("date", in.Date)
	if err != nil {
		return quizFields{}, err
	}
	duration, err := ParseDuration("duration", in.Duration)
	if err != nil {
		return quizFields{}, err
	}
	return quizFields{
		name:        name,
		description: strings.TrimSpace(in.Description),
		date:        date,
		duration:    duration,
	}, nil
}

// ListQuizzes returns the chapter together with its quizzes.
func (s *Catalog) ListQuizzes(ctx context.Context, p *Principal, chapterID uint) (*models.Chapter, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var chapter models.Chapter
	err := s.db.WithContext(ctx).
		Preload("Quizzes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&chapter, chapterID).Error
	if err != nil {
		return nil, findErr("chapter", chapterID, err)
	}
	if chapter.Quizzes == nil {
		chapter.Quizzes = []models.Quiz{}
	}
	return &chapter, nil
}

func (s *Catalog) GetQuiz(ctx context.Context, p *Principal, id uint) (*models.Quiz, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, findErr("quiz", id, err)
	}
	return &quiz, nil
}

func (s *Catalog) CreateQuiz(ctx context.Context, p *Principal, chapterID uint, in QuizInput) (*models.Quiz, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	var quiz models.Quiz
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chapter models.Chapter
		if err := tx.First(&chapter, chapterID).Error; err != nil {
			return findErr("chapter", chapterID, err)
		}
		f, err := in.parse()
		if err != nil {
			return err
		}
		dup, err := taken(tx, &models.Quiz{}, 0, "name = ?", f.name)
		if err != nil {
			return err
		}
		if dup {
			return invalid("name", "a quiz with this name already exists")
		}
		quiz = models.Quiz{
			ChapterID:   chapterID,
			Name:        f.name,
			Description: f.description,
			Date:        f.date,
			Duration:    f.duration,
		}
		return tx.Create(&quiz).Error
	})
	if err != nil {
		return nil, storeErr("create quiz", err)
	}
	log.Printf("quiz %d %q created in chapter %d", quiz.ID, quiz.Name, chapterID)
	return &quiz, nil
}

func (s *Catalog) UpdateQuiz(ctx context.Context, p *Principal, id uint, in QuizInput) (*models.Quiz, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	var quiz models.Quiz
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quiz, id).Error; err != nil {
			return findErr("quiz", id, err)
		}
		f, err := in.parse()
		if err != nil {
			return err
		}
		dup, err := taken(tx, &models.Quiz{}, id, "name = ?", f.name)
		if err != nil {
			return err
		}
		if dup {
			return invalid("name", "a quiz with this name already exists")
		}
		quiz.Name = f.name
		quiz.Description = f.description
		quiz.Date = f.date
		quiz.Duration = f.duration
		return tx.Save(&quiz).Error
	})
	if err != nil {
		return nil, storeErr("update quiz", err)
	}
	log.Printf("quiz %d updated", quiz.ID)
	return &quiz, nil
}

// DeleteQuiz removes the quiz with its questions and every score recorded for it.
func (s *Catalog) DeleteQuiz(ctx context.Context, p *Principal, id uint) (*DeleteReport, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var rep DeleteReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.First(&quiz, id).Error; err != nil {
			return findErr("quiz", id, err)
		}
		return cascadeQuizzes(tx, []uint{id}, &rep)
	})
	if err != nil {
		return nil, storeErr("delete quiz", err)
	}
	log.Printf("quiz %d deleted (%d questions, %d scores)", id, rep.Questions, rep.Scores)
	return &rep, nil
}
