package services

import (
	"context"
	"log"
	"strings"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/gorm"
)

type ChapterInput struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

// ListChapters returns the subject together with its chapters.
func (s *Catalog) ListChapters(ctx context.Context, p *Principal, subjectID uint) (*models.Subject, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var subject models.Subject
	err := s.db.WithContext(ctx).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&subject, subjectID).Error
	if err != nil {
		return nil, findErr("subject", subjectID, err)
	}
	if subject.Chapters == nil {
		subject.Chapters = []models.Chapter{}
	}
	return &subject, nil
}

func (s *Catalog) GetChapter(ctx context.Context, p *Principal, id uint) (*models.Chapter, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var chapter models.Chapter
	if err := s.db.WithContext(ctx).First(&chapter, id).Error; err != nil {
		return nil, findErr("chapter", id, err)
	}
	return &chapter, nil
}

func (s *Catalog) CreateChapter(ctx context.Context, p *Principal, subjectID uint, in ChapterInput) (*models.Chapter, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	var chapter models.Chapter
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject
		if err := tx.First(&subject, subjectID).Error; err != nil {
			return findErr("subject", subjectID, err)
		}
		name, err := requireName("name", in.Name)
		if err != nil {
			return err
		}
		dup, err := taken(tx, &models.Chapter{}, 0, "subject_id = ? AND name = ?", subjectID, name)
		if err != nil {
			return err
		}
		if dup {
			return invalid("name", "a chapter with this name already exists under this subject")
		}
		chapter = models.Chapter{
			SubjectID:   subjectID,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
		}
		return tx.Create(&chapter).Error
	})
	if err != nil {
		return nil, storeErr("create chapter", err)
	}
	log.Printf("chapter %d %q created in subject %d", chapter.ID, chapter.Name, subjectID)
	return &chapter, nil
}

func (s *Catalog) UpdateChapter(ctx context.Context, p *Principal, id uint, in ChapterInput) (*models.Chapter, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	var chapter models.Chapter
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&chapter, id).Error; err != nil {
			return findErr("chapter", id, err)
		}
		name, err := requireName("name", in.Name)
		if err != nil {
			return err
		}
		dup, err := taken(tx, &models.Chapter{}, id, "subject_id = ? AND name = ?", chapter.SubjectID, name)
		if err != nil {
			return err
		}
		if dup {
			return invalid("name", "a chapter with this name already exists under this subject")
		}
		chapter.Name = name
		chapter.Description = strings.TrimSpace(in.Description)
		return tx.Save(&chapter).Error
	})
	if err != nil {
		return nil, storeErr("update chapter", err)
	}
	log.Printf("chapter %d updated", chapter.ID)
	return &chapter, nil
}

// DeleteChapter removes the chapter with its quizzes, questions and scores.
func (s *Catalog) DeleteChapter(ctx context.Context, p *Principal, id uint) (*DeleteReport, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var rep DeleteReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chapter models.Chapter
		if err := tx.First(&chapter, id).Error; err != nil {
			return findErr("chapter", id, err)
		}
		return cascadeChapters(tx, []uint{id}, &rep)
	})
	if err != nil {
		return nil, storeErr("delete chapter", err)
	}
	log.Printf("chapter %d deleted (%d quizzes, %d questions, %d scores)", id, rep.Quizzes, rep.Questions, rep.Scores)
	return &rep, nil
}
