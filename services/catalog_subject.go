package services

import (
	"context"
	"log"
	"strings"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/gorm"
)

type SubjectInput struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

func (s *Catalog) ListSubjects(ctx context.Context, p *Principal) ([]models.Subject, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	subjects := []models.Subject{}
	if err := s.db.WithContext(ctx).Order("id").Find(&subjects).Error; err != nil {
		return nil, storeErr("list subjects", err)
	}
	return subjects, nil
}

func (s *Catalog) GetSubject(ctx context.Context, p *Principal, id uint) (*models.Subject, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var subject models.Subject
	if err := s.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, findErr("subject", id, err)
	}
	return &subject, nil
}

func (s *Catalog) CreateSubject(ctx context.Context, p *Principal, in SubjectInput) (*models.Subject, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	name, err := requireName("name", in.Name)
	if err != nil {
		return nil, err
	}

	subject := models.Subject{Name: name, Description: strings.TrimSpace(in.Description)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := taken(tx, &models.Subject{}, 0, "name = ?", name)
		if err != nil {
			return err
		}
		if dup {
			return invalid("name", "a subject with this name already exists")
		}
		return tx.Create(&subject).Error
	})
	if err != nil {
		return nil, storeErr("create subject", err)
	}
	log.Printf("subject %d %q created", subject.ID, subject.Name)
	return &subject, nil
}

func (s *Catalog) UpdateSubject(ctx context.Context, p *Principal, id uint, in SubjectInput) (*models.Subject, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	var subject models.Subject
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&subject, id).Error; err != nil {
			return findErr("subject", id, err)
		}
		name, err := requireName("name", in.Name)
		if err != nil {
			return err
		}
		dup, err := taken(tx, &models.Subject{}, id, "name = ?", name)
		if err != nil {
			return err
		}
		if dup {
			return invalid("name", "a subject with this name already exists")
		}
		subject.Name = name
		subject.Description = strings.TrimSpace(in.Description)
		return tx.Save(&subject).Error
	})
	if err != nil {
		return nil, storeErr("update subject", err)
	}
	log.Printf("subject %d updated", subject.ID)
	return &subject, nil
}

// DeleteSubject removes the subject with all of its chapters, quizzes,
// questions and scores.
func (s *Catalog) DeleteSubject(ctx context.Context, p *Principal, id uint) (*DeleteReport, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	var rep DeleteReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject
		if err := tx.First(&subject, id).Error; err != nil {
			return findErr("subject", id, err)
		}
		return cascadeSubject(tx, id, &rep)
	})
	if err != nil {
		return nil, storeErr("delete subject", err)
	}
	log.Printf("subject %d deleted (%d chapters, %d quizzes, %d questions, %d scores)",
		id, rep.Chapters, rep.Quizzes, rep.Questions, rep.Scores)
	return &rep, nil
}
