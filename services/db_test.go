package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/vnkhanh/quizmaster-backend/config"
	"github.com/vnkhanh/quizmaster-backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	admin = &Principal{UserID: 1, IsAdmin: true}
	ctx   = context.Background()
)

// newTestDB opens a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDatabase(config.Config{
		DBDriver:   "sqlite",
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBLogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		IsAdmin:  isAdmin,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

func mustSubject(t *testing.T, c *Catalog, name string) *models.Subject {
	t.Helper()
	s, err := c.CreateSubject(ctx, admin, SubjectInput{Name: name})
	if err != nil {
		t.Fatalf("CreateSubject(%q): %v", name, err)
	}
	return s
}

func mustChapter(t *testing.T, c *Catalog, subjectID uint, name string) *models.Chapter {
	t.Helper()
	ch, err := c.CreateChapter(ctx, admin, subjectID, ChapterInput{Name: name})
	if err != nil {
		t.Fatalf("CreateChapter(%q): %v", name, err)
	}
	return ch
}

func mustQuiz(t *testing.T, c *Catalog, chapterID uint, name string) *models.Quiz {
	t.Helper()
	q, err := c.CreateQuiz(ctx, admin, chapterID, QuizInput{Name: name, Date: "2025-03-01", Duration: "01:30"})
	if err != nil {
		t.Fatalf("CreateQuiz(%q): %v", name, err)
	}
	return q
}

func mustQuestion(t *testing.T, c *Catalog, quizID uint, correct string) *models.Question {
	t.Helper()
	q, err := c.CreateQuestion(ctx, admin, quizID, QuestionInput{
		Statement:     "pick " + correct,
		Option1:       "a",
		Option2:       "b",
		Option3:       "c",
		Option4:       "d",
		CorrectOption: correct,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	return q
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}
