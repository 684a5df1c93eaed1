package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/vnkhanh/quizmaster-backend/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const scoreSheet = "Scores"

var scoreHeader = []interface{}{"Attempt", "Username", "Email", "Score", "Questions", "Attempted at"}

// Exporter renders quiz results as spreadsheets for administrators.
type Exporter struct {
	db *gorm.DB
}

func NewExporter(db *gorm.DB) *Exporter {
	return &Exporter{db: db}
}

// QuizScores writes every attempt at the quiz, newest first, to an xlsx
// workbook. It returns a file name derived from the quiz name and the bytes.
func (e *Exporter) QuizScores(ctx context.Context, p *Principal, quizID uint) (string, *bytes.Buffer, error) {
	if err := RequireAdmin(p); err != nil {
		return "", nil, err
	}
	db := e.db.WithContext(ctx)

	var quiz models.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return "", nil, findErr("quiz", quizID, err)
	}
	var questionCount int64
	if err := db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&questionCount).Error; err != nil {
		return "", nil, storeErr("count questions", err)
	}
	var scores []models.Score
	if err := db.Preload("User").Where("quiz_id = ?", quizID).Order("id DESC").Find(&scores).Error; err != nil {
		return "", nil, storeErr("list scores", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", scoreSheet); err != nil {
		return "", nil, &PersistenceError{Op: "build workbook", Err: err}
	}
	if err := f.SetSheetRow(scoreSheet, "A1", &scoreHeader); err != nil {
		return "", nil, &PersistenceError{Op: "build workbook", Err: err}
	}
	for i, sc := range scores {
		var username, email string
		if sc.User != nil {
			username, email = sc.User.Username, sc.User.Email
		}
		row := []interface{}{
			sc.ID,
			username,
			email,
			sc.TotalScored,
			questionCount,
			sc.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", nil, &PersistenceError{Op: "build workbook", Err: err}
		}
		if err := f.SetSheetRow(scoreSheet, cell, &row); err != nil {
			return "", nil, &PersistenceError{Op: "build workbook", Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, &PersistenceError{Op: "write workbook", Err: err}
	}
	name := slug.Make(quiz.Name)
	if name == "" {
		name = fmt.Sprintf("quiz-%d", quiz.ID)
	}
	return name + "-scores.xlsx", buf, nil
}
