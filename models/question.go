package models

import (
	"time"
)

// Number of options every question carries.
const OptionCount = 4

type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuizID        uint      `gorm:"not null;index" json:"quiz_id"`
	Quiz          *Quiz     `gorm:"foreignKey:QuizID" json:"-"`
	Statement     string    `gorm:"column:question_statement;type:text;not null" json:"question_statement"`
	Option1       string    `gorm:"size:255;not null" json:"option1"`
	Option2       string    `gorm:"size:255;not null" json:"option2"`
	Option3       string    `gorm:"size:255;not null" json:"option3"`
	Option4       string    `gorm:"size:255;not null" json:"option4"`
	CorrectOption int       `gorm:"not null;check:chk_questions_correct_option,correct_option BETWEEN 1 AND 4" json:"correct_option"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Options returns the four options in display order.
func (q Question) Options() [OptionCount]string {
	return [OptionCount]string{q.Option1, q.Option2, q.Option3, q.Option4}
}
