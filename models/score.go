package models

import (
	"time"

	"gorm.io/datatypes"
)

// Score is one attempt of a user at a quiz. Rows are only ever inserted;
// they disappear when the quiz or the user is deleted.
type Score struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	QuizID      uint           `gorm:"not null;index" json:"quiz_id"`
	Quiz        *Quiz          `gorm:"foreignKey:QuizID" json:"-"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"-"`
	TotalScored int            `gorm:"not null" json:"total_scored"`
	Answers     datatypes.JSON `json:"answers,omitempty"` // submitted answers, question id -> option
	CreatedAt   time.Time      `gorm:"column:time_stamp_of_attempt;autoCreateTime" json:"time_stamp_of_attempt"`
}
