package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ChapterID   uint           `gorm:"not null;index" json:"chapter_id"`
	Chapter     *Chapter       `gorm:"foreignKey:ChapterID" json:"-"`
	Name        string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Date        datatypes.Date `gorm:"type:date;not null" json:"date"`
	Duration    datatypes.Time `gorm:"not null" json:"duration"` // clock value, "02:00" means two hours
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Questions   []Question     `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

// MarshalJSON writes date and duration in the same form the edit screens accept.
func (q Quiz) MarshalJSON() ([]byte, error) {
	type plain Quiz
	return json.Marshal(struct {
		plain
		Date     string `json:"date"`
		Duration string `json:"duration"`
	}{plain(q), FormatDate(q.Date), FormatDuration(q.Duration)})
}
