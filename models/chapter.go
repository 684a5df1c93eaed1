package models

import (
	"time"
)

// Chapter names are unique per subject, not globally.
type Chapter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectID   uint      `gorm:"not null;uniqueIndex:uq_chapter_name_subject" json:"subject_id"`
	Subject     *Subject  `gorm:"foreignKey:SubjectID" json:"-"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:uq_chapter_name_subject" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Quizzes     []Quiz    `gorm:"foreignKey:ChapterID" json:"quizzes,omitempty"`
}
