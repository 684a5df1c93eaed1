package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Username      string          `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email         string          `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password      string          `gorm:"type:text;not null" json:"-"`
	FullName      string          `gorm:"size:150" json:"full_name"`
	Qualification string          `gorm:"size:150" json:"qualification"`
	DOB           *datatypes.Date `gorm:"column:dob" json:"dob,omitempty"`
	IsAdmin       bool            `gorm:"default:false;not null" json:"is_admin"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Scores []Score `gorm:"foreignKey:UserID" json:"-"`
}
