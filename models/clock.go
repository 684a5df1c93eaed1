package models

import (
	"time"

	"gorm.io/datatypes"
)

// Wire formats for quiz dates and durations, used both ways.
const (
	DateLayout     = "2006-01-02"
	DurationLayout = "15:04"
)

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// FormatDuration renders a stored duration as HH:MM.
func FormatDuration(d datatypes.Time) string {
	return time.Time{}.Add(time.Duration(d)).Format(DurationLayout)
}
