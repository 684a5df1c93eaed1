package services

import (
	"strings"
	"time"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/datatypes"
)

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(field, s string) (datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return datatypes.Date{}, invalid(field, "is required")
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return datatypes.Date{}, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return datatypes.Date(t), nil
}

// ParseDuration parses an HH:MM clock value such as "02:00".
func ParseDuration(field, s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid(field, "is required")
	}
	t, err := time.Parse(models.DurationLayout, s)
	if err != nil {
		return 0, invalid(field, "must be in HH:MM format (e.g. 02:00)")
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}

// ParseCorrectOption accepts exactly "1", "2", "3" or "4".
func ParseCorrectOption(field, s string) (int, error) {
	switch strings.TrimSpace(s) {
	case "":
		return 0, invalid(field, "is required")
	case "1":
		return 1, nil
	case "2":
		return 2, nil
	case "3":
		return 3, nil
	case "4":
		return 4, nil
	}
	return 0, invalid(field, "must be 1, 2, 3 or 4")
}

// requireName trims s and rejects an empty result.
func requireName(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "cannot be empty")
	}
	return s, nil
}
