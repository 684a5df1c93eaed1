package services

import (
	"errors"
	"testing"
	"time"

	"github.com/vnkhanh/quizmaster-backend/models"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("date", " 2025-02-28 ")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := models.FormatDate(d); got != "2025-02-28" {
		t.Fatalf("date = %s, want 2025-02-28", got)
	}

	for _, in := range []string{"", "28/02/2025", "2025-02-30"} {
		_, err := ParseDate("date", in)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "date" {
			t.Errorf("ParseDate(%q) err = %v, want ValidationError on date", in, err)
		}
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("duration", "02:15")
	if err != nil {
		t.Fatalf("ParseDuration: %v", err)
	}
	if got := time.Duration(d); got != 2*time.Hour+15*time.Minute {
		t.Fatalf("duration = %v, want 2h15m", got)
	}
	if got := models.FormatDuration(d); got != "02:15" {
		t.Fatalf("FormatDuration = %q, want 02:15", got)
	}

	for _, in := range []string{"", "2h", "25:00", "ab:cd"} {
		if _, err := ParseDuration("duration", in); err == nil {
			t.Errorf("ParseDuration(%q) succeeded, want error", in)
		}
	}
}

func TestParseCorrectOption(t *testing.T) {
	for want, in := range map[int]string{1: "1", 2: " 2", 3: "3", 4: "4 "} {
		got, err := ParseCorrectOption("correct_option", in)
		if err != nil || got != want {
			t.Errorf("ParseCorrectOption(%q) = %d, %v, want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"", "0", "5", "x", "1.0"} {
		if _, err := ParseCorrectOption("correct_option", in); err == nil {
			t.Errorf("ParseCorrectOption(%q) succeeded, want error", in)
		}
	}
}
