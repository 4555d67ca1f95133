package services

import (
	"testing"
	"time"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

func TestYearsBetween(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{name: "birthday already passed this year", dob: time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC), want: 36},
		{name: "birthday later this year", dob: time.Date(1990, 12, 25, 0, 0, 0, 0, time.UTC), want: 35},
		{name: "birthday today", dob: time.Date(1990, 9, 1, 0, 0, 0, 0, time.UTC), want: 36},
		{name: "born this year", dob: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), want: 0},
		{name: "dob in the future clamps to zero", dob: time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearsBetween(tt.dob, now); got != tt.want {
				t.Errorf("yearsBetween(%v) = %d, want %d", tt.dob, got, tt.want)
			}
		})
	}
}

func TestNormalizeAge(t *testing.T) {
	t.Run("derived age wins over the submitted one", func(t *testing.T) {
		dob := time.Now().AddDate(-30, 0, -1)
		age, err := normalizeAge(dob, 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if age != 30 {
			t.Errorf("expected 30, got %d", age)
		}
	})

	t.Run("age above 125 is rejected", func(t *testing.T) {
		dob := time.Date(1880, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := normalizeAge(dob, 0)
		if domain.KindOf(err) != domain.KindValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		if domain.MessageOf(err) != "age can not be more than 125 years" {
			t.Errorf("unexpected message %q", domain.MessageOf(err))
		}
	})
}
