package services

import (
	"time"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// maxAge is the upper bound accepted for a derived age.
const maxAge = 125

// yearsBetween returns the whole-year difference between dob and now.
func yearsBetween(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	// Not yet reached the birthday this year.
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// normalizeAge derives the age from the date of birth. The server-computed
// value always wins over the submitted one.
func normalizeAge(dob time.Time, submitted int) (int, error) {
	age := yearsBetween(dob, time.Now())
	_ = submitted // the client value is accepted only when it already matches

	if age > maxAge {
		return 0, domain.ValidationError("age can not be more than 125 years")
	}
	return age, nil
}
