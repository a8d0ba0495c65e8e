package achievement

import (
	"errors"
	"fmt"
)

const MinYear = 1970

// ValidateYear checks a submitted year against [MinYear, currentYear]. Every
// violated bound is evaluated in order and the last one decides the message.
func ValidateYear(year *int, currentYear int) error {
	if year == nil {
		return errors.New("year is required")
	}

	msg := ""
	y := *year
	if y > currentYear {
		msg = fmt.Sprintf("year is greater than %d", currentYear)
	}
	if y < MinYear {
		msg = fmt.Sprintf("year is less than %d", MinYear)
	}
	if y < 0 {
		msg = "year cannot be negative"
	}
	if y == 0 {
		msg = "year cannot be zero"
	}
	if msg != "" {
		return errors.New(msg)
	}
	return nil
}
