package contract

import (
	"errors"
	"time"
)

const MaxTermYears = 5

var (
	ErrTermTooLong           = errors.New("expiry date exceeds 5 years of effective date")
	ErrExpiryBeforeEffective = errors.New("expiry date must be after effective date")
)

// YearsBetween returns the number of whole calendar years from start to end.
func YearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	anniversary := start.AddDate(years, 0, 0)
	if anniversary.After(end) {
		years--
	}
	return years
}

// ValidateTerm checks the contract date range.
func ValidateTerm(effective, expiry time.Time) error {
	if expiry.Before(effective) {
		return ErrExpiryBeforeEffective
	}
	if YearsBetween(effective, expiry) > MaxTermYears {
		return ErrTermTooLong
	}
	return nil
}

// Modifiable reports whether the creator may still edit or delete the contract.
func (c EmploymentContract) Modifiable() bool {
	return c.Status == StatusPending || c.Status == StatusDisapproved
}

// Normalize prepares a contract submitted for create or update: it is always
// re-queued as pending and counterparty fields only survive for "others".
func (c EmploymentContract) Normalize() EmploymentContract {
	c.Status = StatusPending
	if !c.IsOthers() {
		c.OtherName = ""
		c.OtherEmail = ""
		c.OtherPhoneNumber = ""
	}
	return c
}

// Expired reports whether an active contract ran past its expiry date.
func (c EmploymentContract) Expired(today time.Time) bool {
	return c.Status == StatusActive && c.ExpiryDate.Before(today)
}
