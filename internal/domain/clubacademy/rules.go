package clubacademy

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidPAN       = errors.New("invalid pan number")
	ErrInvalidCOI       = errors.New("invalid coi number")
	ErrInvalidTIN       = errors.New("invalid tin number")
	ErrUnknownDocument  = errors.New("invalid document type")
	ErrInvalidFoundedIn = errors.New("founded_in must be a past year")
)

var (
	panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	coiPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	tinPattern = regexp.MustCompile(`^[0-9]{9,12}$`)
)

// ValidateDocument checks the number format for the declared document type.
func ValidateDocument(docType DocumentType, number string) error {
	number = strings.TrimSpace(number)
	switch docType {
	case DocumentPAN:
		if !panPattern.MatchString(number) {
			return ErrInvalidPAN
		}
	case DocumentCOI:
		if !coiPattern.MatchString(number) {
			return ErrInvalidCOI
		}
	case DocumentTIN:
		if !tinPattern.MatchString(number) {
			return ErrInvalidTIN
		}
	default:
		return ErrUnknownDocument
	}
	return nil
}

func (p Profile) Validate(now time.Time) error {
	if p.FoundedIn < 1 || p.FoundedIn > now.Year() {
		return ErrInvalidFoundedIn
	}
	if p.Document != nil {
		return ValidateDocument(p.Document.Type, p.Document.Number)
	}
	return nil
}
