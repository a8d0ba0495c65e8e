package clubacademy

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		docType DocumentType
		number  string
		wantErr error
	}{
		{name: "valid pan", docType: DocumentPAN, number: "ABCDE1234F"},
		{name: "lowercase pan", docType: DocumentPAN, number: "abcde1234f", wantErr: ErrInvalidPAN},
		{name: "short pan", docType: DocumentPAN, number: "ABCDE1234", wantErr: ErrInvalidPAN},
		{name: "valid coi", docType: DocumentCOI, number: "U72200-KA2010"},
		{name: "coi with space", docType: DocumentCOI, number: "U72 200", wantErr: ErrInvalidCOI},
		{name: "valid tin", docType: DocumentTIN, number: "29123456789"},
		{name: "tin too short", docType: DocumentTIN, number: "12345678", wantErr: ErrInvalidTIN},
		{name: "unknown", docType: "passport", number: "X1", wantErr: ErrUnknownDocument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDocument(tc.docType, tc.number)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestProfileValidateFoundedIn(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := (Profile{FoundedIn: 2027}).Validate(now); !errors.Is(err, ErrInvalidFoundedIn) {
		t.Fatalf("expected founded_in error, got %v", err)
	}
	if err := (Profile{FoundedIn: 1999}).Validate(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
