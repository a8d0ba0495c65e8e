package httpapi

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/footmate/internal/usecase"
)

type validationSample struct {
	Name  string `json:"name" validate:"required,member_name"`
	PAN   string `json:"pan" validate:"omitempty,pan"`
	Phone string `json:"phone" validate:"omitempty,phone10"`
	Type  string `json:"type" validate:"omitempty,oneof=club academy"`
}

func TestValidateRequest_Messages(t *testing.T) {
	h := NewHandler(Services{}, nil)

	tests := []struct {
		name    string
		payload validationSample
		want    string
	}{
		{name: "valid", payload: validationSample{Name: "11 Stars FC", PAN: "ABCDE1234F", Phone: "9876543210", Type: "club"}},
		{name: "required uses json name", payload: validationSample{}, want: "validation failed: name is required"},
		{name: "member name", payload: validationSample{Name: "123"}, want: "validation failed: name must start with a letter and contain only letters, digits and spaces"},
		{name: "pan", payload: validationSample{Name: "Goa FC", PAN: "abcde1234f"}, want: "validation failed: pan must be a valid PAN number"},
		{name: "phone", payload: validationSample{Name: "Goa FC", Phone: "98765"}, want: "validation failed: phone must be a 10 digit phone number"},
		{name: "oneof", payload: validationSample{Name: "Goa FC", Type: "team"}, want: "validation failed: type must be one of [club academy]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := h.validateRequest(context.Background(), &tc.payload)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, usecase.ErrValidationFailed) {
				t.Fatalf("expected validation failure, got %v", err)
			}
			if err.Error() != tc.want {
				t.Fatalf("unexpected message:\nwant: %s\ngot:  %s", tc.want, err.Error())
			}
		})
	}
}

func TestValidateRequest_ReportCardStatusLeftToService(t *testing.T) {
	h := NewHandler(Services{}, nil)
	for _, status := range []string{"", "PUBLISHED", "archived"} {
		req := reportCardRequest{SendTo: "player-1", Status: status, Abilities: "{"}
		if err := h.validateRequest(context.Background(), &req); err != nil {
			t.Fatalf("status %q rejected before abilities are parsed: %v", status, err)
		}
	}
}
