package achievement

import "testing"

func intPtr(v int) *int {
	return &v
}

func TestValidateYear(t *testing.T) {
	const current = 2026
	tests := []struct {
		name    string
		year    *int
		wantMsg string
	}{
		{name: "missing", year: nil, wantMsg: "year is required"},
		{name: "future", year: intPtr(2030), wantMsg: "year is greater than 2026"},
		{name: "too old", year: intPtr(1969), wantMsg: "year is less than 1970"},
		{name: "negative", year: intPtr(-5), wantMsg: "year cannot be negative"},
		{name: "zero", year: intPtr(0), wantMsg: "year cannot be zero"},
		{name: "lower bound", year: intPtr(1970)},
		{name: "current", year: intPtr(current)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateYear(tc.year, current)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantMsg {
				t.Fatalf("expected %q, got %v", tc.wantMsg, err)
			}
		})
	}
}
