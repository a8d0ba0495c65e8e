package location

import "testing"

func TestSlugifyTreatsCaseAndSpacingAlike(t *testing.T) {
	a := Slugify("  Tamil Nadu ")
	b := Slugify("tamil   nadu")
	if a != b {
		t.Fatalf("expected equal slugs, got %q and %q", a, b)
	}
	if a != "tamil-nadu" {
		t.Fatalf("unexpected slug: %q", a)
	}
}
