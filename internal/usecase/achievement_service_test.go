package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/achievement"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

func yearPtr(v int) *int {
	return &v
}

func newAchievementService(media MediaStore) *AchievementService {
	service := NewAchievementService(memory.NewAchievementRepository(), media, &sequenceIDGenerator{prefix: "ach"}, logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) }
	return service
}

func TestAchievementService_AddListStats(t *testing.T) {
	t.Parallel()
	media := &fakeMediaStore{}
	service := newAchievementService(media)

	for _, year := range []int{2019, 2024, 2021} {
		if _, err := service.Add(t.Context(), "player-1", AchievementInput{Type: "league", Name: " Santosh Trophy ", Year: yearPtr(year)}); err != nil {
			t.Fatalf("add %d: %v", year, err)
		}
	}
	withMedia, err := service.Add(t.Context(), "player-2", AchievementInput{
		Type:  "cup",
		Name:  "Durand Cup",
		Year:  yearPtr(2025),
		Media: &MediaUpload{Filename: "medal.JPG", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("jpg")},
	})
	if err != nil {
		t.Fatalf("add with media: %v", err)
	}
	if withMedia.MediaURL != "https://cdn.example.com/achievements/player-2/ach-004.jpg" {
		t.Fatalf("unexpected media url: %s", withMedia.MediaURL)
	}

	page, err := service.List(t.Context(), achievement.ListFilter{UserID: "player-1"})
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if page.Total != 3 || len(page.Records) != 3 {
		t.Fatalf("list must be scoped to the owner, got total=%d", page.Total)
	}
	if page.Records[0].Year != 2024 || page.Records[2].Year != 2019 {
		t.Fatalf("expected newest year first, got %d..%d", page.Records[0].Year, page.Records[2].Year)
	}
	if page.Records[0].Name != "Santosh Trophy" {
		t.Fatalf("expected trimmed name, got %q", page.Records[0].Name)
	}

	stats, err := service.Stats(t.Context(), "player-2")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Achievements != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestAchievementService_YearValidation(t *testing.T) {
	t.Parallel()
	service := newAchievementService(nil)

	tests := []struct {
		name string
		year *int
		want string
	}{
		{name: "missing", year: nil, want: "year is required"},
		{name: "future", year: yearPtr(2027), want: "year is greater than 2026"},
		{name: "too old", year: yearPtr(1969), want: "year is less than 1970"},
		{name: "zero", year: yearPtr(0), want: "year cannot be zero"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Add(t.Context(), "player-1", AchievementInput{Name: "x", Year: tc.year})
			assertFailure(t, err, ErrValidationFailed, tc.want)
		})
	}

	_, err := service.Add(t.Context(), "player-1", AchievementInput{
		Name:  "x",
		Year:  yearPtr(2020),
		Media: &MediaUpload{Filename: "a.png", Body: strings.NewReader("a")},
	})
	assertFailure(t, err, ErrBadRequest, "media upload is not enabled")
}

func TestAchievementService_EditDeleteOwnership(t *testing.T) {
	t.Parallel()
	service := newAchievementService(nil)

	item, err := service.Add(t.Context(), "player-1", AchievementInput{Type: "league", Name: "I-League", Year: yearPtr(2022)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err = service.Edit(t.Context(), "player-2", item.ID, AchievementInput{Name: "stolen", Year: yearPtr(2022)})
	assertFailure(t, err, ErrNotFound, MsgAchievementNotFound)

	edited, err := service.Edit(t.Context(), "player-1", item.ID, AchievementInput{Type: "league", Name: "I-League 2", Year: yearPtr(2023), Position: "winner"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Name != "I-League 2" || edited.Year != 2023 || !edited.CreatedAt.Equal(item.CreatedAt) {
		t.Fatalf("unexpected edit: %+v", edited)
	}

	err = service.Delete(t.Context(), "player-2", item.ID)
	assertFailure(t, err, ErrNotFound, MsgAchievementNotFound)
	if err := service.Delete(t.Context(), "player-1", item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = service.Delete(t.Context(), "player-1", item.ID)
	assertFailure(t, err, ErrNotFound, MsgAchievementNotFound)
}
