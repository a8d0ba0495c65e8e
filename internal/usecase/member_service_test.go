package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
)

type fakeMediaStore struct {
	keys []string
}

func (s *fakeMediaStore) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func newMemberService(f *memberFixture, media MediaStore) *MemberService {
	service := NewMemberService(MemberDeps{
		Logins:    f.logins,
		Players:   f.players,
		Directory: f.players,
		Clubs:     f.clubs,
		Media:     media,
		Email:     f.email,
		Logger:    f.logger,
	})
	service.now = func() time.Time { return time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC) }
	return service
}

func TestMemberService_ListPlayers(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newMemberService(f, nil)
	f.addPlayer(t, "player-1", "Brandon", "Fernandes", user.ProfileVerified)
	f.addPlayer(t, "player-2", "Bipin", "Singh", user.ProfileVerified)
	f.addPlayer(t, "player-3", "Liston", "Colaco", user.ProfileVerified)

	_, err := service.ListPlayers(t.Context(), player.DirectoryFilter{Search: "ab"})
	assertFailure(t, err, ErrValidationFailed, "search must be at least 3 characters")

	page, err := service.ListPlayers(t.Context(), player.DirectoryFilter{Search: "singh"})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if page.Total != 1 || len(page.Records) != 1 || page.Records[0].UserID != "player-2" {
		t.Fatalf("unexpected search page: %+v", page)
	}
	if page.PlayersCount.Grassroot != 3 {
		t.Fatalf("players count must ignore search, got %+v", page.PlayersCount)
	}
}

func TestMemberService_UpdateDetails_Player(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	media := &fakeMediaStore{}
	service := newMemberService(f, media)
	p := f.addPlayer(t, "player-1", "Akash", "Mishra", user.ProfileVerified)

	_, err := service.UpdateDetails(t.Context(), p, PlayerDetails{FirstName: "Akash", PlayerType: player.TypeAmateur,
		Positions: []player.Position{{ID: "pos-cb", Name: "Centre Back", Priority: 1}}})
	assertFailure(t, err, ErrValidationFailed, "")

	view, err := service.UpdateDetails(t.Context(), p, PlayerDetails{
		FirstName:  " Akash ",
		LastName:   "Mishra",
		PlayerType: player.TypeProfessional,
		Positions:  []player.Position{{ID: "pos-cb", Name: "Centre Back", Priority: 1}},
		WeakFoot:   3,
		Avatar:     &MediaUpload{Filename: "Me.PNG", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")},
	})
	if err != nil {
		t.Fatalf("update player details: %v", err)
	}
	if view.Player == nil || view.Player.FirstName != "Akash" || view.Player.AvatarURL != "https://cdn.example.com/avatars/player-1.png" {
		t.Fatalf("unexpected profile: %+v", view.Player)
	}

	_, err = service.UpdateDetails(t.Context(), p, ClubAcademyDetails{Name: "x", FoundedIn: 2000})
	assertFailure(t, err, ErrBadRequest, MsgInvalidMemberType)
}

func TestMemberService_UpdateDetails_ChangedDocumentReturnsToPending(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newMemberService(f, nil)
	club := f.addClub(t, "club-1", "East Bengal", user.MemberTypeClub, user.ProfileVerified)

	details := ClubAcademyDetails{
		Name:      "East Bengal",
		FoundedIn: 1920,
		Document:  &DocumentInput{Type: clubacademy.DocumentPAN, Number: "ABCDE1234F"},
	}
	if _, err := service.UpdateDetails(t.Context(), club, details); err != nil {
		t.Fatalf("update club details: %v", err)
	}
	if _, err := service.ReviewDocument(t.Context(), club.UserID, ReviewInput{Approved: true}); err != nil {
		t.Fatalf("approve document: %v", err)
	}

	view, err := service.UpdateDetails(t.Context(), club, details)
	if err != nil {
		t.Fatalf("resubmit same document: %v", err)
	}
	if view.ClubAcademy.Document.Status != clubacademy.DocumentApproved {
		t.Fatalf("unchanged document must keep its status, got %s", view.ClubAcademy.Document.Status)
	}

	details.Document = &DocumentInput{Type: clubacademy.DocumentTIN, Number: "123456789"}
	view, err = service.UpdateDetails(t.Context(), club, details)
	if err != nil {
		t.Fatalf("change document: %v", err)
	}
	if view.ClubAcademy.Document.Status != clubacademy.DocumentPending {
		t.Fatalf("changed document must return to pending, got %s", view.ClubAcademy.Document.Status)
	}

	details.Document = &DocumentInput{Type: clubacademy.DocumentPAN, Number: "bad"}
	_, err = service.UpdateDetails(t.Context(), club, details)
	assertFailure(t, err, ErrValidationFailed, clubacademy.ErrInvalidPAN.Error())
}

func TestMemberService_ReviewProfile(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newMemberService(f, nil)
	p := f.addPlayer(t, "player-1", "Ashique", "Kuruniyan", user.ProfileNonVerified)

	_, err := service.ReviewProfile(t.Context(), p.UserID, ReviewInput{})
	assertFailure(t, err, ErrValidationFailed, "remarks is required when disapproving")

	login, err := service.ReviewProfile(t.Context(), p.UserID, ReviewInput{Remarks: "blurry photo"})
	if err != nil {
		t.Fatalf("disapprove profile: %v", err)
	}
	if login.ProfileStatus != user.ProfileDisapproved || login.ProfileRemarks != "blurry photo" {
		t.Fatalf("unexpected login: %+v", login)
	}
	mail, ok := f.mailer.lastTo(notification.TemplateProfileDisapproved)
	if !ok || mail.Data["name"] != "Ashique Kuruniyan" {
		t.Fatalf("expected disapproval email, got %v", f.mailer.templates())
	}

	login, err = service.ReviewProfile(t.Context(), p.UserID, ReviewInput{Approved: true})
	if err != nil {
		t.Fatalf("verify profile: %v", err)
	}
	if login.ProfileStatus != user.ProfileVerified || login.ProfileRemarks != "" {
		t.Fatalf("unexpected login: %+v", login)
	}

	_, err = service.ReviewDocument(t.Context(), p.UserID, ReviewInput{Approved: true})
	assertFailure(t, err, ErrNotFound, MsgDocumentNotFound)
}
