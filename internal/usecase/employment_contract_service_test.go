package usecase

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/contract"
	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/memory"
	contractmock "github.com/riskibarqy/footmate/internal/mocks/domain/contract"
	"github.com/stretchr/testify/mock"
)

type contractFixture struct {
	*memberFixture
	service *EmploymentContractService
	events  *recordingPublisher
	club    user.Principal
	player  user.Principal
}

func newContractFixture(t *testing.T, repo contract.Repository) *contractFixture {
	t.Helper()
	members := newMemberFixture(t)
	club := members.addClub(t, "club-1", "Mumbai City", user.MemberTypeClub, user.ProfileVerified)
	p := members.addPlayer(t, "player-1", "Lallianzuala", "Chhangte", user.ProfileVerified)
	if repo == nil {
		repo = memory.NewContractRepository()
	}
	events := &recordingPublisher{}
	service := NewEmploymentContractService(repo, members.logins, members.email, events, &sequenceIDGenerator{prefix: "ct"}, members.logger)
	service.now = func() time.Time { return time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC) }
	return &contractFixture{memberFixture: members, service: service, events: events, club: club, player: p}
}

func contractTerm(years int) ContractInput {
	effective := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return ContractInput{
		Category:         "club",
		ClubAcademyName:  "Mumbai City",
		ClubAcademyEmail: "mumbaicity@example.com",
		PlayerName:       "Lallianzuala Chhangte",
		PlayerEmail:      "lallianzuala@example.com",
		OtherName:        "dropped unless others",
		EffectiveDate:    effective,
		ExpiryDate:       effective.AddDate(years, 0, 0),
		PlaceOfSignature: "Mumbai",
	}
}

func TestEmploymentContractService_Create_ByPlayer(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t, nil)

	item, err := f.service.Create(t.Context(), f.player, contractTerm(2))
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	if item.SentBy != f.player.UserID || item.SendTo != f.club.UserID {
		t.Fatalf("unexpected parties: sent_by=%s send_to=%s", item.SentBy, item.SendTo)
	}
	if item.Status != contract.StatusPending || item.OtherName != "" {
		t.Fatalf("expected normalized pending contract, got %+v", item)
	}

	mail, ok := f.mailer.lastTo(notification.TemplateContractCreatedClubAcademy)
	if !ok || mail.To != f.club.Email {
		t.Fatalf("expected club notification, got %v", f.mailer.templates())
	}
	if mail.Data["link"] != "https://app.example.com/employment-contract/"+item.ID {
		t.Fatalf("unexpected link: %v", mail.Data["link"])
	}
	if !slices.Equal(f.events.subjects, []string{EventContractCreated}) {
		t.Fatalf("unexpected events: %v", f.events.subjects)
	}

	_, err = f.service.Create(t.Context(), f.player, contractTerm(1))
	assertFailure(t, err, ErrBadRequest, MsgContractExists)
}

func TestEmploymentContractService_Create_ByClubTargetsPlayer(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t, nil)

	in := contractTerm(3)
	in.Category = "academy"
	in.ClubAcademyEmail = "ignored@example.com"
	item, err := f.service.Create(t.Context(), f.club, in)
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	if item.SendTo != f.player.UserID || item.Category != user.MemberTypeClub || item.ClubAcademyEmail != f.club.Email {
		t.Fatalf("club side must come from the caller, got %+v", item)
	}
	if _, ok := f.mailer.lastTo(notification.TemplateContractCreatedPlayer); !ok {
		t.Fatalf("expected player notification, got %v", f.mailer.templates())
	}
}

func TestEmploymentContractService_Create_Rejections(t *testing.T) {
	t.Parallel()

	t.Run("term longer than five years", func(t *testing.T) {
		t.Parallel()
		f := newContractFixture(t, nil)
		_, err := f.service.Create(t.Context(), f.player, contractTerm(6))
		assertFailure(t, err, ErrValidationFailed, MsgContractTermTooLong)
	})

	t.Run("expiry before effective", func(t *testing.T) {
		t.Parallel()
		f := newContractFixture(t, nil)
		_, err := f.service.Create(t.Context(), f.player, contractTerm(-1))
		assertFailure(t, err, ErrValidationFailed, "")
	})

	t.Run("unverified club", func(t *testing.T) {
		t.Parallel()
		f := newContractFixture(t, nil)
		f.addClub(t, "club-2", "Odisha FC", user.MemberTypeClub, user.ProfileNonVerified)
		in := contractTerm(1)
		in.ClubAcademyEmail = odisha.Email
		_, err := f.service.Create(t.Context(), f.player, in)
		assertFailure(t, err, ErrBadRequest, "club does not exists")
	})
}

func TestEmploymentContractService_Create_PlayerAlreadyActive(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t, nil)
	odisha := f.addClub(t, "club-2", "Odisha FC", user.MemberTypeClub, user.ProfileVerified)

	item, err := f.service.Create(t.Context(), f.player, contractTerm(2))
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	if _, err := f.service.UpdateStatus(t.Context(), f.club, UpdateContractStatusInput{ContractID: item.ID, Status: "active"}); err != nil {
		t.Fatalf("approve contract: %v", err)
	}

	t.Run("player asks another club", func(t *testing.T) {
		in := contractTerm(1)
		in.ClubAcademyName = "Odisha FC"
		in.ClubAcademyEmail = "odishafc@example.com"
		_, err := f.service.Create(t.Context(), f.player, in)
		assertFailure(t, err, ErrBadRequest, MsgActiveContractExists)
	})

	t.Run("another club offers the player", func(t *testing.T) {
		in := contractTerm(1)
		in.PlayerEmail = f.player.Email
		_, err := f.service.Create(t.Context(), odisha, in)
		assertFailure(t, err, ErrBadRequest, MsgActiveContractExists)
	})

	t.Run("active guard precedes club lookup", func(t *testing.T) {
		in := contractTerm(1)
		in.ClubAcademyEmail = "unknown-club@example.com"
		_, err := f.service.Create(t.Context(), f.player, in)
		assertFailure(t, err, ErrBadRequest, MsgActiveContractExists)
	})
}

func TestEmploymentContractService_Update(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t, nil)

	item, err := f.service.Create(t.Context(), f.player, contractTerm(2))
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}

	_, err = f.service.Update(t.Context(), f.club, item.ID, contractTerm(1))
	assertFailure(t, err, ErrForbidden, MsgPermissionDenied)

	in := contractTerm(4)
	in.PlaceOfSignature = "Pune"
	updated, err := f.service.Update(t.Context(), f.player, item.ID, in)
	if err != nil {
		t.Fatalf("update contract: %v", err)
	}
	if updated.PlaceOfSignature != "Pune" || !updated.CreatedAt.Equal(item.CreatedAt) {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := f.service.UpdateStatus(t.Context(), f.club, UpdateContractStatusInput{ContractID: item.ID, Status: "active"}); err != nil {
		t.Fatalf("approve contract: %v", err)
	}
	_, err = f.service.Update(t.Context(), f.player, item.ID, in)
	assertFailure(t, err, ErrUnauthorized, MsgContractApproved)

	err = f.service.Delete(t.Context(), f.player, item.ID)
	assertFailure(t, err, ErrNotFound, MsgContractNotFound)
}

func TestEmploymentContractService_UpdateStatus(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t, nil)

	item, err := f.service.Create(t.Context(), f.player, contractTerm(2))
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}

	_, err = f.service.UpdateStatus(t.Context(), f.club, UpdateContractStatusInput{ContractID: item.ID, Status: "disapproved"})
	assertFailure(t, err, ErrValidationFailed, "remarks is required when disapproving")

	_, err = f.service.UpdateStatus(t.Context(), f.club, UpdateContractStatusInput{ContractID: item.ID, Status: "completed"})
	assertFailure(t, err, ErrValidationFailed, "")

	_, err = f.service.UpdateStatus(t.Context(), f.player, UpdateContractStatusInput{ContractID: item.ID, Status: "active"})
	assertFailure(t, err, ErrNotFound, MsgContractNotActionable)

	reviewed, err := f.service.UpdateStatus(t.Context(), f.club, UpdateContractStatusInput{
		ContractID: item.ID,
		Status:     "disapproved",
		Remarks:    "wrong dates",
	})
	if err != nil {
		t.Fatalf("disapprove contract: %v", err)
	}
	if reviewed.Status != contract.StatusDisapproved || reviewed.Remarks != "wrong dates" {
		t.Fatalf("unexpected contract: %+v", reviewed)
	}
	mail, ok := f.mailer.lastTo(notification.TemplateContractDisapprovalByClubAcademy)
	if !ok || mail.To != f.player.Email {
		t.Fatalf("expected disapproval mail to the player, got %v", f.mailer.templates())
	}
}

func TestEmploymentContractService_UpdateStatus_ActiveConflictUsingMockery(t *testing.T) {
	t.Parallel()

	repo := contractmock.NewRepository(t)
	f := newContractFixture(t, repo)
	repo.
		On("UpdateStatus", mock.Anything, f.club.UserID, "ct-9", contract.StatusActive, "").
		Return(contract.EmploymentContract{}, false, contract.ErrActiveContractExists).
		Once()

	_, err := f.service.UpdateStatus(t.Context(), f.club, UpdateContractStatusInput{ContractID: " ct-9 ", Status: "ACTIVE"})
	assertFailure(t, err, ErrBadRequest, MsgActiveContractExists)
}

func TestEmploymentContractService_CompleteExpiredUsingMockery(t *testing.T) {
	t.Parallel()

	repo := contractmock.NewRepository(t)
	f := newContractFixture(t, repo)
	today := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	repo.On("CompleteExpired", mock.Anything, today).Return(3, nil).Once()

	count, err := f.service.CompleteExpired(t.Context())
	if err != nil {
		t.Fatalf("complete expired: %v", err)
	}
	if count != 3 {
		t.Fatalf("unexpected count: %d", count)
	}

	repo.On("CompleteExpired", mock.Anything, today).Return(0, errors.New("db down")).Once()
	if _, err := f.service.CompleteExpired(t.Context()); err == nil {
		t.Fatalf("expected repository error")
	}
}
