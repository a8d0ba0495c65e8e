package usecase

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/paging"
	"github.com/riskibarqy/footmate/internal/domain/reportcard"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/memory"
	reportcardmock "github.com/riskibarqy/footmate/internal/mocks/domain/reportcard"
	"github.com/stretchr/testify/mock"
)

const validAbilities = `[
	{"ability_id":"ab-physical","attributes":[{"attribute_id":"at-acceleration","attribute_score":70},{"attribute_id":"at-agility","attribute_score":65},{"attribute_id":"at-stamina","attribute_score":80}]},
	{"ability_id":"ab-technical","attributes":[{"attribute_id":"at-dribbling","attribute_score":55},{"attribute_id":"at-passing","attribute_score":60},{"attribute_id":"at-heading","attribute_score":40}]},
	{"ability_id":"ab-mental","attributes":[{"attribute_id":"at-vision","attribute_score":75},{"attribute_id":"at-composure","attribute_score":50},{"attribute_id":"at-decisions","attribute_score":45}]}
]`

type reportCardFixture struct {
	*memberFixture
	service *ReportCardService
	cards   *memory.ReportCardRepository
	events  *recordingPublisher
	club    user.Principal
	player  user.Principal
	now     time.Time
}

func newReportCardFixture(t *testing.T) *reportCardFixture {
	t.Helper()
	members := newMemberFixture(t)
	club := members.addClub(t, "club-1", "Bengaluru FC", user.MemberTypeClub, user.ProfileVerified)
	p := members.addPlayer(t, "player-1", "Sunil", "Chhetri", user.ProfileVerified)

	cards := memory.NewReportCardRepository()
	footplayers := memory.NewFootplayerRepository(addedLink("fp-1", club.UserID, p.UserID))
	events := &recordingPublisher{}
	service := NewReportCardService(ReportCardDeps{
		Cards:       cards,
		Queries:     memory.NewReportCardQueryRepository(cards, footplayers, members.players, members.clubs),
		Abilities:   memory.NewAbilityRepository(memory.SeedAbilities(), memory.SeedPositions()),
		Footplayers: footplayers,
		Logins:      members.logins,
		Players:     members.players,
		Clubs:       members.clubs,
		Email:       members.email,
		Events:      events,
		IDGen:       &sequenceIDGenerator{prefix: "rc"},
		Logger:      members.logger,
	})
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	return &reportCardFixture{
		memberFixture: members,
		service:       service,
		cards:         cards,
		events:        events,
		club:          club,
		player:        p,
		now:           now,
	}
}

func TestReportCardService_Create_PublishedNotifiesPlayer(t *testing.T) {
	t.Parallel()
	f := newReportCardFixture(t)

	card, err := f.service.Create(t.Context(), SaveReportCardInput{
		SenderID:  f.club.UserID,
		SendTo:    f.player.UserID,
		Status:    "published",
		Remarks:   " strong season ",
		Abilities: validAbilities,
	})
	if err != nil {
		t.Fatalf("create report card: %v", err)
	}

	if card.ID != "rc-001" || card.Status != reportcard.StatusPublished {
		t.Fatalf("unexpected card: %+v", card)
	}
	if card.PublishedAt == nil || !card.PublishedAt.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected published_at truncated to the day, got %v", card.PublishedAt)
	}
	if card.Remarks != "strong season" {
		t.Fatalf("expected trimmed remarks, got %q", card.Remarks)
	}
	if card.Abilities[0].AbilityName != "Physical" || card.Abilities[0].Attributes[0].AttributeName != "Acceleration" {
		t.Fatalf("expected names resolved from reference data, got %+v", card.Abilities[0])
	}

	mail, ok := f.mailer.lastTo(notification.TemplateReportCardAdded)
	if !ok {
		t.Fatalf("expected report card email, got %v", f.mailer.templates())
	}
	if mail.To != f.player.Email || mail.Data["club_academy_name"] != "Bengaluru FC" || mail.Data["player_name"] != "Sunil" {
		t.Fatalf("unexpected email: %+v", mail)
	}
	if !slices.Equal(f.events.subjects, []string{EventReportCardPublished}) {
		t.Fatalf("unexpected events: %v", f.events.subjects)
	}
}

func TestReportCardService_Create_DraftIsSilent(t *testing.T) {
	t.Parallel()
	f := newReportCardFixture(t)

	card, err := f.service.Create(t.Context(), SaveReportCardInput{
		SenderID:  f.club.UserID,
		SendTo:    f.player.UserID,
		Status:    " Draft ",
		Abilities: validAbilities,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if card.PublishedAt != nil {
		t.Fatalf("draft must not carry published_at, got %v", card.PublishedAt)
	}
	if len(f.mailer.templates()) != 0 || len(f.events.subjects) != 0 {
		t.Fatalf("draft must not notify: mails=%v events=%v", f.mailer.templates(), f.events.subjects)
	}

	_, err = f.service.Create(t.Context(), SaveReportCardInput{
		SenderID:  f.club.UserID,
		SendTo:    f.player.UserID,
		Status:    "draft",
		Abilities: validAbilities,
	})
	assertFailure(t, err, ErrValidationFailed, MsgDraftExists)
}

func TestReportCardService_Create_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(t *testing.T, f *reportCardFixture, in *SaveReportCardInput)
		message string
	}{
		{
			name:    "malformed abilities win over missing target",
			mutate:  func(_ *testing.T, _ *reportCardFixture, in *SaveReportCardInput) { in.Abilities = "{"; in.SendTo = "" },
			message: MsgInvalidAbilityValue,
		},
		{
			name:    "malformed abilities win over missing status",
			mutate:  func(_ *testing.T, _ *reportCardFixture, in *SaveReportCardInput) { in.Abilities = "[{"; in.Status = "" },
			message: MsgInvalidAbilityValue,
		},
		{
			name:    "missing status",
			mutate:  func(_ *testing.T, _ *reportCardFixture, in *SaveReportCardInput) { in.Status = "" },
			message: "status must be one of draft, published",
		},
		{
			name:    "missing target",
			mutate:  func(_ *testing.T, _ *reportCardFixture, in *SaveReportCardInput) { in.SendTo = "" },
			message: "send_to is required",
		},
		{
			name:    "unknown status",
			mutate:  func(_ *testing.T, _ *reportCardFixture, in *SaveReportCardInput) { in.Status = "archived" },
			message: "status must be one of draft, published",
		},
		{
			name: "unknown ability",
			mutate: func(_ *testing.T, _ *reportCardFixture, in *SaveReportCardInput) {
				in.Abilities = `[{"ability_id":"ab-missing","attributes":[{"attribute_id":"at-x","attribute_score":5}]}]`
			},
			message: MsgAbilityNotFound,
		},
		{
			name: "too few scored abilities",
			mutate: func(_ *testing.T, _ *reportCardFixture, in *SaveReportCardInput) {
				in.Abilities = `[{"ability_id":"ab-physical","attributes":[{"attribute_id":"at-acceleration","attribute_score":70},{"attribute_id":"at-agility","attribute_score":65},{"attribute_id":"at-stamina","attribute_score":80}]}]`
			},
			message: MsgScoreCriteriaFailed,
		},
		{
			name: "not a footplayer",
			mutate: func(t *testing.T, f *reportCardFixture, in *SaveReportCardInput) {
				other := f.addPlayer(t, "player-2", "Gurpreet", "Sandhu", user.ProfileVerified)
				in.SendTo = other.UserID
			},
			message: MsgNotFootplayer,
		},
		{
			name: "sender not verified",
			mutate: func(t *testing.T, f *reportCardFixture, in *SaveReportCardInput) {
				login, _, _ := f.logins.GetByUserID(context.Background(), f.club.UserID)
				login.ProfileStatus = user.ProfileNonVerified
				if err := f.logins.Update(context.Background(), login); err != nil {
					t.Fatalf("update login: %v", err)
				}
			},
			message: MsgUserProfileNotVerified,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newReportCardFixture(t)
			in := SaveReportCardInput{
				SenderID:  f.club.UserID,
				SendTo:    f.player.UserID,
				Status:    "published",
				Abilities: validAbilities,
			}
			tc.mutate(t, f, &in)

			_, err := f.service.Create(t.Context(), in)
			assertFailure(t, err, ErrValidationFailed, tc.message)
		})
	}
}

func TestReportCardService_Edit_PublishesDraftOnce(t *testing.T) {
	t.Parallel()
	f := newReportCardFixture(t)

	draft, err := f.service.Create(t.Context(), SaveReportCardInput{
		SenderID:  f.club.UserID,
		SendTo:    f.player.UserID,
		Status:    "draft",
		Abilities: validAbilities,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	edit := EditReportCardInput{
		ReportCardID: draft.ID,
		SaveReportCardInput: SaveReportCardInput{
			SenderID:  f.club.UserID,
			Status:    "published",
			Remarks:   "ready",
			Abilities: validAbilities,
		},
	}
	published, err := f.service.Edit(t.Context(), edit)
	if err != nil {
		t.Fatalf("publish draft: %v", err)
	}
	if published.Status != reportcard.StatusPublished || published.PublishedAt == nil {
		t.Fatalf("expected published card, got %+v", published)
	}
	if published.SendTo != f.player.UserID || !published.CreatedAt.Equal(draft.CreatedAt) {
		t.Fatalf("edit must keep target and creation time, got %+v", published)
	}

	_, err = f.service.Edit(t.Context(), edit)
	assertFailure(t, err, ErrValidationFailed, MsgReportCardCannotBeEdited)

	edit.SenderID = "club-other"
	_, err = f.service.Edit(t.Context(), edit)
	assertFailure(t, err, ErrValidationFailed, MsgReportCardNotFound)
}

func TestReportCardService_View_Access(t *testing.T) {
	t.Parallel()
	f := newReportCardFixture(t)
	outsider := f.addClub(t, "club-2", "Kerala Blasters", user.MemberTypeClub, user.ProfileVerified)

	draft, err := f.service.Create(t.Context(), SaveReportCardInput{
		SenderID:  f.club.UserID,
		SendTo:    f.player.UserID,
		Status:    "draft",
		Abilities: validAbilities,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	_, err = f.service.View(t.Context(), f.player, draft.ID)
	assertFailure(t, err, ErrValidationFailed, MsgNotAllowedToViewDraft)

	view, err := f.service.View(t.Context(), f.club, draft.ID)
	if err != nil {
		t.Fatalf("author views draft: %v", err)
	}
	if view.PlayerName != "Sunil Chhetri" || view.AuthorName != "Bengaluru FC" || view.AuthorType != user.MemberTypeClub {
		t.Fatalf("unexpected view: %+v", view)
	}

	if _, err := f.service.Edit(t.Context(), EditReportCardInput{
		ReportCardID:        draft.ID,
		SaveReportCardInput: SaveReportCardInput{SenderID: f.club.UserID, Status: "published", Abilities: validAbilities},
	}); err != nil {
		t.Fatalf("publish draft: %v", err)
	}

	if _, err := f.service.View(t.Context(), f.player, draft.ID); err != nil {
		t.Fatalf("player views published card: %v", err)
	}
	_, err = f.service.View(t.Context(), outsider, draft.ID)
	assertFailure(t, err, ErrValidationFailed, MsgNotAllowedToViewCard)

	_, err = f.service.View(t.Context(), f.club, "missing")
	assertFailure(t, err, ErrValidationFailed, MsgReportCardNotFound)
}

func TestReportCardService_ListManagedForPlayer(t *testing.T) {
	t.Parallel()
	f := newReportCardFixture(t)

	for _, status := range []string{"published", "draft"} {
		if _, err := f.service.Create(t.Context(), SaveReportCardInput{
			SenderID:  f.club.UserID,
			SendTo:    f.player.UserID,
			Status:    status,
			Abilities: validAbilities,
		}); err != nil {
			t.Fatalf("create %s card: %v", status, err)
		}
	}

	page, err := f.service.ListManagedForPlayer(t.Context(), reportcard.ManagedPlayerFilter{
		SentBy:   f.club.UserID,
		PlayerID: f.player.UserID,
	})
	if err != nil {
		t.Fatalf("list managed player cards: %v", err)
	}
	if page.PlayerName != "Sunil Chhetri" || page.DraftID != "rc-002" {
		t.Fatalf("unexpected page header: %+v", page)
	}
	if page.Total != 2 || len(page.Records) != 2 {
		t.Fatalf("expected published card plus own draft, got total=%d records=%d", page.Total, len(page.Records))
	}

	_, err = f.service.ListManagedForPlayer(t.Context(), reportcard.ManagedPlayerFilter{
		SentBy:   "club-2",
		PlayerID: f.player.UserID,
	})
	assertFailure(t, err, ErrNotFound, MsgNotFootplayer)
}

func TestReportCardService_ListManaged_AppliesDefaultsUsingMockery(t *testing.T) {
	t.Parallel()

	queries := reportcardmock.NewQueryRepository(t)
	service := NewReportCardService(ReportCardDeps{Queries: queries})

	wantParams := paging.Params{Page: 1, Limit: 10, SortBy: "name", SortOrder: paging.SortAscending}
	matchFilter := mock.MatchedBy(func(f reportcard.ManagedFilter) bool {
		return f.Params == wantParams && f.SentBy == "club-1" && slices.Equal(f.Status, []string{"draft"})
	})
	rows := []reportcard.ManagedRow{{UserID: "player-1", Name: "Sunil Chhetri", Status: "draft"}}
	queries.On("ListManaged", mock.Anything, matchFilter).Return(rows, nil).Once()
	queries.On("CountManaged", mock.Anything, matchFilter).Return(7, nil).Once()

	page, err := service.ListManaged(t.Context(), reportcard.ManagedFilter{SentBy: "club-1", Status: []string{"draft"}})
	if err != nil {
		t.Fatalf("list managed: %v", err)
	}
	if page.Total != 7 || len(page.Records) != 1 || page.Records[0].UserID != "player-1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
