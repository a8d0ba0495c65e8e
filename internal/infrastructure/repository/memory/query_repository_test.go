package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/footplayer"
	"github.com/riskibarqy/footmate/internal/domain/paging"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/reportcard"
	"github.com/riskibarqy/footmate/internal/domain/user"
)

type queryFixture struct {
	players  *PlayerRepository
	clubs    *ClubAcademyRepository
	requests *FootplayerRepository
	cards    *ReportCardRepository
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()
	ctx := context.Background()
	logins, players, clubs := NewMemberRepositories()

	register := func(login user.Login, profile user.Profile) {
		if err := logins.Register(ctx, login, profile); err != nil {
			t.Fatalf("register %s: %v", login.UserID, err)
		}
	}
	register(user.Login{UserID: "club-1", Username: "club@example.com", MemberType: user.MemberTypeClub},
		clubacademy.Profile{UserID: "club-1", Name: "Chennaiyin FC", MemberType: user.MemberTypeClub})
	for _, p := range []player.Profile{
		{UserID: "player-1", FirstName: "Anirudh", LastName: "Thapa", PlayerType: player.TypeProfessional},
		{UserID: "player-2", FirstName: "Lallianzuala", LastName: "Chhangte", PlayerType: player.TypeAmateur},
		{UserID: "player-3", FirstName: "Jeakson", LastName: "Singh", PlayerType: player.TypeGrassroot},
	} {
		register(user.Login{UserID: p.UserID, Username: p.UserID + "@example.com", MemberType: user.MemberTypePlayer}, p)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	requests := NewFootplayerRepository(
		footplayer.Request{ID: "fp-1", SentBy: "club-1", SendTo: footplayer.Recipient{UserID: "player-1"}, Status: footplayer.StatusAdded, CreatedAt: base},
		footplayer.Request{ID: "fp-2", SentBy: "club-1", SendTo: footplayer.Recipient{UserID: "player-2"}, Status: footplayer.StatusAdded, CreatedAt: base.Add(time.Hour)},
		footplayer.Request{ID: "fp-3", SentBy: "club-1", SendTo: footplayer.Recipient{UserID: "player-3"}, Status: footplayer.StatusPending, CreatedAt: base.Add(2 * time.Hour)},
	)

	cards := NewReportCardRepository()
	published := func(id string, day int) reportcard.ReportCard {
		at := base.AddDate(0, 0, day)
		return reportcard.ReportCard{ID: id, SentBy: "club-1", SendTo: "player-1", Status: reportcard.StatusPublished, PublishedAt: &at, CreatedAt: at}
	}
	for _, card := range []reportcard.ReportCard{
		published("rc-1", 5),
		published("rc-2", 10),
		{ID: "rc-3", SentBy: "club-1", SendTo: "player-1", Status: reportcard.StatusDraft, CreatedAt: base.AddDate(0, 0, 12)},
	} {
		if err := cards.Create(ctx, card); err != nil {
			t.Fatalf("create card %s: %v", card.ID, err)
		}
	}
	return &queryFixture{players: players, clubs: clubs, requests: requests, cards: cards}
}

func TestFootplayerListRepository_SearchAndSort(t *testing.T) {
	f := newQueryFixture(t)
	repo := NewFootplayerListRepository(f.requests, f.players)
	ctx := context.Background()

	rows, err := repo.List(ctx, footplayer.ListFilter{SentBy: "club-1", Params: paging.Params{SortBy: "created_at", SortOrder: paging.SortDescending}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 || rows[0].ID != "fp-3" || rows[2].ID != "fp-1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	filter := footplayer.ListFilter{SentBy: "club-1", Search: "AMATEUR"}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one amateur, got %d", total)
	}

	total, _ = repo.Count(ctx, footplayer.ListFilter{SentBy: "club-2"})
	if total != 0 {
		t.Fatalf("expected no rows for another sender, got %d", total)
	}
}

func TestReportCardQueryRepository_Managed(t *testing.T) {
	f := newQueryFixture(t)
	repo := NewReportCardQueryRepository(f.cards, f.requests, f.players, f.clubs)
	ctx := context.Background()

	rows, err := repo.ListManaged(ctx, reportcard.ManagedFilter{SentBy: "club-1"})
	if err != nil {
		t.Fatalf("list managed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected only added footplayers, got %+v", rows)
	}
	thapa := rows[0]
	if thapa.UserID != "player-1" || thapa.TotalReportCards != 2 || thapa.DraftID != "rc-3" || thapa.Status != "draft" {
		t.Fatalf("unexpected row: %+v", thapa)
	}
	if thapa.PublishedAt == nil || thapa.PublishedAt.Day() != 11 {
		t.Fatalf("expected latest published card date, got %v", thapa.PublishedAt)
	}
	if rows[1].UserID != "player-2" || rows[1].TotalReportCards != 0 || rows[1].Status != "" {
		t.Fatalf("unexpected empty row: %+v", rows[1])
	}

	total, _ := repo.CountManaged(ctx, reportcard.ManagedFilter{SentBy: "club-1", Status: []string{"draft"}, PlayerCategory: []string{"professional"}})
	if total != 1 {
		t.Fatalf("expected one draft professional, got %d", total)
	}
	from := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	total, _ = repo.CountManaged(ctx, reportcard.ManagedFilter{SentBy: "club-1", From: &from})
	if total != 0 {
		t.Fatalf("expected date filter to drop every row, got %d", total)
	}
}

func TestReportCardQueryRepository_ForPlayer(t *testing.T) {
	f := newQueryFixture(t)
	repo := NewReportCardQueryRepository(f.cards, f.requests, f.players, f.clubs)
	ctx := context.Background()

	filter := reportcard.PlayerFilter{SendTo: "player-1", Params: paging.Params{SortOrder: paging.SortDescending}}
	rows, err := repo.ListForPlayer(ctx, filter)
	if err != nil {
		t.Fatalf("list for player: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "rc-2" || rows[0].Name != "Chennaiyin FC" || rows[0].CreatedBy != "club" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	total, _ := repo.CountForPlayer(ctx, reportcard.PlayerFilter{SendTo: "player-1", CreatedBy: []string{"academy"}})
	if total != 0 {
		t.Fatalf("expected academy filter to exclude club cards, got %d", total)
	}
	total, _ = repo.CountForPlayer(ctx, reportcard.PlayerFilter{SendTo: "player-1", Search: "chennai"})
	if total != 2 {
		t.Fatalf("expected search to match club name, got %d", total)
	}
}

func TestReportCardQueryRepository_ManagedCountsEverySender(t *testing.T) {
	f := newQueryFixture(t)
	repo := NewReportCardQueryRepository(f.cards, f.requests, f.players, f.clubs)
	ctx := context.Background()

	early := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	for _, card := range []reportcard.ReportCard{
		// published later but created before club-1's cards
		{ID: "rc-9", SentBy: "club-2", SendTo: "player-1", Status: reportcard.StatusPublished, PublishedAt: &late, CreatedAt: early},
		{ID: "rc-10", SentBy: "club-2", SendTo: "player-2", Status: reportcard.StatusPublished, PublishedAt: &early, CreatedAt: early},
		{ID: "rc-11", SentBy: "club-2", SendTo: "player-2", Status: reportcard.StatusDraft, CreatedAt: late},
	} {
		if err := f.cards.Create(ctx, card); err != nil {
			t.Fatalf("create card %s: %v", card.ID, err)
		}
	}

	rows, err := repo.ListManaged(ctx, reportcard.ManagedFilter{SentBy: "club-1"})
	if err != nil {
		t.Fatalf("list managed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	thapa, chhangte := rows[0], rows[1]
	if thapa.TotalReportCards != 3 || thapa.DraftID != "rc-3" {
		t.Fatalf("unexpected row: %+v", thapa)
	}
	if thapa.PublishedAt == nil || !thapa.PublishedAt.Equal(late) {
		t.Fatalf("expected latest card by publish date, got %v", thapa.PublishedAt)
	}
	if chhangte.TotalReportCards != 1 || chhangte.DraftID != "" || chhangte.Status != string(reportcard.StatusPublished) {
		t.Fatalf("expected another club's published card without its draft, got %+v", chhangte)
	}

	perPlayer, err := repo.CountManagedPlayer(ctx, reportcard.ManagedPlayerFilter{SentBy: "club-1", PlayerID: "player-2"})
	if err != nil {
		t.Fatalf("count managed player: %v", err)
	}
	if perPlayer != chhangte.TotalReportCards {
		t.Fatalf("overview total %d disagrees with per-player list %d", chhangte.TotalReportCards, perPlayer)
	}
}
