package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/footplayer"
	"github.com/riskibarqy/footmate/internal/domain/paging"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/reportcard"
)

// FootplayerListRepository joins footplayer requests with player profiles.
type FootplayerListRepository struct {
	requests *FootplayerRepository
	players  *PlayerRepository
}

func NewFootplayerListRepository(requests *FootplayerRepository, players *PlayerRepository) *FootplayerListRepository {
	return &FootplayerListRepository{requests: requests, players: players}
}

type footplayerListItem struct {
	row       footplayer.ListRow
	secondary string
	createdAt time.Time
}

func (r *FootplayerListRepository) List(_ context.Context, filter footplayer.ListFilter) ([]footplayer.ListRow, error) {
	items := r.rows(filter)
	sortRows(items, filter.Params, func(item footplayerListItem) string {
		switch filter.SortBy {
		case "name":
			return strings.ToLower(item.row.FullName) + "\x00" + item.row.ID
		case "status":
			return string(item.row.Status) + "\x00" + item.row.ID
		case "player_type":
			return item.row.PlayerType + "\x00" + item.row.ID
		default:
			return timeKey(&item.createdAt) + item.row.ID
		}
	})
	start, end := filter.Window(len(items))
	out := make([]footplayer.ListRow, 0, end-start)
	for _, item := range items[start:end] {
		out = append(out, item.row)
	}
	return out, nil
}

func (r *FootplayerListRepository) Count(_ context.Context, filter footplayer.ListFilter) (int, error) {
	return len(r.rows(filter)), nil
}

func (r *FootplayerListRepository) rows(filter footplayer.ListFilter) []footplayerListItem {
	requests := r.requests.live(func(item footplayer.Request) bool { return item.SentBy == filter.SentBy })
	profiles := r.players.snapshot()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]footplayerListItem, 0, len(requests))
	for _, req := range requests {
		p, ok := profiles[req.SendTo.UserID]
		if !ok {
			continue
		}
		item := footplayerListItem{
			row: footplayer.ListRow{
				ID:         req.ID,
				Status:     req.Status,
				UserID:     p.UserID,
				FirstName:  p.FirstName,
				LastName:   p.LastName,
				FullName:   p.FullName(),
				Email:      p.Email,
				Phone:      p.Phone,
				AvatarURL:  p.AvatarURL,
				Position:   p.PositionAt(1),
				PlayerType: string(p.PlayerType),
			},
			secondary: p.PositionAt(2),
			createdAt: req.CreatedAt,
		}
		if search != "" && !containsFold(search, p.FirstName, p.LastName, item.row.FullName, item.row.PlayerType, item.secondary) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ReportCardQueryRepository builds the report card list views from the other
// in-memory stores.
type ReportCardQueryRepository struct {
	cards    *ReportCardRepository
	requests *FootplayerRepository
	players  *PlayerRepository
	clubs    *ClubAcademyRepository
}

func NewReportCardQueryRepository(
	cards *ReportCardRepository,
	requests *FootplayerRepository,
	players *PlayerRepository,
	clubs *ClubAcademyRepository,
) *ReportCardQueryRepository {
	return &ReportCardQueryRepository{cards: cards, requests: requests, players: players, clubs: clubs}
}

func (r *ReportCardQueryRepository) ListManaged(_ context.Context, filter reportcard.ManagedFilter) ([]reportcard.ManagedRow, error) {
	rows := r.managed(filter)
	sortRows(rows, filter.Params, func(row reportcard.ManagedRow) string {
		switch filter.SortBy {
		case "category":
			return row.Category
		case "total_report_cards":
			return padInt(row.TotalReportCards)
		case "status":
			return row.Status
		case "published_at":
			return timeKey(row.PublishedAt)
		case "created_at":
			return timeKey(row.CreatedAt)
		default:
			return strings.ToLower(row.Name) + "\x00" + row.UserID
		}
	})
	start, end := filter.Window(len(rows))
	return rows[start:end], nil
}

func (r *ReportCardQueryRepository) CountManaged(_ context.Context, filter reportcard.ManagedFilter) (int, error) {
	return len(r.managed(filter)), nil
}

func (r *ReportCardQueryRepository) managed(filter reportcard.ManagedFilter) []reportcard.ManagedRow {
	links := r.requests.live(func(item footplayer.Request) bool {
		return item.SentBy == filter.SentBy && item.Status == footplayer.StatusAdded
	})
	profiles := r.players.snapshot()
	// Non-draft cards from every sender count; drafts only when they are the caller's.
	cards := r.cards.live(func(card reportcard.ReportCard) bool {
		return card.Status != reportcard.StatusDraft || card.SentBy == filter.SentBy
	})

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]reportcard.ManagedRow, 0, len(links))
	for _, link := range links {
		p, ok := profiles[link.SendTo.UserID]
		if !ok {
			continue
		}
		row := reportcard.ManagedRow{
			UserID:    p.UserID,
			Name:      p.FullName(),
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Category:  string(p.PlayerType),
			AvatarURL: p.AvatarURL,
		}
		var latest *reportcard.ReportCard
		for i := range cards {
			card := cards[i]
			if card.SendTo != p.UserID {
				continue
			}
			if card.Status == reportcard.StatusDraft {
				row.DraftID = card.ID
				continue
			}
			row.TotalReportCards++
			if latest == nil || publishedAfter(card, *latest) {
				latest = &cards[i]
			}
		}
		if latest != nil {
			row.Status = string(latest.Status)
			row.PublishedAt = latest.PublishedAt
			created := latest.CreatedAt
			row.CreatedAt = &created
		}
		if row.DraftID != "" {
			row.Status = string(reportcard.StatusDraft)
		}

		if filter.From != nil && (row.PublishedAt == nil || row.PublishedAt.Before(*filter.From)) {
			continue
		}
		if filter.To != nil && (row.PublishedAt == nil || row.PublishedAt.After(*filter.To)) {
			continue
		}
		if !matchesAny(row.Category, filter.PlayerCategory) || !matchesAny(row.Status, filter.Status) {
			continue
		}
		if search != "" && !containsFold(search, row.Name) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// publishedAfter orders cards by published_at, newest first, with unpublished
// cards last and created_at breaking ties.
func publishedAfter(a, b reportcard.ReportCard) bool {
	switch {
	case a.PublishedAt == nil && b.PublishedAt == nil:
		return a.CreatedAt.After(b.CreatedAt)
	case b.PublishedAt == nil:
		return true
	case a.PublishedAt == nil:
		return false
	case !a.PublishedAt.Equal(*b.PublishedAt):
		return a.PublishedAt.After(*b.PublishedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *ReportCardQueryRepository) ListForPlayer(_ context.Context, filter reportcard.PlayerFilter) ([]reportcard.PlayerRow, error) {
	rows := r.forPlayer(filter)
	sortRows(rows, filter.Params, func(row reportcard.PlayerRow) string {
		switch filter.SortBy {
		case "name":
			return strings.ToLower(row.Name) + "\x00" + row.ID
		case "created_by":
			return row.CreatedBy + "\x00" + row.ID
		case "created_at":
			return timeKey(&row.CreatedAt) + row.ID
		default:
			return timeKey(row.PublishedAt) + row.ID
		}
	})
	start, end := filter.Window(len(rows))
	return rows[start:end], nil
}

func (r *ReportCardQueryRepository) CountForPlayer(_ context.Context, filter reportcard.PlayerFilter) (int, error) {
	return len(r.forPlayer(filter)), nil
}

func (r *ReportCardQueryRepository) forPlayer(filter reportcard.PlayerFilter) []reportcard.PlayerRow {
	cards := r.cards.live(func(card reportcard.ReportCard) bool {
		return card.SendTo == filter.SendTo && card.Status == reportcard.StatusPublished
	})
	clubs := r.clubs.snapshot()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]reportcard.PlayerRow, 0, len(cards))
	for _, card := range cards {
		club, ok := clubs[card.SentBy]
		if !ok {
			continue
		}
		row := reportcard.PlayerRow{
			ID:          card.ID,
			SentBy:      card.SentBy,
			Name:        club.Name,
			CreatedBy:   string(club.MemberType),
			PublishedAt: card.PublishedAt,
			CreatedAt:   card.CreatedAt,
		}
		if filter.From != nil && (row.PublishedAt == nil || row.PublishedAt.Before(*filter.From)) {
			continue
		}
		if filter.To != nil && (row.PublishedAt == nil || row.PublishedAt.After(*filter.To)) {
			continue
		}
		if !matchesAny(row.Name, filter.Name) || !matchesAny(row.CreatedBy, filter.CreatedBy) {
			continue
		}
		if search != "" && !containsFold(search, row.Name) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (r *ReportCardQueryRepository) ListManagedPlayer(_ context.Context, filter reportcard.ManagedPlayerFilter) ([]reportcard.ManagedPlayerRow, error) {
	rows := r.managedPlayer(filter)
	sortRows(rows, filter.Params, func(row reportcard.ManagedPlayerRow) string {
		switch filter.SortBy {
		case "published_at":
			return timeKey(row.PublishedAt) + row.ID
		case "status":
			return string(row.Status) + "\x00" + row.ID
		default:
			return timeKey(&row.CreatedAt) + row.ID
		}
	})
	start, end := filter.Window(len(rows))
	return rows[start:end], nil
}

func (r *ReportCardQueryRepository) CountManagedPlayer(_ context.Context, filter reportcard.ManagedPlayerFilter) (int, error) {
	return len(r.managedPlayer(filter)), nil
}

func (r *ReportCardQueryRepository) managedPlayer(filter reportcard.ManagedPlayerFilter) []reportcard.ManagedPlayerRow {
	cards := r.cards.live(func(card reportcard.ReportCard) bool {
		return card.SendTo == filter.PlayerID && (card.Status != reportcard.StatusDraft || card.SentBy == filter.SentBy)
	})
	clubs := r.clubs.snapshot()

	out := make([]reportcard.ManagedPlayerRow, 0, len(cards))
	for _, card := range cards {
		out = append(out, reportcard.ManagedPlayerRow{
			ID:          card.ID,
			SentBy:      card.SentBy,
			Status:      card.Status,
			CreatedBy:   clubs[card.SentBy].Name,
			PublishedAt: card.PublishedAt,
			CreatedAt:   card.CreatedAt,
		})
	}
	return out
}

func (r *FootplayerRepository) live(match func(footplayer.Request) bool) []footplayer.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]footplayer.Request, 0, len(r.items))
	for _, item := range r.items {
		if item.DeletedAt == nil && match(item) {
			out = append(out, cloneRequest(item))
		}
	}
	return out
}

func (r *ReportCardRepository) live(match func(reportcard.ReportCard) bool) []reportcard.ReportCard {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reportcard.ReportCard, 0, len(r.items))
	for _, card := range r.items {
		if card.DeletedAt == nil && match(card) {
			out = append(out, cloneReportCard(card))
		}
	}
	return out
}

// snapshot returns the live player profiles keyed by user id.
func (r *PlayerRepository) snapshot() map[string]player.Profile {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]player.Profile, len(r.store.players))
	for userID, p := range r.store.players {
		if login, ok := r.store.logins[userID]; !ok || login.IsDeleted() || p.DeletedAt != nil {
			continue
		}
		out[userID] = clonePlayerProfile(p)
	}
	return out
}

func (r *ClubAcademyRepository) snapshot() map[string]clubacademy.Profile {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]clubacademy.Profile, len(r.store.clubs))
	for userID, c := range r.store.clubs {
		out[userID] = cloneClubProfile(c)
	}
	return out
}

func sortRows[T any](rows []T, params paging.Params, key func(T) string) {
	sort.SliceStable(rows, func(i, j int) bool {
		if params.Desc() {
			return key(rows[i]) > key(rows[j])
		}
		return key(rows[i]) < key(rows[j])
	})
}

func matchesAny(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), value) {
			return true
		}
	}
	return false
}

// timeKey orders nil before any time.
func timeKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("20060102150405.000000000")
}

func padInt(v int) string {
	return fmt.Sprintf("%012d", v)
}
