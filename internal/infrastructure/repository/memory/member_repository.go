package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
)

// memberStore keeps logins and their profiles under one lock so that
// registration is atomic.
type memberStore struct {
	mu      sync.RWMutex
	logins  map[string]user.Login
	players map[string]player.Profile
	clubs   map[string]clubacademy.Profile
}

type LoginRepository struct {
	store *memberStore
}

type PlayerRepository struct {
	store *memberStore
}

type ClubAcademyRepository struct {
	store *memberStore
}

// NewMemberRepositories returns login, player and club/academy repositories
// sharing one store.
func NewMemberRepositories() (*LoginRepository, *PlayerRepository, *ClubAcademyRepository) {
	store := &memberStore{
		logins:  make(map[string]user.Login),
		players: make(map[string]player.Profile),
		clubs:   make(map[string]clubacademy.Profile),
	}
	return &LoginRepository{store: store}, &PlayerRepository{store: store}, &ClubAcademyRepository{store: store}
}

func (r *LoginRepository) Register(_ context.Context, login user.Login, profile user.Profile) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.logins {
		if !existing.IsDeleted() && existing.Username == login.Username {
			return user.ErrUsernameTaken
		}
	}
	s.logins[login.UserID] = cloneLogin(login)
	switch p := profile.(type) {
	case player.Profile:
		s.players[p.UserID] = clonePlayerProfile(p)
	case clubacademy.Profile:
		s.clubs[p.UserID] = cloneClubProfile(p)
	}
	return nil
}

func (r *LoginRepository) GetByUserID(ctx context.Context, userID string) (user.Login, bool, error) {
	login, ok, err := r.GetByUserIDIncludingDeleted(ctx, userID)
	if err != nil || !ok || login.IsDeleted() {
		return user.Login{}, false, err
	}
	return login, true, nil
}

func (r *LoginRepository) GetByUserIDIncludingDeleted(_ context.Context, userID string) (user.Login, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	login, ok := r.store.logins[userID]
	if !ok {
		return user.Login{}, false, nil
	}
	return cloneLogin(login), true, nil
}

func (r *LoginRepository) GetByUsername(_ context.Context, username string) (user.Login, bool, error) {
	return r.find(func(l user.Login) bool { return l.Username == user.NormalizeUsername(username) })
}

func (r *LoginRepository) GetByResetToken(_ context.Context, token string) (user.Login, bool, error) {
	if token == "" {
		return user.Login{}, false, nil
	}
	return r.find(func(l user.Login) bool { return l.ForgotPasswordToken == token })
}

func (r *LoginRepository) Update(_ context.Context, login user.Login) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.logins[login.UserID]; !ok {
		return nil
	}
	r.store.logins[login.UserID] = cloneLogin(login)
	return nil
}

func (r *LoginRepository) find(match func(user.Login) bool) (user.Login, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, login := range r.store.logins {
		if !login.IsDeleted() && match(login) {
			return cloneLogin(login), true, nil
		}
	}
	return user.Login{}, false, nil
}

func (r *PlayerRepository) GetByUserID(_ context.Context, userID string) (player.Profile, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[userID]
	if !ok || p.DeletedAt != nil {
		return player.Profile{}, false, nil
	}
	return clonePlayerProfile(p), true, nil
}

func (r *PlayerRepository) GetByEmail(_ context.Context, email string) (player.Profile, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	email = user.NormalizeUsername(email)
	for _, p := range r.store.players {
		if p.DeletedAt == nil && strings.EqualFold(p.Email, email) {
			return clonePlayerProfile(p), true, nil
		}
	}
	return player.Profile{}, false, nil
}

func (r *PlayerRepository) Update(_ context.Context, profile player.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[profile.UserID]; ok {
		r.store.players[profile.UserID] = clonePlayerProfile(profile)
	}
	return nil
}

func (r *PlayerRepository) List(_ context.Context, filter player.DirectoryFilter) ([]player.DirectoryEntry, error) {
	entries := r.directory(filter.Search)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := directorySortKey(entries[i], filter.SortBy), directorySortKey(entries[j], filter.SortBy)
		if filter.Desc() {
			return a > b
		}
		return a < b
	})
	start, end := filter.Window(len(entries))
	return entries[start:end], nil
}

func (r *PlayerRepository) Count(_ context.Context, filter player.DirectoryFilter) (int, error) {
	return len(r.directory(filter.Search)), nil
}

func (r *PlayerRepository) CountByType(_ context.Context) (player.TypeCounts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var counts player.TypeCounts
	for userID, p := range r.store.players {
		if login, ok := r.store.logins[userID]; !ok || login.IsDeleted() {
			continue
		}
		switch p.PlayerType {
		case player.TypeGrassroot:
			counts.Grassroot++
		case player.TypeProfessional:
			counts.Professional++
		case player.TypeAmateur:
			counts.Amateur++
		}
	}
	return counts, nil
}

func (r *PlayerRepository) directory(search string) []player.DirectoryEntry {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]player.DirectoryEntry, 0, len(r.store.players))
	for userID, p := range r.store.players {
		login, ok := r.store.logins[userID]
		if !ok || login.IsDeleted() {
			continue
		}
		entry := player.DirectoryEntry{
			UserID:   userID,
			Name:     p.FullName(),
			Position: p.PositionAt(1),
			Type:     p.PlayerType,
			Email:    login.Username,
			Status:   string(login.Status),
		}
		if search != "" && !containsFold(search, entry.Name, entry.Position, string(entry.Type), entry.Email) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func directorySortKey(e player.DirectoryEntry, sortBy string) string {
	switch sortBy {
	case "email":
		return e.Email
	case "position":
		return e.Position
	case "type":
		return string(e.Type)
	case "status":
		return e.Status
	default:
		return strings.ToLower(e.Name) + "\x00" + e.UserID
	}
}

func (r *ClubAcademyRepository) GetByUserID(_ context.Context, userID string) (clubacademy.Profile, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.clubs[userID]
	if !ok || p.DeletedAt != nil {
		return clubacademy.Profile{}, false, nil
	}
	return cloneClubProfile(p), true, nil
}

func (r *ClubAcademyRepository) GetByUserIDs(_ context.Context, userIDs []string) ([]clubacademy.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]clubacademy.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.store.clubs[id]; ok && p.DeletedAt == nil {
			out = append(out, cloneClubProfile(p))
		}
	}
	return out, nil
}

func (r *ClubAcademyRepository) GetByEmail(_ context.Context, email string) (clubacademy.Profile, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.clubs {
		if p.DeletedAt == nil && strings.EqualFold(p.Email, strings.TrimSpace(email)) {
			return cloneClubProfile(p), true, nil
		}
	}
	return clubacademy.Profile{}, false, nil
}

func (r *ClubAcademyRepository) Update(_ context.Context, profile clubacademy.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clubs[profile.UserID]; ok {
		r.store.clubs[profile.UserID] = cloneClubProfile(profile)
	}
	return nil
}

func cloneLogin(l user.Login) user.Login {
	copied := l
	copied.DeletedAt = cloneTime(l.DeletedAt)
	return copied
}

func clonePlayerProfile(p player.Profile) player.Profile {
	copied := p
	copied.Positions = append([]player.Position(nil), p.Positions...)
	copied.DOB = cloneTime(p.DOB)
	copied.DeletedAt = cloneTime(p.DeletedAt)
	return copied
}

func cloneClubProfile(p clubacademy.Profile) clubacademy.Profile {
	copied := p
	if p.Document != nil {
		doc := *p.Document
		copied.Document = &doc
	}
	copied.DeletedAt = cloneTime(p.DeletedAt)
	return copied
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func containsFold(needle string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
