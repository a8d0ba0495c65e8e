package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/footplayer"
	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%03d", g.prefix, g.next.Add(1)), nil
}

type recordedMail struct {
	To       string
	Template notification.Template
	Data     map[string]any
}

// recordingMailer renders every template to its name and keeps the sends.
type recordingMailer struct {
	mu   sync.Mutex
	sent []recordedMail
	last map[string]any
}

func (m *recordingMailer) Render(template notification.Template, data map[string]any) (notification.Rendered, error) {
	m.mu.Lock()
	m.last = data
	m.mu.Unlock()
	return notification.Rendered{Subject: string(template), Text: string(template)}, nil
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, recordedMail{To: msg.To, Template: notification.Template(msg.Subject), Data: m.last})
	return nil
}

func (m *recordingMailer) templates() []notification.Template {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Template, 0, len(m.sent))
	for _, mail := range m.sent {
		out = append(out, mail.Template)
	}
	return out
}

func (m *recordingMailer) lastTo(template notification.Template) (recordedMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Template == template {
			return m.sent[i], true
		}
	}
	return recordedMail{}, false
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return p.err
}

type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (prefixHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type staticTokenIssuer struct {
	expiresAt time.Time
}

func (i staticTokenIssuer) Issue(principal user.Principal) (string, time.Time, error) {
	return "token-" + principal.UserID, i.expiresAt, nil
}

// memberFixture bundles the shared in-memory member store.
type memberFixture struct {
	logins  *memory.LoginRepository
	players *memory.PlayerRepository
	clubs   *memory.ClubAcademyRepository
	mailer  *recordingMailer
	email   *EmailService
	logger  *logging.Logger
}

func newMemberFixture(t *testing.T) *memberFixture {
	t.Helper()
	logins, players, clubs := memory.NewMemberRepositories()
	mailer := &recordingMailer{}
	logger := logging.NewNop()
	return &memberFixture{
		logins:  logins,
		players: players,
		clubs:   clubs,
		mailer:  mailer,
		email:   NewEmailService(mailer, mailer, nil, EmailLinks{FrontendBaseURL: "https://app.example.com"}, logger),
		logger:  logger,
	}
}

func (f *memberFixture) addPlayer(t *testing.T, id, first, last string, status user.ProfileStatus) user.Principal {
	t.Helper()
	email := strings.ToLower(first) + "@example.com"
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	login := user.Login{
		UserID:        id,
		Username:      email,
		PasswordHash:  "hashed:secret123",
		Status:        user.StatusActive,
		MemberType:    user.MemberTypePlayer,
		Role:          user.RolePlayer,
		ProfileStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	profile := player.Profile{
		UserID:     id,
		FirstName:  first,
		LastName:   last,
		Email:      email,
		PlayerType: player.TypeGrassroot,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := f.logins.Register(context.Background(), login, profile); err != nil {
		t.Fatalf("register player %s: %v", id, err)
	}
	return user.Principal{UserID: id, Email: email, Role: user.RolePlayer, MemberType: user.MemberTypePlayer}
}

func (f *memberFixture) addClub(t *testing.T, id, name string, memberType user.MemberType, status user.ProfileStatus) user.Principal {
	t.Helper()
	email := strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@example.com"
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	login := user.Login{
		UserID:        id,
		Username:      email,
		PasswordHash:  "hashed:secret123",
		Status:        user.StatusActive,
		MemberType:    memberType,
		Role:          user.Role(memberType),
		ProfileStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	profile := clubacademy.Profile{
		UserID:     id,
		Name:       name,
		MemberType: memberType,
		Email:      email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := f.logins.Register(context.Background(), login, profile); err != nil {
		t.Fatalf("register club %s: %v", id, err)
	}
	return user.Principal{UserID: id, Email: email, Role: user.Role(memberType), MemberType: memberType}
}

func addedLink(id, sentBy, playerID string) footplayer.Request {
	now := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	return footplayer.Request{
		ID:        id,
		SentBy:    sentBy,
		SendTo:    footplayer.Recipient{UserID: playerID},
		Status:    footplayer.StatusAdded,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func assertFailure(t *testing.T, err error, kind error, message string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	f, ok := AsFailure(err)
	if !ok {
		t.Fatalf("expected client failure, got %v", err)
	}
	if message != "" && f.Message() != message {
		t.Fatalf("unexpected message: got=%q want=%q", f.Message(), message)
	}
}
