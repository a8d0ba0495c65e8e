package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/footplayer"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

type FootplayerPage struct {
	Total   int
	Records []footplayer.ListRow
}

type FootplayerDeps struct {
	Requests footplayer.Repository
	Listing  footplayer.ListRepository
	Logins   user.Repository
	Players  player.Repository
	Clubs    clubacademy.Repository
	Email    *EmailService
	Events   EventPublisher
	IDGen    idgen.Generator
	Logger   *logging.Logger
}

type FootplayerService struct {
	requests footplayer.Repository
	listing  footplayer.ListRepository
	logins   user.Repository
	players  player.Repository
	clubs    clubacademy.Repository
	email    *EmailService
	events   EventPublisher
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewFootplayerService(deps FootplayerDeps) *FootplayerService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &FootplayerService{
		requests: deps.Requests,
		listing:  deps.Listing,
		logins:   deps.Logins,
		players:  deps.Players,
		clubs:    deps.Clubs,
		email:    deps.Email,
		events:   eventsOrNoop(deps.Events),
		idGen:    deps.IDGen,
		logger:   logger,
		now:      time.Now,
	}
}

// ListAll returns the sender's footplayers with the total for the same filter.
func (s *FootplayerService) ListAll(ctx context.Context, filter footplayer.ListFilter) (FootplayerPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootplayerService.ListAll")
	defer span.End()

	filter.Params = filter.Params.WithDefaults(defaultPageSize, "created_at", 1)
	filter.Search = strings.TrimSpace(filter.Search)

	var out FootplayerPage
	err := runParallel(ctx,
		func(ctx context.Context) error {
			rows, err := s.listing.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("list footplayers: %w", err)
			}
			out.Records = rows
			return nil
		},
		func(ctx context.Context) error {
			total, err := s.CountDocs(ctx, filter)
			if err != nil {
				return err
			}
			out.Total = total
			return nil
		},
	)
	if err != nil {
		return FootplayerPage{}, err
	}
	return out, nil
}

func (s *FootplayerService) CountDocs(ctx context.Context, filter footplayer.ListFilter) (int, error) {
	total, err := s.listing.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count footplayers: %w", err)
	}
	return total, nil
}

// DeleteRequest removes a request sent by the caller. Players answer requests
// through Reject instead.
func (s *FootplayerService) DeleteRequest(ctx context.Context, principal user.Principal, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootplayerService.DeleteRequest")
	defer span.End()

	id = strings.TrimSpace(id)
	ok, err := s.requests.SoftDelete(ctx, id, principal.UserID)
	if err != nil {
		return fmt.Errorf("delete footplayer request: %w", err)
	}
	if !ok {
		return notFound(MsgFootmateRequestNotFound)
	}
	return nil
}

// SendRequest asks a player to join the caller's squad.
func (s *FootplayerService) SendRequest(ctx context.Context, principal user.Principal, playerUserID string) (footplayer.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootplayerService.SendRequest")
	defer span.End()

	if !principal.MemberType.IsOrganisation() {
		return footplayer.Request{}, forbidden(MsgPermissionDenied)
	}
	playerUserID = strings.TrimSpace(playerUserID)
	if playerUserID == "" {
		return footplayer.Request{}, validationFailed("to is required")
	}

	login, exists, err := s.logins.GetByUserID(ctx, playerUserID)
	if err != nil {
		return footplayer.Request{}, fmt.Errorf("get player login: %w", err)
	}
	if !exists || login.MemberType != user.MemberTypePlayer {
		return footplayer.Request{}, notFound(MsgPlayerNotFound)
	}
	profile, exists, err := s.players.GetByUserID(ctx, playerUserID)
	if err != nil {
		return footplayer.Request{}, fmt.Errorf("get player profile: %w", err)
	}
	if !exists {
		return footplayer.Request{}, notFound(MsgPlayerNotFound)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return footplayer.Request{}, fmt.Errorf("generate footplayer request id: %w", err)
	}
	now := s.now().UTC()
	item := footplayer.Request{
		ID:     id,
		SentBy: principal.UserID,
		SendTo: footplayer.Recipient{
			UserID:    profile.UserID,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Email:     login.Username,
			Phone:     profile.Phone,
		},
		Status:    footplayer.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.requests.Create(ctx, item); err != nil {
		if errors.Is(err, footplayer.ErrRequestExists) {
			return footplayer.Request{}, conflict(MsgFootmateRequestExists)
		}
		return footplayer.Request{}, fmt.Errorf("create footplayer request: %w", err)
	}

	s.email.FootplayerRequest(ctx, login.Username, profile.FullName(), s.senderName(ctx, principal.UserID))
	if err := s.events.Publish(ctx, EventFootplayerRequested, map[string]any{
		"request_id": item.ID,
		"sent_by":    item.SentBy,
		"send_to":    item.SendTo.UserID,
	}); err != nil {
		s.logger.WarnContext(ctx, "publish footplayer event failed", "request_id", item.ID, "error", err)
	}
	return item, nil
}

func (s *FootplayerService) Accept(ctx context.Context, principal user.Principal, id string) error {
	return s.respond(ctx, principal, id, footplayer.StatusAdded)
}

func (s *FootplayerService) Reject(ctx context.Context, principal user.Principal, id string) error {
	return s.respond(ctx, principal, id, footplayer.StatusRejected)
}

func (s *FootplayerService) respond(ctx context.Context, principal user.Principal, id string, to footplayer.Status) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootplayerService.Respond")
	defer span.End()

	ok, err := s.requests.UpdateStatus(ctx, strings.TrimSpace(id), principal.UserID, footplayer.StatusPending, to)
	if err != nil {
		return fmt.Errorf("update footplayer request: %w", err)
	}
	if !ok {
		return notFound(MsgFootmateRequestNotFound)
	}
	s.logger.InfoContext(ctx, "footplayer request answered", "request_id", id, "status", string(to))
	return nil
}

// Invite emails a non-member asking them to sign up.
func (s *FootplayerService) Invite(ctx context.Context, principal user.Principal, email string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootplayerService.Invite")
	defer span.End()

	email = user.NormalizeUsername(email)
	if email == "" {
		return validationFailed("email is required")
	}
	_, exists, err := s.logins.GetByUsername(ctx, email)
	if err != nil {
		return fmt.Errorf("get login by username: %w", err)
	}
	if exists {
		return conflict(MsgEmailAlreadyRegistered)
	}
	s.email.FootplayerInvite(ctx, email, s.senderName(ctx, principal.UserID), string(principal.MemberType))
	return nil
}

func (s *FootplayerService) senderName(ctx context.Context, userID string) string {
	profile, ok, err := s.clubs.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "get club profile failed", "user_id", userID, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return profile.Name
}
