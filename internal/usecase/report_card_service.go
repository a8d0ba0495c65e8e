package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/ability"
	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/footplayer"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/reportcard"
	"github.com/riskibarqy/footmate/internal/domain/user"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

type SaveReportCardInput struct {
	SenderID  string
	SendTo    string
	Status    string
	Remarks   string
	Abilities string
}

type EditReportCardInput struct {
	SaveReportCardInput
	ReportCardID string
}

type ReportCardView struct {
	Card       reportcard.ReportCard
	PlayerName string
	AuthorName string
	AuthorType user.MemberType
}

type ManagedReportCardPage struct {
	Total   int
	Records []reportcard.ManagedRow
}

type PlayerReportCardPage struct {
	Total   int
	Records []reportcard.PlayerRow
}

type ManagedPlayerReportCardPage struct {
	Total      int
	DraftID    string
	PlayerName string
	Records    []reportcard.ManagedPlayerRow
}

type ReportCardDeps struct {
	Cards       reportcard.Repository
	Queries     reportcard.QueryRepository
	Abilities   ability.Repository
	Footplayers footplayer.Repository
	Logins      user.Repository
	Players     player.Repository
	Clubs       clubacademy.Repository
	Email       *EmailService
	Events      EventPublisher
	IDGen       idgen.Generator
	Logger      *logging.Logger
}

type ReportCardService struct {
	cards       reportcard.Repository
	queries     reportcard.QueryRepository
	abilities   ability.Repository
	footplayers footplayer.Repository
	logins      user.Repository
	players     player.Repository
	clubs       clubacademy.Repository
	email       *EmailService
	events      EventPublisher
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewReportCardService(deps ReportCardDeps) *ReportCardService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportCardService{
		cards:       deps.Cards,
		queries:     deps.Queries,
		abilities:   deps.Abilities,
		footplayers: deps.Footplayers,
		logins:      deps.Logins,
		players:     deps.Players,
		clubs:       deps.Clubs,
		email:       deps.Email,
		events:      eventsOrNoop(deps.Events),
		idGen:       deps.IDGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ReportCardService) Create(ctx context.Context, input SaveReportCardInput) (reportcard.ReportCard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportCardService.Create")
	defer span.End()

	input.SenderID = strings.TrimSpace(input.SenderID)
	input.SendTo = strings.TrimSpace(input.SendTo)

	status, abilities, err := s.validateSubmission(ctx, input, true)
	if err != nil {
		return reportcard.ReportCard{}, err
	}
	if err := s.ensureFootplayer(ctx, input.SenderID, input.SendTo); err != nil {
		return reportcard.ReportCard{}, err
	}
	if err := s.ensureVerified(ctx, input.SenderID, input.SendTo); err != nil {
		return reportcard.ReportCard{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return reportcard.ReportCard{}, fmt.Errorf("generate report card id: %w", err)
	}
	now := s.now().UTC()
	card := reportcard.ReportCard{
		ID:        id,
		SentBy:    input.SenderID,
		SendTo:    input.SendTo,
		Status:    status,
		Abilities: abilities,
		Remarks:   strings.TrimSpace(input.Remarks),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == reportcard.StatusPublished {
		today := dateOnly(now)
		card.PublishedAt = &today
	}

	if err := s.cards.Create(ctx, card); err != nil {
		if errors.Is(err, reportcard.ErrDraftExists) {
			return reportcard.ReportCard{}, validationFailed(MsgDraftExists)
		}
		return reportcard.ReportCard{}, fmt.Errorf("create report card: %w", err)
	}

	s.logger.InfoContext(ctx, "report card created", "report_card_id", card.ID, "status", string(card.Status))
	if card.Status == reportcard.StatusPublished {
		s.notifyPublished(ctx, card)
	}
	return card, nil
}

func (s *ReportCardService) Edit(ctx context.Context, input EditReportCardInput) (reportcard.ReportCard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportCardService.Edit")
	defer span.End()

	input.SenderID = strings.TrimSpace(input.SenderID)
	input.ReportCardID = strings.TrimSpace(input.ReportCardID)

	status, abilities, err := s.validateSubmission(ctx, input.SaveReportCardInput, false)
	if err != nil {
		return reportcard.ReportCard{}, err
	}

	existing, exists, err := s.cards.GetBySender(ctx, input.SenderID, input.ReportCardID)
	if err != nil {
		return reportcard.ReportCard{}, fmt.Errorf("get report card: %w", err)
	}
	if !exists {
		return reportcard.ReportCard{}, validationFailed(MsgReportCardNotFound)
	}
	if existing.Status != reportcard.StatusDraft {
		return reportcard.ReportCard{}, validationFailed(MsgReportCardCannotBeEdited)
	}
	if err := s.ensureFootplayer(ctx, input.SenderID, existing.SendTo); err != nil {
		return reportcard.ReportCard{}, err
	}
	if err := s.ensureVerified(ctx, input.SenderID, existing.SendTo); err != nil {
		return reportcard.ReportCard{}, err
	}

	now := s.now().UTC()
	updated := existing
	updated.Status = status
	updated.Abilities = abilities
	updated.Remarks = strings.TrimSpace(input.Remarks)
	updated.UpdatedAt = now
	if status == reportcard.StatusPublished {
		today := dateOnly(now)
		updated.PublishedAt = &today
	}

	ok, err := s.cards.UpdateDraft(ctx, updated)
	if err != nil {
		return reportcard.ReportCard{}, fmt.Errorf("update report card: %w", err)
	}
	if !ok {
		return reportcard.ReportCard{}, validationFailed(MsgReportCardCannotBeEdited)
	}

	if updated.Status == reportcard.StatusPublished {
		s.notifyPublished(ctx, updated)
	}
	return updated, nil
}

func (s *ReportCardService) View(ctx context.Context, principal user.Principal, id string) (ReportCardView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportCardService.View")
	defer span.End()

	card, exists, err := s.cards.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return ReportCardView{}, fmt.Errorf("get report card: %w", err)
	}
	if !exists {
		return ReportCardView{}, validationFailed(MsgReportCardNotFound)
	}
	if card.Status == reportcard.StatusDraft && card.SentBy != principal.UserID {
		return ReportCardView{}, validationFailed(MsgNotAllowedToViewDraft)
	}
	if err := s.ensureCanView(ctx, principal, card); err != nil {
		return ReportCardView{}, err
	}

	view := ReportCardView{Card: card}
	if p, ok, err := s.players.GetByUserID(ctx, card.SendTo); err != nil {
		return ReportCardView{}, fmt.Errorf("get player profile: %w", err)
	} else if ok {
		view.PlayerName = p.FullName()
	}
	if c, ok, err := s.clubs.GetByUserID(ctx, card.SentBy); err != nil {
		return ReportCardView{}, fmt.Errorf("get club profile: %w", err)
	} else if ok {
		view.AuthorName = c.Name
		view.AuthorType = c.MemberType
	}
	return view, nil
}

func (s *ReportCardService) ListManaged(ctx context.Context, filter reportcard.ManagedFilter) (ManagedReportCardPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportCardService.ListManaged")
	defer span.End()

	filter.Params = filter.Params.WithDefaults(defaultPageSize, "name", 1)
	var out ManagedReportCardPage
	err := runParallel(ctx,
		func(ctx context.Context) error {
			rows, err := s.queries.ListManaged(ctx, filter)
			if err != nil {
				return fmt.Errorf("list managed report cards: %w", err)
			}
			out.Records = rows
			return nil
		},
		func(ctx context.Context) error {
			total, err := s.queries.CountManaged(ctx, filter)
			if err != nil {
				return fmt.Errorf("count managed report cards: %w", err)
			}
			out.Total = total
			return nil
		},
	)
	if err != nil {
		return ManagedReportCardPage{}, err
	}
	return out, nil
}

func (s *ReportCardService) ListForPlayer(ctx context.Context, filter reportcard.PlayerFilter) (PlayerReportCardPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportCardService.ListForPlayer")
	defer span.End()

	filter.Params = filter.Params.WithDefaults(defaultPageSize, "published_at", -1)
	var out PlayerReportCardPage
	err := runParallel(ctx,
		func(ctx context.Context) error {
			rows, err := s.queries.ListForPlayer(ctx, filter)
			if err != nil {
				return fmt.Errorf("list player report cards: %w", err)
			}
			out.Records = rows
			return nil
		},
		func(ctx context.Context) error {
			total, err := s.queries.CountForPlayer(ctx, filter)
			if err != nil {
				return fmt.Errorf("count player report cards: %w", err)
			}
			out.Total = total
			return nil
		},
	)
	if err != nil {
		return PlayerReportCardPage{}, err
	}
	return out, nil
}

func (s *ReportCardService) ListManagedForPlayer(ctx context.Context, filter reportcard.ManagedPlayerFilter) (ManagedPlayerReportCardPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportCardService.ListManagedForPlayer")
	defer span.End()

	filter.PlayerID = strings.TrimSpace(filter.PlayerID)
	profile, exists, err := s.players.GetByUserID(ctx, filter.PlayerID)
	if err != nil {
		return ManagedPlayerReportCardPage{}, fmt.Errorf("get player profile: %w", err)
	}
	if !exists {
		return ManagedPlayerReportCardPage{}, notFound(MsgPlayerNotFound)
	}
	link, linked, err := s.footplayers.FindLink(ctx, filter.SentBy, filter.PlayerID)
	if err != nil {
		return ManagedPlayerReportCardPage{}, fmt.Errorf("find footplayer link: %w", err)
	}
	if !linked || link.Status != footplayer.StatusAdded {
		return ManagedPlayerReportCardPage{}, notFound(MsgNotFootplayer)
	}

	filter.Params = filter.Params.WithDefaults(defaultPageSize, "created_at", -1)
	out := ManagedPlayerReportCardPage{PlayerName: profile.FullName()}
	err = runParallel(ctx,
		func(ctx context.Context) error {
			rows, err := s.queries.ListManagedPlayer(ctx, filter)
			if err != nil {
				return fmt.Errorf("list player report cards: %w", err)
			}
			out.Records = rows
			return nil
		},
		func(ctx context.Context) error {
			total, err := s.queries.CountManagedPlayer(ctx, filter)
			if err != nil {
				return fmt.Errorf("count player report cards: %w", err)
			}
			out.Total = total
			return nil
		},
		func(ctx context.Context) error {
			draft, ok, err := s.cards.GetDraft(ctx, filter.SentBy, filter.PlayerID)
			if err != nil {
				return fmt.Errorf("get draft report card: %w", err)
			}
			if ok {
				out.DraftID = draft.ID
			}
			return nil
		},
	)
	if err != nil {
		return ManagedPlayerReportCardPage{}, err
	}
	return out, nil
}

// validateSubmission parses the abilities payload, checks its shape and
// resolves it against reference data, in that order.
func (s *ReportCardService) validateSubmission(ctx context.Context, input SaveReportCardInput, requireTarget bool) (reportcard.Status, []reportcard.AbilityScore, error) {
	submitted, err := reportcard.ParseAbilities(input.Abilities)
	if err != nil {
		return "", nil, validationFailed(MsgInvalidAbilityValue)
	}

	if requireTarget && input.SendTo == "" {
		return "", nil, validationFailed("send_to is required")
	}
	status := reportcard.Status(strings.ToLower(strings.TrimSpace(input.Status)))
	if status != reportcard.StatusDraft && status != reportcard.StatusPublished {
		return "", nil, validationFailed("status must be one of draft, published")
	}
	if err := reportcard.ValidateShape(submitted); err != nil {
		return "", nil, validationFailed(err.Error())
	}

	reference, err := s.abilities.ListWithAttributesByIDs(ctx, reportcard.AbilityIDs(submitted))
	if err != nil {
		return "", nil, fmt.Errorf("load abilities: %w", err)
	}
	enriched, err := reportcard.ValidateAbilities(submitted, reference)
	if err != nil {
		return "", nil, abilityFailure(err)
	}
	return status, enriched, nil
}

func abilityFailure(err error) error {
	switch {
	case errors.Is(err, reportcard.ErrAbilityNotFound):
		return validationFailed(MsgAbilityNotFound)
	case errors.Is(err, reportcard.ErrAttributeNotFound):
		return validationFailed(MsgAttributeNotFound)
	case errors.Is(err, reportcard.ErrDuplicateAbility):
		return validationFailed(MsgDuplicateAbilityID)
	case errors.Is(err, reportcard.ErrDuplicateAttribute):
		return validationFailed(MsgDuplicateAttributeID)
	case errors.Is(err, reportcard.ErrScoreCriteriaFailed):
		return validationFailed(MsgScoreCriteriaFailed)
	default:
		return validationFailed(err.Error())
	}
}

func (s *ReportCardService) ensureFootplayer(ctx context.Context, senderID, playerID string) error {
	link, exists, err := s.footplayers.FindLink(ctx, senderID, playerID)
	if err != nil {
		return fmt.Errorf("find footplayer link: %w", err)
	}
	if !exists || link.Status != footplayer.StatusAdded {
		return validationFailed(MsgNotFootplayer)
	}
	return nil
}

func (s *ReportCardService) ensureVerified(ctx context.Context, senderID, playerID string) error {
	playerLogin, exists, err := s.logins.GetByUserID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player login: %w", err)
	}
	if !exists || playerLogin.MemberType != user.MemberTypePlayer {
		return notFound(MsgPlayerNotFound)
	}
	if !playerLogin.IsVerified() {
		return validationFailed(MsgPlayerProfileNotVerified)
	}

	senderLogin, exists, err := s.logins.GetByUserID(ctx, senderID)
	if err != nil {
		return fmt.Errorf("get sender login: %w", err)
	}
	if !exists || !senderLogin.IsVerified() {
		return validationFailed(MsgUserProfileNotVerified)
	}
	return nil
}

func (s *ReportCardService) ensureCanView(ctx context.Context, principal user.Principal, card reportcard.ReportCard) error {
	if principal.UserID == card.SendTo || principal.UserID == card.SentBy {
		return nil
	}
	if principal.MemberType.IsOrganisation() {
		_, linked, err := s.footplayers.FindLink(ctx, principal.UserID, card.SendTo)
		if err != nil {
			return fmt.Errorf("find footplayer link: %w", err)
		}
		if linked {
			return nil
		}
	}
	return validationFailed(MsgNotAllowedToViewCard)
}

func (s *ReportCardService) notifyPublished(ctx context.Context, card reportcard.ReportCard) {
	profile, ok, err := s.players.GetByUserID(ctx, card.SendTo)
	if err != nil || !ok {
		s.logger.WarnContext(ctx, "skip report card notification: player profile unavailable", "report_card_id", card.ID, "error", err)
		return
	}
	club, ok, err := s.clubs.GetByUserID(ctx, card.SentBy)
	if err != nil || !ok {
		s.logger.WarnContext(ctx, "skip report card notification: club profile unavailable", "report_card_id", card.ID, "error", err)
		return
	}

	publishedAt := s.now().UTC()
	if card.PublishedAt != nil {
		publishedAt = *card.PublishedAt
	}
	s.email.ReportCardAdded(ctx, profile.Email, profile.FirstName, club.Name, publishedAt)

	if err := s.events.Publish(ctx, EventReportCardPublished, map[string]any{
		"report_card_id": card.ID,
		"sent_by":        card.SentBy,
		"send_to":        card.SendTo,
		"published_at":   publishedAt.Format(time.DateOnly),
	}); err != nil {
		s.logger.WarnContext(ctx, "publish report card event failed", "report_card_id", card.ID, "error", err)
	}
}
