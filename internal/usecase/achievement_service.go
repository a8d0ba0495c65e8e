package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/achievement"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

// MediaUpload is an optional file attached to a write request.
type MediaUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type AchievementInput struct {
	Type     string
	Name     string
	Year     *int
	Position string
	Media    *MediaUpload
}

type AchievementPage struct {
	Total   int
	Records []achievement.Achievement
}

type AchievementService struct {
	repo   achievement.Repository
	media  MediaStore
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewAchievementService(repo achievement.Repository, media MediaStore, idGen idgen.Generator, logger *logging.Logger) *AchievementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AchievementService{
		repo:   repo,
		media:  media,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AchievementService) Stats(ctx context.Context, userID string) (achievement.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AchievementService.Stats")
	defer span.End()

	count, err := s.repo.Count(ctx, userID)
	if err != nil {
		return achievement.Stats{}, fmt.Errorf("count achievements: %w", err)
	}
	return achievement.Stats{Achievements: count}, nil
}

func (s *AchievementService) List(ctx context.Context, filter achievement.ListFilter) (AchievementPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AchievementService.List")
	defer span.End()

	filter.Params = filter.Params.WithDefaults(defaultPageSize, "year", -1)
	var out AchievementPage
	err := runParallel(ctx,
		func(ctx context.Context) error {
			items, err := s.repo.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("list achievements: %w", err)
			}
			out.Records = items
			return nil
		},
		func(ctx context.Context) error {
			total, err := s.repo.Count(ctx, filter.UserID)
			if err != nil {
				return fmt.Errorf("count achievements: %w", err)
			}
			out.Total = total
			return nil
		},
	)
	if err != nil {
		return AchievementPage{}, err
	}
	return out, nil
}

func (s *AchievementService) Add(ctx context.Context, userID string, input AchievementInput) (achievement.Achievement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AchievementService.Add")
	defer span.End()

	if err := s.validate(input); err != nil {
		return achievement.Achievement{}, err
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return achievement.Achievement{}, fmt.Errorf("generate achievement id: %w", err)
	}
	now := s.now().UTC()
	item := achievement.Achievement{
		ID:        id,
		UserID:    userID,
		Type:      strings.TrimSpace(input.Type),
		Name:      strings.TrimSpace(input.Name),
		Year:      *input.Year,
		Position:  strings.TrimSpace(input.Position),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Media != nil {
		url, err := s.upload(ctx, userID, id, input.Media)
		if err != nil {
			return achievement.Achievement{}, err
		}
		item.MediaURL = url
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return achievement.Achievement{}, fmt.Errorf("create achievement: %w", err)
	}
	return item, nil
}

func (s *AchievementService) Edit(ctx context.Context, userID, id string, input AchievementInput) (achievement.Achievement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AchievementService.Edit")
	defer span.End()

	if err := s.validate(input); err != nil {
		return achievement.Achievement{}, err
	}
	existing, exists, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return achievement.Achievement{}, fmt.Errorf("get achievement: %w", err)
	}
	if !exists || existing.UserID != userID {
		return achievement.Achievement{}, notFound(MsgAchievementNotFound)
	}

	updated := existing
	updated.Type = strings.TrimSpace(input.Type)
	updated.Name = strings.TrimSpace(input.Name)
	updated.Year = *input.Year
	updated.Position = strings.TrimSpace(input.Position)
	updated.UpdatedAt = s.now().UTC()
	if input.Media != nil {
		url, err := s.upload(ctx, userID, existing.ID, input.Media)
		if err != nil {
			return achievement.Achievement{}, err
		}
		updated.MediaURL = url
	}

	ok, err := s.repo.Update(ctx, updated)
	if err != nil {
		return achievement.Achievement{}, fmt.Errorf("update achievement: %w", err)
	}
	if !ok {
		return achievement.Achievement{}, notFound(MsgAchievementNotFound)
	}
	return updated, nil
}

func (s *AchievementService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AchievementService.Delete")
	defer span.End()

	ok, err := s.repo.SoftDelete(ctx, userID, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	if !ok {
		return notFound(MsgAchievementNotFound)
	}
	return nil
}

func (s *AchievementService) validate(input AchievementInput) error {
	if err := achievement.ValidateYear(input.Year, s.now().Year()); err != nil {
		return validationFailed(err.Error())
	}
	return nil
}

func (s *AchievementService) upload(ctx context.Context, userID, id string, media *MediaUpload) (string, error) {
	if s.media == nil {
		return "", badRequest("media upload is not enabled")
	}
	key := path.Join("achievements", userID, id+strings.ToLower(path.Ext(media.Filename)))
	url, err := s.media.Upload(ctx, key, media.Body, media.Size, media.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload achievement media: %w", err)
	}
	return url, nil
}
