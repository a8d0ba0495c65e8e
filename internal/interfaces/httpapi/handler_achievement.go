package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/achievement"
	"github.com/riskibarqy/footmate/internal/usecase"
)

type achievementRequest struct {
	Type     string `json:"type" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=200"`
	Year     *int   `json:"year" validate:"omitempty,min=1900,max=3000"`
	Position string `json:"position" validate:"omitempty,max=100"`
}

func (r achievementRequest) toInput(media *usecase.MediaUpload) usecase.AchievementInput {
	return usecase.AchievementInput{
		Type:     r.Type,
		Name:     r.Name,
		Year:     r.Year,
		Position: r.Position,
		Media:    media,
	}
}

type achievementDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Year      int    `json:"year,omitempty"`
	Position  string `json:"position,omitempty"`
	MediaURL  string `json:"media_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

type achievementStatsDTO struct {
	Achievements int `json:"achievements"`
	Tournaments  int `json:"tournaments"`
}

type achievementPageDTO struct {
	Total   int              `json:"total"`
	Records []achievementDTO `json:"records"`
}

func (h *Handler) AchievementStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "AchievementStats")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	stats, err := h.achievements.Stats(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "achievement stats failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, achievementStatsDTO{
		Achievements: stats.Achievements,
		Tournaments:  stats.Tournaments,
	})
}

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListAchievements")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	params, err := pagingFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := h.achievements.List(ctx, achievement.ListFilter{Params: params, UserID: principal.UserID})
	if err != nil {
		h.fail(ctx, w, "list achievements failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, achievementPageDTO{
		Total:   page.Total,
		Records: mapSlice(page.Records, achievementToDTO),
	})
}

func (h *Handler) AddAchievement(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "AddAchievement")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	var req achievementRequest
	media, err := h.decodeWithFile(ctx, r, &req, "media")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.achievements.Add(ctx, principal.UserID, req.toInput(media))
	if err != nil {
		h.fail(ctx, w, "add achievement failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, achievementToDTO(item))
}

func (h *Handler) EditAchievement(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "EditAchievement")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	var req achievementRequest
	media, err := h.decodeWithFile(ctx, r, &req, "media")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.achievements.Edit(ctx, principal.UserID, id, req.toInput(media))
	if err != nil {
		h.fail(ctx, w, "edit achievement failed", err, "achievement_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, achievementToDTO(item))
}

func (h *Handler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "DeleteAchievement")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := h.achievements.Delete(ctx, principal.UserID, id); err != nil {
		h.fail(ctx, w, "delete achievement failed", err, "achievement_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, nil)
}

func achievementToDTO(a achievement.Achievement) achievementDTO {
	return achievementDTO{
		ID:        a.ID,
		UserID:    a.UserID,
		Type:      a.Type,
		Name:      a.Name,
		Year:      a.Year,
		Position:  a.Position,
		MediaURL:  a.MediaURL,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
