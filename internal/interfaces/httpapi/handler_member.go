package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/usecase"
)

type reviewProfileRequest struct {
	Status  string `json:"status" validate:"required,oneof=verified disapproved"`
	Remarks string `json:"remarks" validate:"required_if=Status disapproved"`
}

type reviewDocumentRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved disapproved"`
	Remarks string `json:"remarks" validate:"required_if=Status disapproved"`
}

type directoryEntryDTO struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Type     string `json:"type"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

type playersCountDTO struct {
	Grassroot    int `json:"grassroot"`
	Professional int `json:"professional"`
	Amateur      int `json:"amateur"`
}

type playerDirectoryDTO struct {
	Total        int                 `json:"total"`
	Records      []directoryEntryDTO `json:"records"`
	PlayersCount playersCountDTO     `json:"players_count"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListPlayers")
	defer span.End()

	params, err := pagingFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.members.ListPlayers(ctx, player.DirectoryFilter{
		Params: params,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		h.fail(ctx, w, "list players failed", err)
		return
	}

	records := make([]directoryEntryDTO, 0, len(page.Records))
	for _, e := range page.Records {
		records = append(records, directoryEntryDTO{
			UserID:   e.UserID,
			Name:     e.Name,
			Position: e.Position,
			Type:     string(e.Type),
			Email:    e.Email,
			Status:   e.Status,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, playerDirectoryDTO{
		Total:   page.Total,
		Records: records,
		PlayersCount: playersCountDTO{
			Grassroot:    page.PlayersCount.Grassroot,
			Professional: page.PlayersCount.Professional,
			Amateur:      page.PlayersCount.Amateur,
		},
	})
}

func (h *Handler) ReviewProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ReviewProfile")
	defer span.End()

	userID := r.PathValue("user_id")
	var req reviewProfileRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	login, err := h.members.ReviewProfile(ctx, userID, usecase.ReviewInput{
		Approved: req.Status == "verified",
		Remarks:  req.Remarks,
	})
	if err != nil {
		h.fail(ctx, w, "review profile failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, loginToDTO(login))
}

func (h *Handler) ReviewDocument(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ReviewDocument")
	defer span.End()

	userID := r.PathValue("user_id")
	var req reviewDocumentRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.members.ReviewDocument(ctx, userID, usecase.ReviewInput{
		Approved: req.Status == "approved",
		Remarks:  req.Remarks,
	})
	if err != nil {
		h.fail(ctx, w, "review document failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubAcademyToDTO(profile))
}
