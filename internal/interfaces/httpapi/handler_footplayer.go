package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/footplayer"
)

type footplayerRequestBody struct {
	UserID string `json:"user_id" validate:"required"`
}

type footplayerInviteBody struct {
	Email string `json:"email" validate:"required,email"`
}

type footplayerRowDTO struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UserID     string `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Position   string `json:"position"`
	PlayerType string `json:"player_type"`
}

type footplayerPageDTO struct {
	Total   int                `json:"total"`
	Records []footplayerRowDTO `json:"records"`
}

type footplayerRequestDTO struct {
	ID        string `json:"id"`
	SentBy    string `json:"sent_by"`
	SendTo    string `json:"send_to"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) ListFootplayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListFootplayers")
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
	page, err := h.footplayers.ListAll(ctx, footplayer.ListFilter{
		Params: params,
		SentBy: principal.UserID,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		h.fail(ctx, w, "list footplayers failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, footplayerPageDTO{
		Total: page.Total,
		Records: mapSlice(page.Records, func(row footplayer.ListRow) footplayerRowDTO {
			return footplayerRowDTO{
				ID:         row.ID,
				Status:     string(row.Status),
				UserID:     row.UserID,
				FirstName:  row.FirstName,
				LastName:   row.LastName,
				Name:       row.FullName,
				Email:      row.Email,
				Phone:      row.Phone,
				AvatarURL:  row.AvatarURL,
				Position:   row.Position,
				PlayerType: row.PlayerType,
			}
		}),
	})
}

func (h *Handler) SendFootplayerRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "SendFootplayerRequest")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	var req footplayerRequestBody
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.footplayers.SendRequest(ctx, principal, req.UserID)
	if err != nil {
		h.fail(ctx, w, "send footplayer request failed", err, "player_id", req.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, footplayerRequestDTO{
		ID:        item.ID,
		SentBy:    item.SentBy,
		SendTo:    item.SendTo.UserID,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) InviteFootplayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "InviteFootplayer")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	var req footplayerInviteBody
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.footplayers.Invite(ctx, principal, req.Email); err != nil {
		h.fail(ctx, w, "invite footplayer failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) AcceptFootplayerRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "AcceptFootplayerRequest")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := h.footplayers.Accept(ctx, principal, id); err != nil {
		h.fail(ctx, w, "accept footplayer request failed", err, "request_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) RejectFootplayerRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "RejectFootplayerRequest")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := h.footplayers.Reject(ctx, principal, id); err != nil {
		h.fail(ctx, w, "reject footplayer request failed", err, "request_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) DeleteFootplayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "DeleteFootplayer")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := h.footplayers.DeleteRequest(ctx, principal, id); err != nil {
		h.fail(ctx, w, "delete footplayer failed", err, "request_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, nil)
}
