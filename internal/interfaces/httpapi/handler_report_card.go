package httpapi

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/footmate/internal/domain/reportcard"
	"github.com/riskibarqy/footmate/internal/usecase"
)

// abilitiesPayload accepts the abilities either as a JSON array or as a
// string holding one, which is how form clients send it.
type abilitiesPayload string

func (a *abilitiesPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = abilitiesPayload(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	*a = abilitiesPayload(data)
	return nil
}

type reportCardRequest struct {
	SendTo    string           `json:"send_to"`
	Status    string           `json:"status"`
	Remarks   string           `json:"remarks" validate:"omitempty,max=2000"`
	Abilities abilitiesPayload `json:"abilities"`
}

type attributeScoreDTO struct {
	AttributeID   string `json:"attribute_id"`
	AttributeName string `json:"attribute_name"`
	Score         int    `json:"attribute_score"`
}

type abilityScoreDTO struct {
	AbilityID   string              `json:"ability_id"`
	AbilityName string              `json:"ability_name"`
	Attributes  []attributeScoreDTO `json:"attributes"`
}

type reportCardDTO struct {
	ID          string            `json:"id"`
	SentBy      string            `json:"sent_by"`
	SendTo      string            `json:"send_to"`
	Status      string            `json:"status"`
	Remarks     string            `json:"remarks"`
	Abilities   []abilityScoreDTO `json:"abilities"`
	PublishedAt string            `json:"published_at,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

type reportCardViewDTO struct {
	reportCardDTO
	PlayerName string `json:"player_name"`
	AuthorName string `json:"created_by"`
	AuthorType string `json:"created_by_type"`
}

type managedRowDTO struct {
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Category         string `json:"category"`
	AvatarURL        string `json:"avatar_url,omitempty"`
	TotalReportCards int    `json:"total_report_card"`
	Status           string `json:"status"`
	DraftID          string `json:"draft_id,omitempty"`
	PublishedAt      string `json:"published_at,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

type playerRowDTO struct {
	ID          string `json:"id"`
	SentBy      string `json:"sent_by"`
	Name        string `json:"name"`
	CreatedBy   string `json:"created_by"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type managedPlayerRowDTO struct {
	ID          string `json:"id"`
	SentBy      string `json:"sent_by"`
	Status      string `json:"status"`
	CreatedBy   string `json:"created_by"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type pageDTO[T any] struct {
	Total   int `json:"total"`
	Records []T `json:"records"`
}

type managedPlayerPageDTO struct {
	Total      int                   `json:"total"`
	DraftID    string                `json:"draft_id,omitempty"`
	PlayerName string                `json:"player_name"`
	Records    []managedPlayerRowDTO `json:"records"`
}

func (h *Handler) CreateReportCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "CreateReportCard")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	var req reportCardRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	card, err := h.reportCards.Create(ctx, req.toInput(principal.UserID))
	if err != nil {
		h.fail(ctx, w, "create report card failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, reportCardToDTO(card))
}

func (h *Handler) EditReportCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "EditReportCard")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	var req reportCardRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	card, err := h.reportCards.Edit(ctx, usecase.EditReportCardInput{
		SaveReportCardInput: req.toInput(principal.UserID),
		ReportCardID:        id,
	})
	if err != nil {
		h.fail(ctx, w, "edit report card failed", err, "report_card_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, reportCardToDTO(card))
}

func (h *Handler) GetReportCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetReportCard")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	view, err := h.reportCards.View(ctx, principal, id)
	if err != nil {
		h.fail(ctx, w, "view report card failed", err, "report_card_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, reportCardViewDTO{
		reportCardDTO: reportCardToDTO(view.Card),
		PlayerName:    view.PlayerName,
		AuthorName:    view.AuthorName,
		AuthorType:    string(view.AuthorType),
	})
}

func (h *Handler) ListManagedReportCards(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListManagedReportCards")
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
	q := r.URL.Query()
	from, err := queryDate(q.Get("from"), "from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := queryDate(q.Get("to"), "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.reportCards.ListManaged(ctx, reportcard.ManagedFilter{
		Params:         params,
		SentBy:         principal.UserID,
		From:           from,
		To:             to,
		PlayerCategory: queryCSV(q.Get("player_category")),
		Status:         queryCSV(q.Get("status")),
		Search:         strings.TrimSpace(q.Get("search")),
	})
	if err != nil {
		h.fail(ctx, w, "list managed report cards failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, pageDTO[managedRowDTO]{
		Total: page.Total,
		Records: mapSlice(page.Records, func(row reportcard.ManagedRow) managedRowDTO {
			return managedRowDTO{
				UserID:           row.UserID,
				Name:             row.Name,
				FirstName:        row.FirstName,
				LastName:         row.LastName,
				Category:         row.Category,
				AvatarURL:        row.AvatarURL,
				TotalReportCards: row.TotalReportCards,
				Status:           row.Status,
				DraftID:          row.DraftID,
				PublishedAt:      formatTimestamp(row.PublishedAt),
				CreatedAt:        formatTimestamp(row.CreatedAt),
			}
		}),
	})
}

func (h *Handler) ListManagedPlayerReportCards(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListManagedPlayerReportCards")
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
	playerID := r.PathValue("player_id")
	page, err := h.reportCards.ListManagedForPlayer(ctx, reportcard.ManagedPlayerFilter{
		Params:   params,
		SentBy:   principal.UserID,
		PlayerID: playerID,
	})
	if err != nil {
		h.fail(ctx, w, "list player report cards failed", err, "player_id", playerID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, managedPlayerPageDTO{
		Total:      page.Total,
		DraftID:    page.DraftID,
		PlayerName: page.PlayerName,
		Records: mapSlice(page.Records, func(row reportcard.ManagedPlayerRow) managedPlayerRowDTO {
			return managedPlayerRowDTO{
				ID:          row.ID,
				SentBy:      row.SentBy,
				Status:      string(row.Status),
				CreatedBy:   row.CreatedBy,
				PublishedAt: formatTimestamp(row.PublishedAt),
				CreatedAt:   formatTimestamp(&row.CreatedAt),
			}
		}),
	})
}

func (h *Handler) ListPlayerReportCards(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListPlayerReportCards")
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
	q := r.URL.Query()
	from, err := queryDate(q.Get("from"), "from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := queryDate(q.Get("to"), "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.reportCards.ListForPlayer(ctx, reportcard.PlayerFilter{
		Params:    params,
		SendTo:    principal.UserID,
		From:      from,
		To:        to,
		Name:      queryCSV(q.Get("name")),
		CreatedBy: queryCSV(q.Get("created_by")),
		Search:    strings.TrimSpace(q.Get("search")),
	})
	if err != nil {
		h.fail(ctx, w, "list report cards for player failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, pageDTO[playerRowDTO]{
		Total: page.Total,
		Records: mapSlice(page.Records, func(row reportcard.PlayerRow) playerRowDTO {
			return playerRowDTO{
				ID:          row.ID,
				SentBy:      row.SentBy,
				Name:        row.Name,
				CreatedBy:   row.CreatedBy,
				PublishedAt: formatTimestamp(row.PublishedAt),
				CreatedAt:   formatTimestamp(&row.CreatedAt),
			}
		}),
	})
}

func (r reportCardRequest) toInput(senderID string) usecase.SaveReportCardInput {
	return usecase.SaveReportCardInput{
		SenderID:  senderID,
		SendTo:    strings.TrimSpace(r.SendTo),
		Status:    r.Status,
		Remarks:   r.Remarks,
		Abilities: string(r.Abilities),
	}
}

func reportCardToDTO(card reportcard.ReportCard) reportCardDTO {
	return reportCardDTO{
		ID:      card.ID,
		SentBy:  card.SentBy,
		SendTo:  card.SendTo,
		Status:  string(card.Status),
		Remarks: card.Remarks,
		Abilities: mapSlice(card.Abilities, func(a reportcard.AbilityScore) abilityScoreDTO {
			return abilityScoreDTO{
				AbilityID:   a.AbilityID,
				AbilityName: a.AbilityName,
				Attributes: mapSlice(a.Attributes, func(attr reportcard.AttributeScore) attributeScoreDTO {
					return attributeScoreDTO{
						AttributeID:   attr.AttributeID,
						AttributeName: attr.AttributeName,
						Score:         attr.Score,
					}
				}),
			}
		}),
		PublishedAt: formatTimestamp(card.PublishedAt),
		CreatedAt:   card.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   card.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
