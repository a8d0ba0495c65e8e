package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/contract"
	"github.com/riskibarqy/footmate/internal/usecase"
)

type contractRequest struct {
	Category         string `json:"category" validate:"omitempty,oneof=club academy"`
	ClubAcademyName  string `json:"club_academy_name" validate:"omitempty,max=200"`
	ClubAcademyEmail string `json:"club_academy_email" validate:"omitempty,email"`
	ClubAcademyPhone string `json:"club_academy_phone" validate:"omitempty,phone10"`
	PlayerName       string `json:"player_name" validate:"omitempty,max=200"`
	PlayerEmail      string `json:"player_email" validate:"omitempty,email"`
	PlayerPhone      string `json:"player_phone" validate:"omitempty,phone10"`
	OtherName        string `json:"other_name" validate:"omitempty,max=200"`
	OtherEmail       string `json:"other_email" validate:"omitempty,email"`
	OtherPhoneNumber string `json:"other_phone_number" validate:"omitempty,phone10"`
	EffectiveDate    string `json:"effective_date" validate:"required"`
	ExpiryDate       string `json:"expiry_date" validate:"required"`
	PlaceOfSignature string `json:"place_of_signature" validate:"omitempty,max=200"`
	DateOfSigning    string `json:"date_of_signing"`
}

func (r contractRequest) toInput() (usecase.ContractInput, error) {
	effective, err := requiredDate(r.EffectiveDate, "effective_date")
	if err != nil {
		return usecase.ContractInput{}, err
	}
	expiry, err := requiredDate(r.ExpiryDate, "expiry_date")
	if err != nil {
		return usecase.ContractInput{}, err
	}
	signing, err := queryDate(r.DateOfSigning, "date_of_signing")
	if err != nil {
		return usecase.ContractInput{}, err
	}
	return usecase.ContractInput{
		Category:         r.Category,
		ClubAcademyName:  r.ClubAcademyName,
		ClubAcademyEmail: r.ClubAcademyEmail,
		ClubAcademyPhone: r.ClubAcademyPhone,
		PlayerName:       r.PlayerName,
		PlayerEmail:      r.PlayerEmail,
		PlayerPhone:      r.PlayerPhone,
		OtherName:        r.OtherName,
		OtherEmail:       r.OtherEmail,
		OtherPhoneNumber: r.OtherPhoneNumber,
		EffectiveDate:    effective,
		ExpiryDate:       expiry,
		PlaceOfSignature: r.PlaceOfSignature,
		DateOfSigning:    signing,
	}, nil
}

type contractStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=active disapproved"`
	Remarks string `json:"remarks" validate:"required_if=Status disapproved"`
}

type contractDTO struct {
	ID               string `json:"id"`
	SentBy           string `json:"sent_by"`
	SendTo           string `json:"send_to"`
	Category         string `json:"category"`
	ClubAcademyName  string `json:"club_academy_name"`
	ClubAcademyEmail string `json:"club_academy_email"`
	ClubAcademyPhone string `json:"club_academy_phone"`
	PlayerName       string `json:"player_name"`
	PlayerEmail      string `json:"player_email"`
	PlayerPhone      string `json:"player_phone"`
	OtherName        string `json:"other_name,omitempty"`
	OtherEmail       string `json:"other_email,omitempty"`
	OtherPhoneNumber string `json:"other_phone_number,omitempty"`
	EffectiveDate    string `json:"effective_date"`
	ExpiryDate       string `json:"expiry_date"`
	PlaceOfSignature string `json:"place_of_signature"`
	DateOfSigning    string `json:"date_of_signing,omitempty"`
	Status           string `json:"status"`
	Remarks          string `json:"remarks,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "CreateContract")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	input, err := h.contractInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.contracts.Create(ctx, principal, input)
	if err != nil {
		h.fail(ctx, w, "create contract failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, contractToDTO(item))
}

func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListContracts")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	items, err := h.contracts.ListMine(ctx, principal)
	if err != nil {
		h.fail(ctx, w, "list contracts failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, contractToDTO))
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetContract")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	item, err := h.contracts.Get(ctx, principal, id)
	if err != nil {
		h.fail(ctx, w, "get contract failed", err, "contract_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, contractToDTO(item))
}

func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "UpdateContract")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	input, err := h.contractInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.contracts.Update(ctx, principal, id, input)
	if err != nil {
		h.fail(ctx, w, "update contract failed", err, "contract_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, contractToDTO(item))
}

func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "DeleteContract")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := h.contracts.Delete(ctx, principal, id); err != nil {
		h.fail(ctx, w, "delete contract failed", err, "contract_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) UpdateContractStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "UpdateContractStatus")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	var req contractStatusRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.contracts.UpdateStatus(ctx, principal, usecase.UpdateContractStatusInput{
		ContractID: id,
		Status:     req.Status,
		Remarks:    req.Remarks,
	})
	if err != nil {
		h.fail(ctx, w, "update contract status failed", err, "contract_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, contractToDTO(item))
}

func (h *Handler) contractInput(ctx context.Context, r *http.Request) (usecase.ContractInput, error) {
	var req contractRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		return usecase.ContractInput{}, err
	}
	return req.toInput()
}

func requiredDate(raw, name string) (time.Time, error) {
	t, err := queryDate(raw, name)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%w: %s is required", usecase.ErrValidationFailed, name)
	}
	return *t, nil
}

func contractToDTO(c contract.EmploymentContract) contractDTO {
	return contractDTO{
		ID:               c.ID,
		SentBy:           c.SentBy,
		SendTo:           c.SendTo,
		Category:         string(c.Category),
		ClubAcademyName:  c.ClubAcademyName,
		ClubAcademyEmail: c.ClubAcademyEmail,
		ClubAcademyPhone: c.ClubAcademyPhone,
		PlayerName:       c.PlayerName,
		PlayerEmail:      c.PlayerEmail,
		PlayerPhone:      c.PlayerPhone,
		OtherName:        c.OtherName,
		OtherEmail:       c.OtherEmail,
		OtherPhoneNumber: c.OtherPhoneNumber,
		EffectiveDate:    formatDate(&c.EffectiveDate),
		ExpiryDate:       formatDate(&c.ExpiryDate),
		PlaceOfSignature: c.PlaceOfSignature,
		DateOfSigning:    formatDate(c.DateOfSigning),
		Status:           string(c.Status),
		Remarks:          c.Remarks,
		CreatedAt:        c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
