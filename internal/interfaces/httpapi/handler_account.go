package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/usecase"
)

type registerRequest struct {
	MemberType string `json:"member_type" validate:"required,oneof=player club academy"`
	FirstName  string `json:"first_name" validate:"required_if=MemberType player,omitempty,member_name"`
	LastName   string `json:"last_name" validate:"required_if=MemberType player,omitempty,member_name"`
	Name       string `json:"name" validate:"required_unless=MemberType player,omitempty,member_name"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,phone10"`
	State      string `json:"state" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

func (r registerRequest) toRegistration() usecase.Registration {
	if user.MemberType(r.MemberType) == user.MemberTypePlayer {
		return usecase.PlayerRegistration{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
			State:     r.State,
			Country:   r.Country,
		}
	}
	return usecase.ClubAcademyRegistration{
		MemberType: user.MemberType(r.MemberType),
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		State:      r.State,
		Country:    r.Country,
	}
}

type tokenPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,nefield=OldPassword"`
}

type positionRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Priority int    `json:"priority" validate:"required,min=1,max=3"`
}

type playerDetailsRequest struct {
	FirstName      string            `json:"first_name" validate:"required,max=500,member_name"`
	LastName       string            `json:"last_name" validate:"required,max=500,member_name"`
	PlayerType     string            `json:"player_type" validate:"required,oneof=grassroot professional amateur"`
	DOB            string            `json:"dob" validate:"required"`
	Phone          string            `json:"phone" validate:"omitempty,phone10"`
	Positions      []positionRequest `json:"position" validate:"required,min=1,max=3,dive"`
	StrongFoot     string            `json:"strong_foot" validate:"required,oneof=left right"`
	WeakFoot       int               `json:"weak_foot" validate:"omitempty,min=1,max=5"`
	HeightFeet     int               `json:"height_feet" validate:"omitempty,min=0"`
	HeightInches   int               `json:"height_inches" validate:"omitempty,min=0,max=11"`
	Weight         int               `json:"weight" validate:"omitempty,min=0"`
	City           string            `json:"city"`
	State          string            `json:"state" validate:"required"`
	Country        string            `json:"country" validate:"required"`
	School         string            `json:"school"`
	College        string            `json:"college"`
	University     string            `json:"university"`
	FormerClub     string            `json:"former_club"`
	HeadCoachName  string            `json:"head_coach_name"`
	HeadCoachEmail string            `json:"head_coach_email" validate:"omitempty,email"`
	HeadCoachPhone string            `json:"head_coach_phone" validate:"omitempty,phone10"`
	Bio            string            `json:"bio"`
}

type clubAcademyDetailsRequest struct {
	Name           string `json:"name" validate:"required,member_name"`
	ShortName      string `json:"short_name"`
	Phone          string `json:"phone" validate:"omitempty,phone10"`
	FoundedIn      int    `json:"founded_in" validate:"required,min=1"`
	Type           string `json:"type" validate:"required,oneof=residential non-residential"`
	DocumentType   string `json:"document_type" validate:"omitempty,oneof=pan coi tin"`
	Number         string `json:"number" validate:"required_with=DocumentType"`
	Address        string `json:"address"`
	Pincode        string `json:"pincode"`
	City           string `json:"city" validate:"required"`
	State          string `json:"state"`
	Country        string `json:"country" validate:"required"`
	StadiumName    string `json:"stadium_name"`
	League         string `json:"league"`
	Association    string `json:"association"`
	HeadCoachName  string `json:"head_coach_name"`
	HeadCoachEmail string `json:"head_coach_email" validate:"omitempty,email"`
	HeadCoachPhone string `json:"head_coach_phone" validate:"omitempty,phone10"`
	ContactPerson  string `json:"contact_person"`
	Bio            string `json:"bio"`
}

type loginUserDTO struct {
	UserID           string `json:"user_id"`
	Email            string `json:"email"`
	MemberType       string `json:"member_type"`
	Role             string `json:"role"`
	Status           string `json:"status"`
	ProfileStatus    string `json:"profile_status"`
	ProfileRemarks   string `json:"profile_remarks,omitempty"`
	IsEmailVerified  bool   `json:"is_email_verified"`
	IsFirstTimeLogin bool   `json:"is_first_time_login"`
}

type loginResponseDTO struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      loginUserDTO `json:"user"`
}

type positionDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

type playerProfileDTO struct {
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	PlayerType     string        `json:"player_type"`
	DOB            string        `json:"dob,omitempty"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	Avatar         string        `json:"avatar_url,omitempty"`
	Positions      []positionDTO `json:"position"`
	StrongFoot     string        `json:"strong_foot"`
	WeakFoot       int           `json:"weak_foot"`
	HeightFeet     int           `json:"height_feet"`
	HeightInches   int           `json:"height_inches"`
	Weight         int           `json:"weight"`
	City           string        `json:"city"`
	State          string        `json:"state"`
	Country        string        `json:"country"`
	School         string        `json:"school"`
	College        string        `json:"college"`
	University     string        `json:"university"`
	FormerClub     string        `json:"former_club"`
	HeadCoachName  string        `json:"head_coach_name"`
	HeadCoachEmail string        `json:"head_coach_email"`
	HeadCoachPhone string        `json:"head_coach_phone"`
	Bio            string        `json:"bio"`
}

type documentDTO struct {
	Type    string `json:"type"`
	Number  string `json:"number"`
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
}

type clubAcademyProfileDTO struct {
	Name           string       `json:"name"`
	ShortName      string       `json:"short_name"`
	MemberType     string       `json:"member_type"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	FoundedIn      int          `json:"founded_in"`
	Type           string       `json:"type"`
	Document       *documentDTO `json:"document,omitempty"`
	Address        string       `json:"address"`
	Pincode        string       `json:"pincode"`
	City           string       `json:"city"`
	State          string       `json:"state"`
	Country        string       `json:"country"`
	StadiumName    string       `json:"stadium_name"`
	League         string       `json:"league"`
	Association    string       `json:"association"`
	HeadCoachName  string       `json:"head_coach_name"`
	HeadCoachEmail string       `json:"head_coach_email"`
	HeadCoachPhone string       `json:"head_coach_phone"`
	ContactPerson  string       `json:"contact_person"`
	Avatar         string       `json:"avatar_url,omitempty"`
	Bio            string       `json:"bio"`
}

type profileDTO struct {
	loginUserDTO
	Player      *playerProfileDTO      `json:"player,omitempty"`
	ClubAcademy *clubAcademyProfileDTO `json:"club_academy,omitempty"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "Register")
	defer span.End()

	var req registerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	login, err := h.accounts.Register(ctx, req.toRegistration())
	if err != nil {
		h.fail(ctx, w, "register member failed", err, "member_type", req.MemberType)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, loginToDTO(login))
}

func (h *Handler) CreatePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "CreatePassword")
	defer span.End()

	var req tokenPasswordRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.accounts.CreatePassword(ctx, req.Token, req.Password); err != nil {
		h.fail(ctx, w, "create password failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.fail(ctx, w, "login failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, loginResponseDTO{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      loginToDTO(result.Login),
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ForgotPassword")
	defer span.End()

	var req forgotPasswordRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.accounts.ForgotPassword(ctx, req.Email); err != nil {
		h.fail(ctx, w, "forgot password failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ResetPassword")
	defer span.End()

	var req tokenPasswordRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.accounts.ResetPassword(ctx, req.Token, req.Password); err != nil {
		h.fail(ctx, w, "reset password failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ChangePassword")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.accounts.ChangePassword(ctx, principal, req.OldPassword, req.NewPassword); err != nil {
		h.fail(ctx, w, "change password failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "Profile")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	view, err := h.members.Profile(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "get profile failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(view))
}

func (h *Handler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "UpdateDetails")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	var update usecase.DetailsUpdate
	if principal.MemberType == user.MemberTypePlayer {
		var req playerDetailsRequest
		avatar, err := h.decodeWithFile(ctx, r, &req, "avatar")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		details, err := req.toDetails(avatar)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		update = details
	} else {
		var req clubAcademyDetailsRequest
		avatar, err := h.decodeWithFile(ctx, r, &req, "avatar")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		details, err := h.clubDetails(ctx, req, avatar)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		update = details
	}

	view, err := h.members.UpdateDetails(ctx, principal, update)
	if err != nil {
		h.fail(ctx, w, "update details failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(view))
}

func (req playerDetailsRequest) toDetails(avatar *usecase.MediaUpload) (usecase.PlayerDetails, error) {
	dob, err := queryDate(req.DOB, "dob")
	if err != nil {
		return usecase.PlayerDetails{}, err
	}
	positions := make([]player.Position, 0, len(req.Positions))
	for _, p := range req.Positions {
		positions = append(positions, player.Position{ID: p.ID, Name: p.Name, Priority: p.Priority})
	}
	return usecase.PlayerDetails{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PlayerType:     player.Type(req.PlayerType),
		DOB:            dob,
		Phone:          req.Phone,
		Positions:      positions,
		StrongFoot:     player.StrongFoot(req.StrongFoot),
		WeakFoot:       req.WeakFoot,
		Height:         player.Height{Feet: req.HeightFeet, Inches: req.HeightInches},
		Weight:         req.Weight,
		City:           req.City,
		State:          req.State,
		Country:        req.Country,
		School:         req.School,
		College:        req.College,
		University:     req.University,
		FormerClub:     req.FormerClub,
		HeadCoachName:  req.HeadCoachName,
		HeadCoachEmail: req.HeadCoachEmail,
		HeadCoachPhone: req.HeadCoachPhone,
		Bio:            req.Bio,
		Avatar:         avatar,
	}, nil
}

func (h *Handler) clubDetails(ctx context.Context, req clubAcademyDetailsRequest, avatar *usecase.MediaUpload) (usecase.ClubAcademyDetails, error) {
	var doc *usecase.DocumentInput
	if req.DocumentType != "" {
		number := strings.TrimSpace(req.Number)
		if err := h.validator.VarCtx(ctx, number, req.DocumentType); err != nil {
			return usecase.ClubAcademyDetails{}, fmt.Errorf("%w: number %s", usecase.ErrValidationFailed, tagMessages[req.DocumentType])
		}
		doc = &usecase.DocumentInput{Type: clubacademy.DocumentType(req.DocumentType), Number: number}
	}
	return usecase.ClubAcademyDetails{
		Name:           req.Name,
		ShortName:      req.ShortName,
		Phone:          req.Phone,
		FoundedIn:      req.FoundedIn,
		Type:           clubacademy.Type(req.Type),
		Document:       doc,
		Address:        req.Address,
		Pincode:        req.Pincode,
		City:           req.City,
		State:          req.State,
		Country:        req.Country,
		StadiumName:    req.StadiumName,
		League:         req.League,
		Association:    req.Association,
		HeadCoachName:  req.HeadCoachName,
		HeadCoachEmail: req.HeadCoachEmail,
		HeadCoachPhone: req.HeadCoachPhone,
		ContactPerson:  req.ContactPerson,
		Bio:            req.Bio,
		Avatar:         avatar,
	}, nil
}

func loginToDTO(l user.Login) loginUserDTO {
	return loginUserDTO{
		UserID:           l.UserID,
		Email:            l.Username,
		MemberType:       string(l.MemberType),
		Role:             string(l.Role),
		Status:           string(l.Status),
		ProfileStatus:    string(l.ProfileStatus),
		ProfileRemarks:   l.ProfileRemarks,
		IsEmailVerified:  l.IsEmailVerified,
		IsFirstTimeLogin: l.IsFirstTimeLogin,
	}
}

func profileToDTO(v usecase.ProfileView) profileDTO {
	out := profileDTO{loginUserDTO: loginToDTO(v.Login)}
	if p := v.Player; p != nil {
		positions := make([]positionDTO, 0, len(p.Positions))
		for _, pos := range p.Positions {
			positions = append(positions, positionDTO{ID: pos.ID, Name: pos.Name, Priority: pos.Priority})
		}
		out.Player = &playerProfileDTO{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PlayerType:     string(p.PlayerType),
			DOB:            formatDate(p.DOB),
			Phone:          p.Phone,
			Email:          p.Email,
			Avatar:         p.AvatarURL,
			Positions:      positions,
			StrongFoot:     string(p.StrongFoot),
			WeakFoot:       p.WeakFoot,
			HeightFeet:     p.Height.Feet,
			HeightInches:   p.Height.Inches,
			Weight:         p.Weight,
			City:           p.City,
			State:          p.State,
			Country:        p.Country,
			School:         p.School,
			College:        p.College,
			University:     p.University,
			FormerClub:     p.FormerClub,
			HeadCoachName:  p.HeadCoachName,
			HeadCoachEmail: p.HeadCoachEmail,
			HeadCoachPhone: p.HeadCoachPhone,
			Bio:            p.Bio,
		}
	}
	if c := v.ClubAcademy; c != nil {
		out.ClubAcademy = clubAcademyToDTO(*c)
	}
	return out
}

func clubAcademyToDTO(c clubacademy.Profile) *clubAcademyProfileDTO {
	dto := &clubAcademyProfileDTO{
		Name:           c.Name,
		ShortName:      c.ShortName,
		MemberType:     string(c.MemberType),
		Email:          c.Email,
		Phone:          c.Phone,
		FoundedIn:      c.FoundedIn,
		Type:           string(c.Type),
		Address:        c.Address,
		Pincode:        c.Pincode,
		City:           c.City,
		State:          c.State,
		Country:        c.Country,
		StadiumName:    c.StadiumName,
		League:         c.League,
		Association:    c.Association,
		HeadCoachName:  c.HeadCoachName,
		HeadCoachEmail: c.HeadCoachEmail,
		HeadCoachPhone: c.HeadCoachPhone,
		ContactPerson:  c.ContactPerson,
		Avatar:         c.AvatarURL,
		Bio:            c.Bio,
	}
	if d := c.Document; d != nil {
		dto.Document = &documentDTO{
			Type:    string(d.Type),
			Number:  d.Number,
			Status:  string(d.Status),
			Remarks: d.Remarks,
		}
	}
	return dto
}
