package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

const minSearchLength = 3

type PlayerDirectoryPage struct {
	Total        int
	Records      []player.DirectoryEntry
	PlayersCount player.TypeCounts
}

// ProfileView is a login with exactly one of its profile variants set.
type ProfileView struct {
	Login       user.Login
	Player      *player.Profile
	ClubAcademy *clubacademy.Profile
}

// DetailsUpdate is the member-type specific profile edit payload.
type DetailsUpdate interface {
	detailsMemberType() user.MemberType
}

type PlayerDetails struct {
	FirstName      string
	LastName       string
	PlayerType     player.Type
	DOB            *time.Time
	Phone          string
	Positions      []player.Position
	StrongFoot     player.StrongFoot
	WeakFoot       int
	Height         player.Height
	Weight         int
	City           string
	State          string
	Country        string
	School         string
	College        string
	University     string
	FormerClub     string
	HeadCoachName  string
	HeadCoachEmail string
	HeadCoachPhone string
	Bio            string
	Avatar         *MediaUpload
}

func (PlayerDetails) detailsMemberType() user.MemberType {
	return user.MemberTypePlayer
}

type DocumentInput struct {
	Type   clubacademy.DocumentType
	Number string
}

type ClubAcademyDetails struct {
	Name           string
	ShortName      string
	Phone          string
	FoundedIn      int
	Type           clubacademy.Type
	Document       *DocumentInput
	Address        string
	Pincode        string
	City           string
	State          string
	Country        string
	StadiumName    string
	League         string
	Association    string
	HeadCoachName  string
	HeadCoachEmail string
	HeadCoachPhone string
	ContactPerson  string
	Bio            string
	Avatar         *MediaUpload
}

func (ClubAcademyDetails) detailsMemberType() user.MemberType {
	return ""
}

type ReviewInput struct {
	Approved bool
	Remarks  string
}

type MemberDeps struct {
	Logins    user.Repository
	Players   player.Repository
	Directory player.DirectoryRepository
	Clubs     clubacademy.Repository
	Media     MediaStore
	Email     *EmailService
	Logger    *logging.Logger
}

type MemberService struct {
	logins    user.Repository
	players   player.Repository
	directory player.DirectoryRepository
	clubs     clubacademy.Repository
	media     MediaStore
	email     *EmailService
	logger    *logging.Logger
	now       func() time.Time
}

func NewMemberService(deps MemberDeps) *MemberService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &MemberService{
		logins:    deps.Logins,
		players:   deps.Players,
		directory: deps.Directory,
		clubs:     deps.Clubs,
		media:     deps.Media,
		email:     deps.Email,
		logger:    logger,
		now:       time.Now,
	}
}

// ListPlayers pages the player directory and counts players per type.
func (s *MemberService) ListPlayers(ctx context.Context, filter player.DirectoryFilter) (PlayerDirectoryPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.ListPlayers")
	defer span.End()

	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Search != "" && utf8.RuneCountInString(filter.Search) < minSearchLength {
		return PlayerDirectoryPage{}, validationFailed(fmt.Sprintf("search must be at least %d characters", minSearchLength))
	}
	filter.Params = filter.Params.WithDefaults(defaultPageSize, "name", 1)

	var out PlayerDirectoryPage
	err := runParallel(ctx,
		func(ctx context.Context) error {
			rows, err := s.directory.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("list players: %w", err)
			}
			out.Records = rows
			return nil
		},
		func(ctx context.Context) error {
			total, err := s.directory.Count(ctx, filter)
			if err != nil {
				return fmt.Errorf("count players: %w", err)
			}
			out.Total = total
			return nil
		},
		func(ctx context.Context) error {
			counts, err := s.directory.CountByType(ctx)
			if err != nil {
				return fmt.Errorf("count players by type: %w", err)
			}
			out.PlayersCount = counts
			return nil
		},
	)
	if err != nil {
		return PlayerDirectoryPage{}, err
	}
	return out, nil
}

func (s *MemberService) Profile(ctx context.Context, userID string) (ProfileView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.Profile")
	defer span.End()

	login, exists, err := s.logins.GetByUserID(ctx, userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("get login: %w", err)
	}
	if !exists {
		return ProfileView{}, notFound(MsgUserNotFound)
	}

	view := ProfileView{Login: login}
	if login.MemberType == user.MemberTypePlayer {
		p, ok, err := s.players.GetByUserID(ctx, userID)
		if err != nil {
			return ProfileView{}, fmt.Errorf("get player profile: %w", err)
		}
		if ok {
			view.Player = &p
		}
		return view, nil
	}
	c, ok, err := s.clubs.GetByUserID(ctx, userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("get club profile: %w", err)
	}
	if ok {
		view.ClubAcademy = &c
	}
	return view, nil
}

// UpdateDetails applies the profile variant matching the caller's member type.
func (s *MemberService) UpdateDetails(ctx context.Context, principal user.Principal, update DetailsUpdate) (ProfileView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.UpdateDetails")
	defer span.End()

	switch u := update.(type) {
	case PlayerDetails:
		if principal.MemberType != user.MemberTypePlayer {
			return ProfileView{}, badRequest(MsgInvalidMemberType)
		}
		if err := s.updatePlayer(ctx, principal.UserID, u); err != nil {
			return ProfileView{}, err
		}
	case ClubAcademyDetails:
		if !principal.MemberType.IsOrganisation() {
			return ProfileView{}, badRequest(MsgInvalidMemberType)
		}
		if err := s.updateClubAcademy(ctx, principal.UserID, u); err != nil {
			return ProfileView{}, err
		}
	default:
		return ProfileView{}, badRequest(MsgInvalidMemberType)
	}
	return s.Profile(ctx, principal.UserID)
}

func (s *MemberService) updatePlayer(ctx context.Context, userID string, u PlayerDetails) error {
	existing, exists, err := s.players.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get player profile: %w", err)
	}
	if !exists {
		return notFound(MsgPlayerNotFound)
	}

	p := existing
	p.FirstName = strings.TrimSpace(u.FirstName)
	p.LastName = strings.TrimSpace(u.LastName)
	p.PlayerType = u.PlayerType
	p.DOB = u.DOB
	p.Phone = strings.TrimSpace(u.Phone)
	p.Positions = u.Positions
	p.StrongFoot = u.StrongFoot
	p.WeakFoot = u.WeakFoot
	p.Height = u.Height
	p.Weight = u.Weight
	p.City = strings.TrimSpace(u.City)
	p.State = strings.TrimSpace(u.State)
	p.Country = strings.TrimSpace(u.Country)
	p.School = strings.TrimSpace(u.School)
	p.College = strings.TrimSpace(u.College)
	p.University = strings.TrimSpace(u.University)
	p.FormerClub = strings.TrimSpace(u.FormerClub)
	p.HeadCoachName = strings.TrimSpace(u.HeadCoachName)
	p.HeadCoachEmail = strings.TrimSpace(u.HeadCoachEmail)
	p.HeadCoachPhone = strings.TrimSpace(u.HeadCoachPhone)
	p.Bio = strings.TrimSpace(u.Bio)
	p.UpdatedAt = s.now().UTC()
	if err := p.Validate(); err != nil {
		return validationFailed(err.Error())
	}
	if u.Avatar != nil {
		url, err := s.uploadAvatar(ctx, userID, u.Avatar)
		if err != nil {
			return err
		}
		p.AvatarURL = url
	}
	if err := s.players.Update(ctx, p); err != nil {
		return fmt.Errorf("update player profile: %w", err)
	}
	return nil
}

func (s *MemberService) updateClubAcademy(ctx context.Context, userID string, u ClubAcademyDetails) error {
	existing, exists, err := s.clubs.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get club profile: %w", err)
	}
	if !exists {
		return notFound(MsgUserNotFound)
	}

	c := existing
	c.Name = strings.TrimSpace(u.Name)
	c.ShortName = strings.TrimSpace(u.ShortName)
	c.Phone = strings.TrimSpace(u.Phone)
	c.FoundedIn = u.FoundedIn
	c.Type = u.Type
	c.Address = strings.TrimSpace(u.Address)
	c.Pincode = strings.TrimSpace(u.Pincode)
	c.City = strings.TrimSpace(u.City)
	c.State = strings.TrimSpace(u.State)
	c.Country = strings.TrimSpace(u.Country)
	c.StadiumName = strings.TrimSpace(u.StadiumName)
	c.League = strings.TrimSpace(u.League)
	c.Association = strings.TrimSpace(u.Association)
	c.HeadCoachName = strings.TrimSpace(u.HeadCoachName)
	c.HeadCoachEmail = strings.TrimSpace(u.HeadCoachEmail)
	c.HeadCoachPhone = strings.TrimSpace(u.HeadCoachPhone)
	c.ContactPerson = strings.TrimSpace(u.ContactPerson)
	c.Bio = strings.TrimSpace(u.Bio)
	c.UpdatedAt = s.now().UTC()
	if u.Document != nil {
		number := strings.TrimSpace(u.Document.Number)
		if c.Document == nil || c.Document.Type != u.Document.Type || c.Document.Number != number {
			c.Document = &clubacademy.Document{
				Type:   u.Document.Type,
				Number: number,
				Status: clubacademy.DocumentPending,
			}
		}
	}
	if err := c.Validate(s.now()); err != nil {
		return validationFailed(err.Error())
	}
	if u.Avatar != nil {
		url, err := s.uploadAvatar(ctx, userID, u.Avatar)
		if err != nil {
			return err
		}
		c.AvatarURL = url
	}
	if err := s.clubs.Update(ctx, c); err != nil {
		return fmt.Errorf("update club profile: %w", err)
	}
	return nil
}

// ReviewProfile verifies or disapproves a member profile.
func (s *MemberService) ReviewProfile(ctx context.Context, userID string, input ReviewInput) (user.Login, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.ReviewProfile")
	defer span.End()

	remarks := strings.TrimSpace(input.Remarks)
	if !input.Approved && remarks == "" {
		return user.Login{}, validationFailed("remarks is required when disapproving")
	}
	login, exists, err := s.logins.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return user.Login{}, fmt.Errorf("get login: %w", err)
	}
	if !exists {
		return user.Login{}, notFound(MsgUserNotFound)
	}

	login.ProfileStatus = user.ProfileDisapproved
	login.ProfileRemarks = remarks
	if input.Approved {
		login.ProfileStatus = user.ProfileVerified
		login.ProfileRemarks = ""
	}
	login.UpdatedAt = s.now().UTC()
	if err := s.logins.Update(ctx, login); err != nil {
		return user.Login{}, fmt.Errorf("update profile status: %w", err)
	}

	name := memberDisplayName(ctx, s.players, s.clubs, login)
	if input.Approved {
		s.email.ProfileVerified(ctx, login.Username, name)
	} else {
		s.email.ProfileDisapproved(ctx, login.Username, name, remarks)
	}
	s.logger.InfoContext(ctx, "member profile reviewed", "user_id", login.UserID, "status", string(login.ProfileStatus))
	return login, nil
}

// ReviewDocument approves or disapproves a club/academy registration document.
func (s *MemberService) ReviewDocument(ctx context.Context, userID string, input ReviewInput) (clubacademy.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.ReviewDocument")
	defer span.End()

	remarks := strings.TrimSpace(input.Remarks)
	if !input.Approved && remarks == "" {
		return clubacademy.Profile{}, validationFailed("remarks is required when disapproving")
	}
	profile, exists, err := s.clubs.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return clubacademy.Profile{}, fmt.Errorf("get club profile: %w", err)
	}
	if !exists || profile.Document == nil {
		return clubacademy.Profile{}, notFound(MsgDocumentNotFound)
	}

	doc := *profile.Document
	doc.Status = clubacademy.DocumentDisapproved
	doc.Remarks = remarks
	if input.Approved {
		doc.Status = clubacademy.DocumentApproved
		doc.Remarks = ""
	}
	profile.Document = &doc
	profile.UpdatedAt = s.now().UTC()
	if err := s.clubs.Update(ctx, profile); err != nil {
		return clubacademy.Profile{}, fmt.Errorf("update document status: %w", err)
	}

	docType := strings.ToUpper(string(doc.Type))
	if input.Approved {
		s.email.DocumentApproval(ctx, profile.Email, profile.Name, docType)
	} else {
		s.email.DocumentDisapproval(ctx, profile.Email, profile.Name, docType, remarks)
	}
	return profile, nil
}

func memberDisplayName(ctx context.Context, players player.Repository, clubs clubacademy.Repository, login user.Login) string {
	if login.MemberType == user.MemberTypePlayer {
		p, ok, err := players.GetByUserID(ctx, login.UserID)
		if err != nil || !ok {
			return ""
		}
		return p.FullName()
	}
	c, ok, err := clubs.GetByUserID(ctx, login.UserID)
	if err != nil || !ok {
		return ""
	}
	return c.Name
}

func (s *MemberService) uploadAvatar(ctx context.Context, userID string, media *MediaUpload) (string, error) {
	if s.media == nil {
		return "", badRequest("media upload is not enabled")
	}
	key := path.Join("avatars", userID+strings.ToLower(path.Ext(media.Filename)))
	url, err := s.media.Upload(ctx, key, media.Body, media.Size, media.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return url, nil
}
