package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/user"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

const minPasswordLength = 8

// Registration is the member-type specific sign-up payload. The concrete
// type is chosen once, when the request is decoded.
type Registration interface {
	registrationMemberType() user.MemberType
}

type PlayerRegistration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	State     string
	Country   string
}

func (PlayerRegistration) registrationMemberType() user.MemberType {
	return user.MemberTypePlayer
}

type ClubAcademyRegistration struct {
	MemberType user.MemberType
	Name       string
	Email      string
	Phone      string
	State      string
	Country    string
}

func (r ClubAcademyRegistration) registrationMemberType() user.MemberType {
	return r.MemberType
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Login     user.Login
}

type AccountDeps struct {
	Logins  user.Repository
	Players player.Repository
	Clubs   clubacademy.Repository
	Hasher  PasswordHasher
	Tokens  TokenIssuer
	Email   *EmailService
	IDGen   idgen.Generator
	Logger  *logging.Logger
}

// AccountService owns registration, activation and credentials.
type AccountService struct {
	logins  user.Repository
	players player.Repository
	clubs   clubacademy.Repository
	hasher  PasswordHasher
	tokens  TokenIssuer
	email   *EmailService
	idGen   idgen.Generator
	logger  *logging.Logger
	now     func() time.Time
}

func NewAccountService(deps AccountDeps) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &AccountService{
		logins:  deps.Logins,
		players: deps.Players,
		clubs:   deps.Clubs,
		hasher:  deps.Hasher,
		tokens:  deps.Tokens,
		email:   deps.Email,
		idGen:   deps.IDGen,
		logger:  logger,
		now:     time.Now,
	}
}

// Register creates an inactive login with its profile and mails the
// activation link.
func (s *AccountService) Register(ctx context.Context, reg Registration) (user.Login, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Register")
	defer span.End()

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.Login{}, fmt.Errorf("generate user id: %w", err)
	}
	token, err := s.idGen.NewID()
	if err != nil {
		return user.Login{}, fmt.Errorf("generate activation token: %w", err)
	}
	now := s.now().UTC()

	var (
		profile user.Profile
		email   string
		name    string
	)
	switch r := reg.(type) {
	case PlayerRegistration:
		email = user.NormalizeUsername(r.Email)
		p := player.Profile{
			UserID:    userID,
			FirstName: strings.TrimSpace(r.FirstName),
			LastName:  strings.TrimSpace(r.LastName),
			Phone:     strings.TrimSpace(r.Phone),
			Email:     email,
			State:     strings.TrimSpace(r.State),
			Country:   strings.TrimSpace(r.Country),
			CreatedAt: now,
			UpdatedAt: now,
		}
		profile, name = p, p.FullName()
	case ClubAcademyRegistration:
		if !r.MemberType.IsOrganisation() {
			return user.Login{}, validationFailed(MsgInvalidMemberType)
		}
		email = user.NormalizeUsername(r.Email)
		p := clubacademy.Profile{
			UserID:     userID,
			Name:       strings.TrimSpace(r.Name),
			MemberType: r.MemberType,
			Email:      email,
			Phone:      strings.TrimSpace(r.Phone),
			State:      strings.TrimSpace(r.State),
			Country:    strings.TrimSpace(r.Country),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		profile, name = p, p.Name
	default:
		return user.Login{}, validationFailed(MsgInvalidMemberType)
	}

	memberType := reg.registrationMemberType()
	login := user.Login{
		UserID:              userID,
		Username:            email,
		Status:              user.StatusPending,
		MemberType:          memberType,
		Role:                user.Role(memberType),
		ProfileStatus:       user.ProfileNonVerified,
		IsFirstTimeLogin:    true,
		ForgotPasswordToken: token,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.logins.Register(ctx, login, profile); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.Login{}, conflict(MsgEmailAlreadyRegistered)
		}
		return user.Login{}, fmt.Errorf("register member: %w", err)
	}

	s.logger.InfoContext(ctx, "member registered", "user_id", userID, "member_type", string(memberType))
	s.email.EmailVerification(ctx, email, name, token)
	return login, nil
}

// CreatePassword activates a registered login using the emailed token.
func (s *AccountService) CreatePassword(ctx context.Context, token, password string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.CreatePassword")
	defer span.End()

	login, err := s.loginByToken(ctx, token, password)
	if err != nil {
		return err
	}
	if err := s.setPassword(ctx, &login, password); err != nil {
		return err
	}
	login.Status = user.StatusActive
	login.IsEmailVerified = true
	if err := s.logins.Update(ctx, login); err != nil {
		return fmt.Errorf("activate login: %w", err)
	}
	s.email.Welcome(ctx, login.Username, memberDisplayName(ctx, s.players, s.clubs, login))
	return nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Login")
	defer span.End()

	login, exists, err := s.logins.GetByUsername(ctx, user.NormalizeUsername(email))
	if err != nil {
		return LoginResult{}, fmt.Errorf("get login by username: %w", err)
	}
	if !exists || login.PasswordHash == "" {
		return LoginResult{}, unauthorized(MsgInvalidCredentials)
	}
	if err := s.hasher.Compare(login.PasswordHash, password); err != nil {
		return LoginResult{}, unauthorized(MsgInvalidCredentials)
	}
	if login.Status != user.StatusActive {
		return LoginResult{}, unauthorized(MsgAccountNotActive)
	}

	token, expiresAt, err := s.tokens.Issue(user.Principal{
		UserID:     login.UserID,
		Email:      login.Username,
		Role:       login.Role,
		MemberType: login.MemberType,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}

	result := LoginResult{Token: token, ExpiresAt: expiresAt, Login: login}
	if login.IsFirstTimeLogin {
		login.IsFirstTimeLogin = false
		login.UpdatedAt = s.now().UTC()
		if err := s.logins.Update(ctx, login); err != nil {
			s.logger.WarnContext(ctx, "clear first time login failed", "user_id", login.UserID, "error", err)
		}
	}
	return result, nil
}

func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.ForgotPassword")
	defer span.End()

	login, exists, err := s.logins.GetByUsername(ctx, user.NormalizeUsername(email))
	if err != nil {
		return fmt.Errorf("get login by username: %w", err)
	}
	if !exists {
		return notFound(MsgUserNotFound)
	}
	token, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	login.ForgotPasswordToken = token
	login.UpdatedAt = s.now().UTC()
	if err := s.logins.Update(ctx, login); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	s.email.ForgotPassword(ctx, login.Username, token)
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, token, password string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.ResetPassword")
	defer span.End()

	login, err := s.loginByToken(ctx, token, password)
	if err != nil {
		return err
	}
	if err := s.setPassword(ctx, &login, password); err != nil {
		return err
	}
	if err := s.logins.Update(ctx, login); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *AccountService) ChangePassword(ctx context.Context, principal user.Principal, oldPassword, newPassword string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.ChangePassword")
	defer span.End()

	if len(newPassword) < minPasswordLength {
		return validationFailed(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	login, exists, err := s.logins.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("get login: %w", err)
	}
	if !exists {
		return notFound(MsgUserNotFound)
	}
	if err := s.hasher.Compare(login.PasswordHash, oldPassword); err != nil {
		return validationFailed(MsgWrongOldPassword)
	}
	if err := s.setPassword(ctx, &login, newPassword); err != nil {
		return err
	}
	if err := s.logins.Update(ctx, login); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.email.ChangePassword(ctx, login.Username)
	return nil
}

func (s *AccountService) loginByToken(ctx context.Context, token, password string) (user.Login, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Login{}, validationFailed("token is required")
	}
	if len(password) < minPasswordLength {
		return user.Login{}, validationFailed(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	login, exists, err := s.logins.GetByResetToken(ctx, token)
	if err != nil {
		return user.Login{}, fmt.Errorf("get login by token: %w", err)
	}
	if !exists {
		return user.Login{}, badRequest(MsgInvalidToken)
	}
	return login, nil
}

func (s *AccountService) setPassword(_ context.Context, login *user.Login, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	login.PasswordHash = hash
	login.ForgotPasswordToken = ""
	login.UpdatedAt = s.now().UTC()
	return nil
}
