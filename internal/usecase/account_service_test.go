package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/user"
)

func newAccountService(f *memberFixture) *AccountService {
	service := NewAccountService(AccountDeps{
		Logins:  f.logins,
		Players: f.players,
		Clubs:   f.clubs,
		Hasher:  prefixHasher{},
		Tokens:  staticTokenIssuer{expiresAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		Email:   f.email,
		IDGen:   &sequenceIDGenerator{prefix: "acc"},
		Logger:  f.logger,
	})
	service.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return service
}

func TestAccountService_RegisterActivateLogin(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newAccountService(f)

	login, err := service.Register(t.Context(), PlayerRegistration{
		FirstName: " Anirudh ",
		LastName:  "Thapa",
		Email:     " Anirudh@Example.com ",
		Phone:     "9876543210",
		State:     "Delhi",
		Country:   "India",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if login.Username != "anirudh@example.com" || login.Status != user.StatusPending || login.Role != user.RolePlayer {
		t.Fatalf("unexpected login: %+v", login)
	}

	mail, ok := f.mailer.lastTo(notification.TemplateEmailVerification)
	if !ok {
		t.Fatalf("expected verification email, got %v", f.mailer.templates())
	}
	link, _ := mail.Data["link"].(string)
	if !strings.HasPrefix(link, "https://app.example.com/create-password?token=") || mail.Data["name"] != "Anirudh Thapa" {
		t.Fatalf("unexpected verification email data: %+v", mail.Data)
	}
	token := strings.TrimPrefix(link, "https://app.example.com/create-password?token=")

	_, err = service.Login(t.Context(), "anirudh@example.com", "longpassword")
	assertFailure(t, err, ErrUnauthorized, MsgInvalidCredentials)

	err = service.CreatePassword(t.Context(), token, "short")
	assertFailure(t, err, ErrValidationFailed, "")

	if err := service.CreatePassword(t.Context(), token, "longpassword"); err != nil {
		t.Fatalf("create password: %v", err)
	}
	err = service.CreatePassword(t.Context(), token, "longpassword")
	assertFailure(t, err, ErrBadRequest, MsgInvalidToken)

	result, err := service.Login(t.Context(), "ANIRUDH@example.com", "longpassword")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "token-"+login.UserID || !result.Login.IsFirstTimeLogin {
		t.Fatalf("unexpected login result: %+v", result)
	}

	stored, _, _ := f.logins.GetByUserID(t.Context(), login.UserID)
	if stored.IsFirstTimeLogin || !stored.IsEmailVerified || stored.Status != user.StatusActive {
		t.Fatalf("unexpected stored login: %+v", stored)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newAccountService(f)
	f.addClub(t, "club-1", "Chennaiyin", user.MemberTypeClub, user.ProfileVerified)

	_, err := service.Register(t.Context(), ClubAcademyRegistration{
		MemberType: user.MemberTypeAcademy,
		Name:       "Chennaiyin Academy",
		Email:      "CHENNAIYIN@example.com",
	})
	assertFailure(t, err, ErrConflict, MsgEmailAlreadyRegistered)

	_, err = service.Register(t.Context(), ClubAcademyRegistration{MemberType: user.MemberTypePlayer, Email: "x@example.com"})
	assertFailure(t, err, ErrValidationFailed, MsgInvalidMemberType)
}

func TestAccountService_ForgotAndResetPassword(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newAccountService(f)
	p := f.addPlayer(t, "player-1", "Sahal", "Samad", user.ProfileVerified)

	err := service.ForgotPassword(t.Context(), "nobody@example.com")
	assertFailure(t, err, ErrNotFound, MsgUserNotFound)

	if err := service.ForgotPassword(t.Context(), p.Email); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	mail, ok := f.mailer.lastTo(notification.TemplateForgotPassword)
	if !ok || mail.To != p.Email {
		t.Fatalf("expected reset email, got %v", f.mailer.templates())
	}
	token := strings.TrimPrefix(mail.Data["link"].(string), "https://app.example.com/reset-password?token=")

	if err := service.ResetPassword(t.Context(), token, "brandnewpass"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := service.Login(t.Context(), p.Email, "brandnewpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	err = service.ResetPassword(t.Context(), token, "anotherpass")
	assertFailure(t, err, ErrBadRequest, MsgInvalidToken)
}

func TestAccountService_ChangePassword(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newAccountService(f)
	p := f.addPlayer(t, "player-1", "Jeakson", "Singh", user.ProfileVerified)

	err := service.ChangePassword(t.Context(), p, "wrong-old", "newpassword")
	assertFailure(t, err, ErrValidationFailed, MsgWrongOldPassword)

	if err := service.ChangePassword(t.Context(), p, "secret123", "newpassword"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, ok := f.mailer.lastTo(notification.TemplateChangePassword); !ok {
		t.Fatalf("expected change password email, got %v", f.mailer.templates())
	}
	if _, err := service.Login(t.Context(), p.Email, "newpassword"); err != nil {
		t.Fatalf("login with changed password: %v", err)
	}
}

func TestAccountService_Login_InactiveAccount(t *testing.T) {
	t.Parallel()
	f := newMemberFixture(t)
	service := newAccountService(f)
	p := f.addPlayer(t, "player-1", "Rahul", "Bheke", user.ProfileVerified)

	login, _, _ := f.logins.GetByUserID(t.Context(), p.UserID)
	login.Status = user.StatusBlocked
	if err := f.logins.Update(t.Context(), login); err != nil {
		t.Fatalf("block login: %v", err)
	}

	_, err := service.Login(t.Context(), p.Email, "secret123")
	assertFailure(t, err, ErrUnauthorized, MsgAccountNotActive)
}
