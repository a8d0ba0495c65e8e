package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

func TestEmailService_LinksAndInlineDelivery(t *testing.T) {
	t.Parallel()
	mailer := &recordingMailer{}
	service := NewEmailService(mailer, mailer, nil, EmailLinks{FrontendBaseURL: "https://app.example.com/ "}, logging.NewNop())

	service.ForgotPassword(t.Context(), " user@example.com ", "tok-1")
	service.Welcome(t.Context(), "user@example.com", "Sunil")

	mail, ok := mailer.lastTo(notification.TemplateForgotPassword)
	if !ok || mail.To != "user@example.com" {
		t.Fatalf("expected forgot password mail, got %v", mailer.templates())
	}
	if got := mail.Data["link"]; got != "https://app.example.com/reset-password?token=tok-1" {
		t.Fatalf("unexpected reset link: %v", got)
	}
	mail, _ = mailer.lastTo(notification.TemplateWelcome)
	if got := mail.Data["link"]; got != "https://app.example.com/login" {
		t.Fatalf("unexpected login link: %v", got)
	}
}

func TestEmailService_SkipsAndDispatch(t *testing.T) {
	t.Parallel()
	mailer := &recordingMailer{}
	var queued []func()
	dispatch := func(task func()) error {
		queued = append(queued, task)
		return nil
	}
	service := NewEmailService(mailer, mailer, dispatch, EmailLinks{}, logging.NewNop())

	service.ChangePassword(t.Context(), "  ")
	if len(queued) != 0 {
		t.Fatalf("expected empty recipient to be skipped")
	}

	service.ContractCreated(t.Context(), "player@example.com", user.MemberTypePlayer, ContractNotice{ContractID: "ec-1"})
	if len(queued) != 1 || len(mailer.templates()) != 0 {
		t.Fatalf("expected one queued task and no send yet")
	}
	queued[0]()
	if got := mailer.templates(); len(got) != 1 || got[0] != notification.TemplateContractCreatedPlayer {
		t.Fatalf("unexpected templates: %v", got)
	}

	failing := NewEmailService(mailer, mailer, func(func()) error { return errors.New("pool closed") }, EmailLinks{}, logging.NewNop())
	failing.Welcome(t.Context(), "user@example.com", "Sunil")
	if len(mailer.templates()) != 1 {
		t.Fatalf("expected rejected dispatch to drop the mail")
	}

	var nilService *EmailService
	nilService.ReportCardAdded(t.Context(), "user@example.com", "Sunil", "Bengaluru FC", time.Now())
}
