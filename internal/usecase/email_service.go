package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

// EmailLinks holds the frontend URLs embedded in emails.
type EmailLinks struct {
	FrontendBaseURL string
}

func (l EmailLinks) url(path string, token string) string {
	base := strings.TrimRight(strings.TrimSpace(l.FrontendBaseURL), "/")
	out := base + "/" + strings.TrimLeft(path, "/")
	if token != "" {
		out += "?token=" + token
	}
	return out
}

// Dispatcher runs a task in the background. ants.Pool.Submit satisfies it.
type Dispatcher func(task func()) error

// EmailService renders and delivers templated notifications. Delivery is
// fire-and-forget: failures are logged and never reach the caller.
type EmailService struct {
	renderer notification.Renderer
	sender   notification.Sender
	dispatch Dispatcher
	links    EmailLinks
	logger   *logging.Logger
}

// NewEmailService builds the service. A nil dispatch sends inline.
func NewEmailService(
	renderer notification.Renderer,
	sender notification.Sender,
	dispatch Dispatcher,
	links EmailLinks,
	logger *logging.Logger,
) *EmailService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EmailService{
		renderer: renderer,
		sender:   sender,
		dispatch: dispatch,
		links:    links,
		logger:   logger,
	}
}

// Send queues one email.
func (s *EmailService) Send(ctx context.Context, to string, template notification.Template, data map[string]any) {
	if s == nil {
		return
	}
	to = strings.TrimSpace(to)
	if to == "" {
		s.logger.WarnContext(ctx, "skip email without recipient", "template", string(template))
		return
	}

	detached := context.WithoutCancel(ctx)
	task := func() { s.send(detached, to, template, data) }
	if s.dispatch == nil {
		task()
		return
	}
	if err := s.dispatch(task); err != nil {
		s.logger.WarnContext(ctx, "queue email failed", "template", string(template), "error", err)
	}
}

func (s *EmailService) send(ctx context.Context, to string, template notification.Template, data map[string]any) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EmailService.send")
	defer span.End()

	rendered, err := s.renderer.Render(template, data)
	if err != nil {
		s.logger.ErrorContext(ctx, "render email failed", "template", string(template), "error", err)
		return
	}
	msg := notification.Message{
		To:      to,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "send email failed", "template", string(template), "error", err)
		return
	}
	s.logger.InfoContext(ctx, "email sent", "template", string(template))
}

func (s *EmailService) link(path, token string) string {
	if s == nil {
		return ""
	}
	return s.links.url(path, token)
}

func (s *EmailService) ForgotPassword(ctx context.Context, email, token string) {
	s.Send(ctx, email, notification.TemplateForgotPassword, map[string]any{
		"link": s.link("reset-password", token),
	})
}

func (s *EmailService) EmailVerification(ctx context.Context, email, name, token string) {
	s.Send(ctx, email, notification.TemplateEmailVerification, map[string]any{
		"name": name,
		"link": s.link("create-password", token),
	})
}

func (s *EmailService) Welcome(ctx context.Context, email, name string) {
	s.Send(ctx, email, notification.TemplateWelcome, map[string]any{
		"name": name,
		"link": s.link("login", ""),
	})
}

func (s *EmailService) ChangePassword(ctx context.Context, email string) {
	s.Send(ctx, email, notification.TemplateChangePassword, map[string]any{
		"link": s.link("login", ""),
	})
}

func (s *EmailService) ProfileVerified(ctx context.Context, email, name string) {
	s.Send(ctx, email, notification.TemplateProfileVerified, map[string]any{
		"name": name,
		"link": s.link("login", ""),
	})
}

func (s *EmailService) ProfileDisapproved(ctx context.Context, email, name, remarks string) {
	s.Send(ctx, email, notification.TemplateProfileDisapproved, map[string]any{
		"name":    name,
		"remarks": remarks,
	})
}

func (s *EmailService) DocumentApproval(ctx context.Context, email, name, documentType string) {
	s.Send(ctx, email, notification.TemplateDocumentApproval, map[string]any{
		"name":          name,
		"document_type": strings.ToUpper(documentType),
	})
}

func (s *EmailService) DocumentDisapproval(ctx context.Context, email, name, documentType, remarks string) {
	s.Send(ctx, email, notification.TemplateDocumentDisapproval, map[string]any{
		"name":          name,
		"document_type": strings.ToUpper(documentType),
		"remarks":       remarks,
	})
}

func (s *EmailService) FootplayerRequest(ctx context.Context, email, playerName, senderName string) {
	s.Send(ctx, email, notification.TemplateFootplayerRequest, map[string]any{
		"player_name": playerName,
		"sender_name": senderName,
		"link":        s.link("footplayer-requests", ""),
	})
}

func (s *EmailService) FootplayerInvite(ctx context.Context, email, senderName, senderType string) {
	s.Send(ctx, email, notification.TemplateFootplayerInvite, map[string]any{
		"sender_name": senderName,
		"sender_type": senderType,
		"link":        s.link("register", ""),
	})
}

// ContractNotice is the data shared by all employment contract emails.
type ContractNotice struct {
	ContractID      string
	PlayerName      string
	ClubAcademyName string
	Category        user.MemberType
	Remarks         string
}

func (n ContractNotice) data(link string) map[string]any {
	return map[string]any{
		"contract_id":       n.ContractID,
		"player_name":       n.PlayerName,
		"club_academy_name": n.ClubAcademyName,
		"category":          string(n.Category),
		"remarks":           n.Remarks,
		"link":              link,
	}
}

// ContractCreated notifies the receiving party of a new contract.
func (s *EmailService) ContractCreated(ctx context.Context, email string, recipient user.MemberType, notice ContractNotice) {
	template := notification.TemplateContractCreatedClubAcademy
	if recipient == user.MemberTypePlayer {
		template = notification.TemplateContractCreatedPlayer
	}
	s.Send(ctx, email, template, notice.data(s.link("employment-contract/"+notice.ContractID, "")))
}

// ContractReviewed notifies the creator that the receiving party approved or
// disapproved the contract. reviewer is who made the decision.
func (s *EmailService) ContractReviewed(ctx context.Context, email string, reviewer user.MemberType, approved bool, notice ContractNotice) {
	var template notification.Template
	switch {
	case approved && reviewer == user.MemberTypePlayer:
		template = notification.TemplateContractApprovalByPlayer
	case approved:
		template = notification.TemplateContractApprovalByClubAcademy
	case reviewer == user.MemberTypePlayer:
		template = notification.TemplateContractDisapprovalByPlayer
	default:
		template = notification.TemplateContractDisapprovalByClubAcademy
	}
	s.Send(ctx, email, template, notice.data(s.link("employment-contract/"+notice.ContractID, "")))
}

func (s *EmailService) ReportCardAdded(ctx context.Context, email, playerName, clubAcademyName string, publishedAt time.Time) {
	s.Send(ctx, email, notification.TemplateReportCardAdded, map[string]any{
		"player_name":       playerName,
		"club_academy_name": clubAcademyName,
		"published_at":      publishedAt.Format("2 January 2006"),
		"link":              s.link("report-cards", ""),
	})
}
