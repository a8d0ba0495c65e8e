package notification

import "context"

// Template names the email event being rendered.
type Template string

const (
	TemplateForgotPassword                   Template = "forgotPassword"
	TemplateEmailVerification                Template = "emailVerification"
	TemplateWelcome                          Template = "welcome"
	TemplateChangePassword                   Template = "changePassword"
	TemplateProfileVerified                  Template = "profileVerified"
	TemplateProfileDisapproved               Template = "profileDisapproved"
	TemplateDocumentApproval                 Template = "documentApproval"
	TemplateDocumentDisapproval              Template = "documentDisapproval"
	TemplateFootplayerRequest                Template = "footplayerRequest"
	TemplateFootplayerInvite                 Template = "footplayerInvite"
	TemplateContractCreatedPlayer            Template = "employmentContractCreatedPlayer"
	TemplateContractCreatedClubAcademy       Template = "employmentContractCreatedClubAcademy"
	TemplateContractApprovalByPlayer         Template = "employmentContractApprovalByPlayer"
	TemplateContractApprovalByClubAcademy    Template = "employmentContractApprovalByClubAcademy"
	TemplateContractDisapprovalByPlayer      Template = "employmentContractDisapprovalByPlayer"
	TemplateContractDisapprovalByClubAcademy Template = "employmentContractDisapprovalByClubAcademy"
	TemplateReportCardAdded                  Template = "reportCardAdded"
)

// Rendered is a ready-to-send email body.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Renderer turns a template and its data into subject and bodies.
type Renderer interface {
	Render(template Template, data map[string]any) (Rendered, error)
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
