package mailer

import "github.com/riskibarqy/footmate/internal/domain/notification"

type templateSource struct {
	subject string
	html    string
	text    string
}

const layoutOpen = `<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#222">`
const layoutClose = `<p>Team Footmate</p></body></html>`

var templateSources = map[notification.Template]templateSource{
	notification.TemplateForgotPassword: {
		subject: "Reset your password",
		html:    layoutOpen + `<p>We received a request to reset your password.</p><p><a href="{{.link}}">Reset password</a></p>` + layoutClose,
		text:    "We received a request to reset your password. Reset it here: {{.link}}",
	},
	notification.TemplateEmailVerification: {
		subject: "Verify your email",
		html:    layoutOpen + `<p>Hi {{.name}},</p><p>Welcome aboard. Verify your email and create your password to get started.</p><p><a href="{{.link}}">Create password</a></p>` + layoutClose,
		text:    "Hi {{.name}}, verify your email and create your password: {{.link}}",
	},
	notification.TemplateWelcome: {
		subject: "Welcome to Footmate",
		html:    layoutOpen + `<p>Hi {{.name}},</p><p>Your account is active.</p><p><a href="{{.link}}">Log in</a></p>` + layoutClose,
		text:    "Hi {{.name}}, your account is active. Log in: {{.link}}",
	},
	notification.TemplateChangePassword: {
		subject: "Your password was changed",
		html:    layoutOpen + `<p>Your password was changed successfully.</p><p><a href="{{.link}}">Log in</a></p>` + layoutClose,
		text:    "Your password was changed successfully. Log in: {{.link}}",
	},
	notification.TemplateProfileVerified: {
		subject: "Your profile is verified",
		html:    layoutOpen + `<p>Hi {{.name}},</p><p>Your profile has been verified.</p><p><a href="{{.link}}">Log in</a></p>` + layoutClose,
		text:    "Hi {{.name}}, your profile has been verified. Log in: {{.link}}",
	},
	notification.TemplateProfileDisapproved: {
		subject: "Your profile was disapproved",
		html:    layoutOpen + `<p>Hi {{.name}},</p><p>Your profile was disapproved.</p><p>Remarks: {{.remarks}}</p>` + layoutClose,
		text:    "Hi {{.name}}, your profile was disapproved. Remarks: {{.remarks}}",
	},
	notification.TemplateDocumentApproval: {
		subject: "Document approved",
		html:    layoutOpen + `<p>Hi {{.name}},</p><p>Your {{.document_type}} document has been approved.</p>` + layoutClose,
		text:    "Hi {{.name}}, your {{.document_type}} document has been approved.",
	},
	notification.TemplateDocumentDisapproval: {
		subject: "Document disapproved",
		html:    layoutOpen + `<p>Hi {{.name}},</p><p>Your {{.document_type}} document was disapproved.</p><p>Remarks: {{.remarks}}</p>` + layoutClose,
		text:    "Hi {{.name}}, your {{.document_type}} document was disapproved. Remarks: {{.remarks}}",
	},
	notification.TemplateFootplayerRequest: {
		subject: "New footplayer request",
		html:    layoutOpen + `<p>Hi {{.player_name}},</p><p>{{.sender_name}} wants to add you as a footplayer.</p><p><a href="{{.link}}">View request</a></p>` + layoutClose,
		text:    "Hi {{.player_name}}, {{.sender_name}} wants to add you as a footplayer: {{.link}}",
	},
	notification.TemplateFootplayerInvite: {
		subject: "You are invited to Footmate",
		html:    layoutOpen + `<p>{{.sender_name}} ({{.sender_type}}) invited you to join Footmate.</p><p><a href="{{.link}}">Register</a></p>` + layoutClose,
		text:    "{{.sender_name}} ({{.sender_type}}) invited you to join Footmate: {{.link}}",
	},
	notification.TemplateContractCreatedPlayer: {
		subject: "New employment contract",
		html:    layoutOpen + `<p>Hi {{.player_name}},</p><p>{{.club_academy_name}} has created an employment contract for you.</p><p><a href="{{.link}}">Review contract</a></p>` + layoutClose,
		text:    "Hi {{.player_name}}, {{.club_academy_name}} has created an employment contract for you: {{.link}}",
	},
	notification.TemplateContractCreatedClubAcademy: {
		subject: "New employment contract",
		html:    layoutOpen + `<p>Hi {{.club_academy_name}},</p><p>{{.player_name}} has created an employment contract with your {{.category}}.</p><p><a href="{{.link}}">Review contract</a></p>` + layoutClose,
		text:    "Hi {{.club_academy_name}}, {{.player_name}} has created an employment contract with your {{.category}}: {{.link}}",
	},
	notification.TemplateContractApprovalByPlayer: {
		subject: "Employment contract approved",
		html:    layoutOpen + `<p>Hi {{.club_academy_name}},</p><p>{{.player_name}} approved the employment contract.</p><p><a href="{{.link}}">View contract</a></p>` + layoutClose,
		text:    "Hi {{.club_academy_name}}, {{.player_name}} approved the employment contract: {{.link}}",
	},
	notification.TemplateContractApprovalByClubAcademy: {
		subject: "Employment contract approved",
		html:    layoutOpen + `<p>Hi {{.player_name}},</p><p>{{.club_academy_name}} approved your employment contract.</p><p><a href="{{.link}}">View contract</a></p>` + layoutClose,
		text:    "Hi {{.player_name}}, {{.club_academy_name}} approved your employment contract: {{.link}}",
	},
	notification.TemplateContractDisapprovalByPlayer: {
		subject: "Employment contract disapproved",
		html:    layoutOpen + `<p>Hi {{.club_academy_name}},</p><p>{{.player_name}} disapproved the employment contract.</p><p>Remarks: {{.remarks}}</p><p><a href="{{.link}}">View contract</a></p>` + layoutClose,
		text:    "Hi {{.club_academy_name}}, {{.player_name}} disapproved the employment contract. Remarks: {{.remarks}}",
	},
	notification.TemplateContractDisapprovalByClubAcademy: {
		subject: "Employment contract disapproved",
		html:    layoutOpen + `<p>Hi {{.player_name}},</p><p>{{.club_academy_name}} disapproved your employment contract.</p><p>Remarks: {{.remarks}}</p><p><a href="{{.link}}">View contract</a></p>` + layoutClose,
		text:    "Hi {{.player_name}}, {{.club_academy_name}} disapproved your employment contract. Remarks: {{.remarks}}",
	},
	notification.TemplateReportCardAdded: {
		subject: "New report card",
		html:    layoutOpen + `<p>Hi {{.player_name}},</p><p>{{.club_academy_name}} published a report card for you on {{.published_at}}.</p><p><a href="{{.link}}">View report card</a></p>` + layoutClose,
		text:    "Hi {{.player_name}}, {{.club_academy_name}} published a report card for you on {{.published_at}}: {{.link}}",
	},
}
