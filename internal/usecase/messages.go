package usecase

// Client-facing messages.
const (
	MsgInvalidAbilityValue      = "Invalid value for abilities"
	MsgAbilityNotFound          = "Ability not found"
	MsgAttributeNotFound        = "Attribute not found"
	MsgDuplicateAbilityID       = "Duplicate ability id"
	MsgDuplicateAttributeID     = "Duplicate attribute id"
	MsgScoreCriteriaFailed      = "Minimum 3 abilities with at least 3 scored attributes each are required"
	MsgNotFootplayer            = "Player is not your footplayer"
	MsgDraftExists              = "A draft report card already exists for this player"
	MsgReportCardNotFound       = "Report card not found"
	MsgReportCardCannotBeEdited = "Only draft report cards can be edited"
	MsgPlayerNotFound           = "Player not found"
	MsgPlayerProfileNotVerified = "Player profile is not verified"
	MsgUserProfileNotVerified   = "Your profile is not verified"
	MsgNotAllowedToViewDraft    = "You are not allowed to view other's draft report card"
	MsgNotAllowedToViewCard     = "You are not allowed to view this report card"
	MsgFootmateRequestNotFound  = "Footmate request not found"
	MsgFootmateRequestExists    = "Footmate request already sent"

	MsgActiveContractExists  = "Player already have an active contract"
	MsgContractExists        = "Contract already exists"
	MsgContractNotFound      = "Contract not found"
	MsgContractTermTooLong   = "The expiry date cannot exceed 5 years of effective date"
	MsgContractApproved      = "Cannot update already approved contract."
	MsgContractNotActionable = "Contract is not awaiting your response"

	MsgAchievementNotFound = "Achievement not found"

	MsgStateExists     = "State already added"
	MsgStateNotFound   = "State not found"
	MsgCityExists      = "City already added"
	MsgCityNotFound    = "City not found"
	MsgCountryNotFound = "Country not found"

	MsgEmailAlreadyRegistered = "Email already registered"
	MsgInvalidCredentials     = "Invalid credentials"
	MsgAccountNotActive       = "Account is not active"
	MsgInvalidToken           = "Invalid or expired link"
	MsgWrongOldPassword       = "Old password is incorrect"
	MsgUserNotFound           = "User not found"
	MsgDocumentNotFound       = "Document not found"
	MsgInvalidMemberType      = "Invalid member type"
	MsgPermissionDenied       = "You are not allowed to perform this action"
)
