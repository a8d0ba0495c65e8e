package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/domain/contract"
	"github.com/riskibarqy/footmate/internal/domain/user"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

type ContractInput struct {
	Category         string
	ClubAcademyName  string
	ClubAcademyEmail string
	ClubAcademyPhone string
	PlayerName       string
	PlayerEmail      string
	PlayerPhone      string
	OtherName        string
	OtherEmail       string
	OtherPhoneNumber string
	EffectiveDate    time.Time
	ExpiryDate       time.Time
	PlaceOfSignature string
	DateOfSigning    *time.Time
}

type UpdateContractStatusInput struct {
	ContractID string
	Status     string
	Remarks    string
}

type EmploymentContractService struct {
	contracts contract.Repository
	logins    user.Repository
	email     *EmailService
	events    EventPublisher
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewEmploymentContractService(
	contracts contract.Repository,
	logins user.Repository,
	email *EmailService,
	events EventPublisher,
	idGen idgen.Generator,
	logger *logging.Logger,
) *EmploymentContractService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EmploymentContractService{
		contracts: contracts,
		logins:    logins,
		email:     email,
		events:    eventsOrNoop(events),
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *EmploymentContractService) Create(ctx context.Context, principal user.Principal, input ContractInput) (contract.EmploymentContract, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EmploymentContractService.Create")
	defer span.End()

	item, err := prepareContract(input)
	if err != nil {
		return contract.EmploymentContract{}, err
	}
	item.SentBy = principal.UserID

	var recipient user.MemberType
	switch {
	case principal.MemberType == user.MemberTypePlayer:
		if err := s.checkOpenContracts(ctx, principal.Email, item.ClubAcademyEmail); err != nil {
			return contract.EmploymentContract{}, err
		}
		counterparty, err := s.findVerifiedLogin(ctx, item.ClubAcademyEmail, item.Category)
		if err != nil {
			return contract.EmploymentContract{}, err
		}
		item.SendTo = counterparty.UserID
		item.PlayerEmail = user.NormalizeUsername(principal.Email)
		recipient = item.Category
	case principal.MemberType.IsOrganisation():
		if err := s.checkOpenContracts(ctx, item.PlayerEmail, principal.Email); err != nil {
			return contract.EmploymentContract{}, err
		}
		playerLogin, err := s.findVerifiedLogin(ctx, item.PlayerEmail, user.MemberTypePlayer)
		if err != nil {
			return contract.EmploymentContract{}, err
		}
		item.SendTo = playerLogin.UserID
		item.PlayerEmail = playerLogin.Username
		item.ClubAcademyEmail = user.NormalizeUsername(principal.Email)
		item.Category = principal.MemberType
		recipient = user.MemberTypePlayer
	default:
		return contract.EmploymentContract{}, forbidden(MsgPermissionDenied)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return contract.EmploymentContract{}, fmt.Errorf("generate contract id: %w", err)
	}
	now := s.now().UTC()
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.contracts.Create(ctx, item); err != nil {
		return contract.EmploymentContract{}, contractWriteFailure(err, "create contract")
	}

	s.logger.InfoContext(ctx, "employment contract created", "contract_id", item.ID, "sent_by", item.SentBy)
	recipientEmail := item.ClubAcademyEmail
	if recipient == user.MemberTypePlayer {
		recipientEmail = item.PlayerEmail
	}
	s.email.ContractCreated(ctx, recipientEmail, recipient, noticeFor(item))
	s.publish(ctx, EventContractCreated, item)
	return item, nil
}

// Update rewrites a pending or disapproved contract. Only the player-side
// edit path exists; clubs and academies are refused.
func (s *EmploymentContractService) Update(ctx context.Context, principal user.Principal, contractID string, input ContractInput) (contract.EmploymentContract, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EmploymentContractService.Update")
	defer span.End()

	item, err := prepareContract(input)
	if err != nil {
		return contract.EmploymentContract{}, err
	}
	if principal.MemberType != user.MemberTypePlayer {
		return contract.EmploymentContract{}, forbidden(MsgPermissionDenied)
	}

	existing, exists, err := s.contracts.GetBySender(ctx, principal.UserID, strings.TrimSpace(contractID))
	if err != nil {
		return contract.EmploymentContract{}, fmt.Errorf("get contract: %w", err)
	}
	if !exists {
		return contract.EmploymentContract{}, notFound(MsgContractNotFound)
	}
	if !existing.Modifiable() {
		return contract.EmploymentContract{}, unauthorized(MsgContractApproved)
	}

	counterparty, err := s.findVerifiedLogin(ctx, item.ClubAcademyEmail, item.Category)
	if err != nil {
		return contract.EmploymentContract{}, err
	}

	item.ID = existing.ID
	item.SentBy = principal.UserID
	item.SendTo = counterparty.UserID
	item.PlayerEmail = user.NormalizeUsername(principal.Email)
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now().UTC()

	ok, err := s.contracts.UpdateModifiable(ctx, item)
	if err != nil {
		return contract.EmploymentContract{}, contractWriteFailure(err, "update contract")
	}
	if !ok {
		return contract.EmploymentContract{}, unauthorized(MsgContractApproved)
	}
	return item, nil
}

func (s *EmploymentContractService) Delete(ctx context.Context, principal user.Principal, contractID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EmploymentContractService.Delete")
	defer span.End()

	ok, err := s.contracts.SoftDeleteModifiable(ctx, principal.UserID, strings.TrimSpace(contractID))
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	if !ok {
		return notFound(MsgContractNotFound)
	}
	return nil
}

func (s *EmploymentContractService) Get(ctx context.Context, principal user.Principal, contractID string) (contract.EmploymentContract, error) {
	item, exists, err := s.contracts.GetByID(ctx, strings.TrimSpace(contractID))
	if err != nil {
		return contract.EmploymentContract{}, fmt.Errorf("get contract: %w", err)
	}
	if !exists || (item.SentBy != principal.UserID && item.SendTo != principal.UserID) {
		return contract.EmploymentContract{}, notFound(MsgContractNotFound)
	}
	return item, nil
}

func (s *EmploymentContractService) ListMine(ctx context.Context, principal user.Principal) ([]contract.EmploymentContract, error) {
	items, err := s.contracts.ListByParty(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return items, nil
}

// UpdateStatus lets the receiving party approve or disapprove a pending contract.
func (s *EmploymentContractService) UpdateStatus(ctx context.Context, principal user.Principal, input UpdateContractStatusInput) (contract.EmploymentContract, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EmploymentContractService.UpdateStatus")
	defer span.End()

	status := contract.Status(strings.ToLower(strings.TrimSpace(input.Status)))
	if status != contract.StatusActive && status != contract.StatusDisapproved {
		return contract.EmploymentContract{}, validationFailed("status must be one of active, disapproved")
	}
	remarks := strings.TrimSpace(input.Remarks)
	if status == contract.StatusDisapproved && remarks == "" {
		return contract.EmploymentContract{}, validationFailed("remarks is required when disapproving")
	}

	item, ok, err := s.contracts.UpdateStatus(ctx, principal.UserID, strings.TrimSpace(input.ContractID), status, remarks)
	if err != nil {
		return contract.EmploymentContract{}, contractWriteFailure(err, "update contract status")
	}
	if !ok {
		return contract.EmploymentContract{}, notFound(MsgContractNotActionable)
	}

	creatorEmail := item.PlayerEmail
	if principal.MemberType == user.MemberTypePlayer {
		creatorEmail = item.ClubAcademyEmail
	}
	s.email.ContractReviewed(ctx, creatorEmail, principal.MemberType, status == contract.StatusActive, noticeFor(item))
	s.publish(ctx, EventContractStatusChanged, item)
	return item, nil
}

// CompleteExpired closes active contracts whose expiry date has passed.
func (s *EmploymentContractService) CompleteExpired(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EmploymentContractService.CompleteExpired")
	defer span.End()

	count, err := s.contracts.CompleteExpired(ctx, dateOnly(s.now()))
	if err != nil {
		return 0, fmt.Errorf("complete expired contracts: %w", err)
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "expired contracts completed", "count", count)
	}
	return count, nil
}

// checkOpenContracts reports the active and pending guards before the
// counterparty is resolved. The repository enforces both again on insert.
func (s *EmploymentContractService) checkOpenContracts(ctx context.Context, playerEmail, clubAcademyEmail string) error {
	err := s.contracts.CheckOpen(ctx, user.NormalizeUsername(playerEmail), user.NormalizeUsername(clubAcademyEmail))
	if err != nil {
		return contractWriteFailure(err, "check open contracts")
	}
	return nil
}

func (s *EmploymentContractService) findVerifiedLogin(ctx context.Context, email string, memberType user.MemberType) (user.Login, error) {
	login, exists, err := s.logins.GetByUsername(ctx, user.NormalizeUsername(email))
	if err != nil {
		return user.Login{}, fmt.Errorf("get login by username: %w", err)
	}
	if !exists || login.MemberType != memberType || !login.IsVerified() {
		return user.Login{}, badRequest(fmt.Sprintf("%s does not exists", memberType))
	}
	return login, nil
}

func (s *EmploymentContractService) publish(ctx context.Context, subject string, item contract.EmploymentContract) {
	if err := s.events.Publish(ctx, subject, map[string]any{
		"contract_id": item.ID,
		"sent_by":     item.SentBy,
		"send_to":     item.SendTo,
		"status":      string(item.Status),
	}); err != nil {
		s.logger.WarnContext(ctx, "publish contract event failed", "contract_id", item.ID, "subject", subject, "error", err)
	}
}

func prepareContract(input ContractInput) (contract.EmploymentContract, error) {
	item := contract.EmploymentContract{
		Category:         user.MemberType(strings.ToLower(strings.TrimSpace(input.Category))),
		ClubAcademyName:  strings.TrimSpace(input.ClubAcademyName),
		ClubAcademyEmail: user.NormalizeUsername(input.ClubAcademyEmail),
		ClubAcademyPhone: strings.TrimSpace(input.ClubAcademyPhone),
		PlayerName:       strings.TrimSpace(input.PlayerName),
		PlayerEmail:      user.NormalizeUsername(input.PlayerEmail),
		PlayerPhone:      strings.TrimSpace(input.PlayerPhone),
		OtherName:        strings.TrimSpace(input.OtherName),
		OtherEmail:       strings.TrimSpace(input.OtherEmail),
		OtherPhoneNumber: strings.TrimSpace(input.OtherPhoneNumber),
		EffectiveDate:    dateOnly(input.EffectiveDate),
		ExpiryDate:       dateOnly(input.ExpiryDate),
		PlaceOfSignature: strings.TrimSpace(input.PlaceOfSignature),
		DateOfSigning:    input.DateOfSigning,
	}.Normalize()

	if err := contract.ValidateTerm(item.EffectiveDate, item.ExpiryDate); err != nil {
		if errors.Is(err, contract.ErrTermTooLong) {
			return contract.EmploymentContract{}, validationFailed(MsgContractTermTooLong)
		}
		return contract.EmploymentContract{}, validationFailed(err.Error())
	}
	return item, nil
}

func contractWriteFailure(err error, op string) error {
	switch {
	case errors.Is(err, contract.ErrActiveContractExists):
		return badRequest(MsgActiveContractExists)
	case errors.Is(err, contract.ErrPendingContractExists):
		return badRequest(MsgContractExists)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func noticeFor(item contract.EmploymentContract) ContractNotice {
	return ContractNotice{
		ContractID:      item.ID,
		PlayerName:      item.PlayerName,
		ClubAcademyName: item.ClubAcademyName,
		Category:        item.Category,
		Remarks:         item.Remarks,
	}
}
