package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/footmate/internal/domain/reportcard"
)

type ReportCardRepository struct {
	mu    sync.RWMutex
	items map[string]reportcard.ReportCard
}

func NewReportCardRepository() *ReportCardRepository {
	return &ReportCardRepository{items: make(map[string]reportcard.ReportCard)}
}

func (r *ReportCardRepository) Create(_ context.Context, card reportcard.ReportCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if card.Status == reportcard.StatusDraft {
		if _, ok := r.draftLocked(card.SentBy, card.SendTo); ok {
			return reportcard.ErrDraftExists
		}
	}
	r.items[card.ID] = cloneReportCard(card)
	return nil
}

func (r *ReportCardRepository) GetByID(_ context.Context, id string) (reportcard.ReportCard, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.items[id]
	if !ok || card.DeletedAt != nil {
		return reportcard.ReportCard{}, false, nil
	}
	return cloneReportCard(card), true, nil
}

func (r *ReportCardRepository) GetBySender(ctx context.Context, sentBy, id string) (reportcard.ReportCard, bool, error) {
	card, ok, err := r.GetByID(ctx, id)
	if err != nil || !ok || card.SentBy != sentBy {
		return reportcard.ReportCard{}, false, err
	}
	return card, true, nil
}

func (r *ReportCardRepository) GetDraft(_ context.Context, sentBy, sendTo string) (reportcard.ReportCard, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.draftLocked(sentBy, sendTo)
	if !ok {
		return reportcard.ReportCard{}, false, nil
	}
	return cloneReportCard(card), true, nil
}

func (r *ReportCardRepository) UpdateDraft(_ context.Context, card reportcard.ReportCard) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[card.ID]
	if !ok || existing.DeletedAt != nil || existing.SentBy != card.SentBy || existing.Status != reportcard.StatusDraft {
		return false, nil
	}
	r.items[card.ID] = cloneReportCard(card)
	return true, nil
}

func (r *ReportCardRepository) draftLocked(sentBy, sendTo string) (reportcard.ReportCard, bool) {
	for _, card := range r.items {
		if card.DeletedAt == nil && card.Status == reportcard.StatusDraft && card.SentBy == sentBy && card.SendTo == sendTo {
			return card, true
		}
	}
	return reportcard.ReportCard{}, false
}

func cloneReportCard(card reportcard.ReportCard) reportcard.ReportCard {
	copied := card
	copied.Abilities = make([]reportcard.AbilityScore, len(card.Abilities))
	for i, a := range card.Abilities {
		a.Attributes = append([]reportcard.AttributeScore(nil), a.Attributes...)
		copied.Abilities[i] = a
	}
	copied.PublishedAt = cloneTime(card.PublishedAt)
	copied.DeletedAt = cloneTime(card.DeletedAt)
	return copied
}
