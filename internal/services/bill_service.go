package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store"
)

// BillPatch carries a partial bill update. Nil fields are left untouched.
type BillPatch struct {
	Name           *string
	Provider       *string
	CategoryID     *string
	AccountID      *string
	DueDay         *int
	ExpectedAmount *core.Money
	Autopay        *bool
	Active         *bool
}

// BillService manages the recurring bill registry.
type BillService struct {
	store     store.Store
	publisher ChangePublisher
	logger    *log.Logger
	now       func() time.Time
}

func NewBillService(st store.Store, pub ChangePublisher, logger *log.Logger) *BillService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &BillService{store: st, publisher: pub, logger: logger, now: time.Now}
}

func (s *BillService) Create(ctx context.Context, actor *core.User, b core.Bill) (*core.Bill, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = s.now().UTC()
	if b.Recurrence == "" {
		b.Recurrence = core.Monthly
	}
	b.Active = true

	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.CategoryID != "" {
		if _, err := s.store.GetCategory(ctx, b.CategoryID); err != nil {
			return nil, fmt.Errorf("bill category: %w", err)
		}
	}
	if b.AccountID != "" {
		if _, err := s.store.GetAccount(ctx, b.AccountID); err != nil {
			return nil, fmt.Errorf("bill account: %w", err)
		}
	}

	if err := s.store.CreateBill(ctx, b); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, "CREATE", "bill", b.ID)
	s.publish(ctx, b.ID, "created")
	return &b, nil
}

// Update applies the non-nil fields of patch to the stored bill. An
// amount-only patch leaves the due day and every other field as it was.
func (s *BillService) Update(ctx context.Context, actor *core.User, id string, patch BillPatch) (*core.Bill, error) {
	b, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Provider != nil {
		b.Provider = *patch.Provider
	}
	if patch.CategoryID != nil {
		b.CategoryID = *patch.CategoryID
	}
	if patch.AccountID != nil {
		b.AccountID = *patch.AccountID
	}
	if patch.DueDay != nil {
		b.DueDay = *patch.DueDay
	}
	if patch.ExpectedAmount != nil {
		b.ExpectedAmount = *patch.ExpectedAmount
	}
	if patch.Autopay != nil {
		b.Autopay = *patch.Autopay
	}
	if patch.Active != nil {
		b.Active = *patch.Active
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateBill(ctx, *b); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, "UPDATE", "bill", id)
	s.publish(ctx, id, "updated")
	return b, nil
}

func (s *BillService) Delete(ctx context.Context, actor *core.User, id string) error {
	if err := s.store.DeleteBill(ctx, id); err != nil {
		return err
	}
	// Drop the mirrored calendar entry along with the bill.
	if ev, err := s.store.GetEventBySource(ctx, "bill", id); err == nil {
		if err := s.store.DeleteEvent(ctx, ev.ID); err != nil && !errors.Is(err, core.ErrNotFound) {
			s.logger.Warn("delete mirrored event", "bill", id, "error", err)
		}
	}
	s.audit(ctx, actor, "DELETE", "bill", id)
	s.publish(ctx, id, "deleted")
	return nil
}

func (s *BillService) Get(ctx context.Context, id string) (*core.Bill, error) {
	return s.store.GetBill(ctx, id)
}

func (s *BillService) List(ctx context.Context, activeOnly bool) ([]core.Bill, error) {
	return s.store.ListBills(ctx, activeOnly)
}

func (s *BillService) publish(ctx context.Context, billID, action string) {
	if err := s.publisher.PublishChange(ctx, "bill", billID, action); err != nil {
		s.logger.Warn("publish bill change", "bill", billID, "error", err)
	}
}

func (s *BillService) audit(ctx context.Context, actor *core.User, action, entity, entityID string) {
	userID := ""
	if actor != nil {
		userID = actor.ID
	}
	r := core.AuditRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Timestamp: s.now().UTC(),
	}
	if err := s.store.AppendAudit(ctx, r); err != nil {
		s.logger.Warn("append audit record", "entity", entity, "error", err)
	}
}
