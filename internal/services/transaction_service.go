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

// TransactionService records income and expenses and keeps account
// balances in step with them.
type TransactionService struct {
	store     store.Store
	publisher ChangePublisher
	logger    *log.Logger
	now       func() time.Time
}

func NewTransactionService(st store.Store, pub ChangePublisher, logger *log.Logger) *TransactionService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &TransactionService{store: st, publisher: pub, logger: logger, now: time.Now}
}

func (s *TransactionService) Create(ctx context.Context, actor *core.User, t core.Transaction) (*core.Transaction, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = s.now().UTC()
	if actor != nil {
		t.CreatedBy = actor.ID
	}
	if t.Date.IsZero() {
		t.Date = s.now().UTC()
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.CategoryID != "" {
		if _, err := s.store.GetCategory(ctx, t.CategoryID); err != nil {
			return nil, fmt.Errorf("transaction category: %w", err)
		}
	}
	if t.BillID != "" {
		if _, err := s.store.GetBill(ctx, t.BillID); err != nil {
			return nil, fmt.Errorf("transaction bill: %w", err)
		}
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	if err := s.applyBalance(ctx, t, 1); err != nil {
		s.logger.Warn("adjust account balance", "transaction", t.ID, "error", err)
	}

	s.audit(ctx, actor, "CREATE", "transaction", t.ID)
	if err := s.publisher.PublishChange(ctx, "transaction", t.ID, "created"); err != nil {
		s.logger.Warn("publish transaction change", "transaction", t.ID, "error", err)
	}
	return &t, nil
}

func (s *TransactionService) Delete(ctx context.Context, actor *core.User, id string) error {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	if err := s.applyBalance(ctx, *t, -1); err != nil {
		s.logger.Warn("revert account balance", "transaction", id, "error", err)
	}
	s.audit(ctx, actor, "DELETE", "transaction", id)
	return nil
}

func (s *TransactionService) Get(ctx context.Context, id string) (*core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TransactionService) List(ctx context.Context, f store.TransactionFilter) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, f)
}

// applyBalance moves the account balance for a transaction. sign is 1
// when recording and -1 when reverting a delete.
func (s *TransactionService) applyBalance(ctx context.Context, t core.Transaction, sign int64) error {
	if t.AccountID == "" {
		return nil
	}
	delta := t.Amount.Cents * sign
	if t.Type == core.Expense {
		delta = -delta
	}
	err := s.store.AdjustAccountBalance(ctx, t.AccountID, delta)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return err
}

func (s *TransactionService) audit(ctx context.Context, actor *core.User, action, entity, entityID string) {
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
