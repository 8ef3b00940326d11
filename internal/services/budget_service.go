package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store"
)

// BudgetService manages per-category monthly spending caps.
type BudgetService struct {
	store     store.Store
	publisher ChangePublisher
	logger    *log.Logger
	now       func() time.Time
}

func NewBudgetService(st store.Store, pub ChangePublisher, logger *log.Logger) *BudgetService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &BudgetService{store: st, publisher: pub, logger: logger, now: time.Now}
}

func (s *BudgetService) Create(ctx context.Context, actor *core.User, b core.Budget) (*core.Budget, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = s.now().UTC()
	b.SpentAmount = core.Money{}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, b.CategoryID); err != nil {
		return nil, fmt.Errorf("budget category: %w", err)
	}

	if err := s.store.CreateBudget(ctx, b); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, "CREATE", "budget", b.ID)
	s.publish(ctx, b.ID, "created")
	return &b, nil
}

// List returns the budgets for the given month and year. A zero month or
// year leaves that dimension unfiltered.
func (s *BudgetService) List(ctx context.Context, month, year int) ([]core.Budget, error) {
	if month < 0 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	return s.store.ListBudgets(ctx, month, year)
}

func (s *BudgetService) publish(ctx context.Context, budgetID, action string) {
	if err := s.publisher.PublishChange(ctx, "budget", budgetID, action); err != nil {
		s.logger.Warn("publish budget change", "budget", budgetID, "error", err)
	}
}

func (s *BudgetService) audit(ctx context.Context, actor *core.User, action, entity, entityID string) {
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
