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

// SalaryUpdate reports the outcome of a salary reconciliation.
type SalaryUpdate struct {
	OldSalaryTotal  core.Money
	NewSalary       core.Money
	CurrentSalaries []core.SalaryAmount
}

// SalaryService maintains the one-active-salary-per-user rule.
type SalaryService struct {
	store     store.Store
	publisher ChangePublisher
	logger    *log.Logger
	now       func() time.Time
}

func NewSalaryService(st store.Store, pub ChangePublisher, logger *log.Logger) *SalaryService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &SalaryService{store: st, publisher: pub, logger: logger, now: time.Now}
}

// Update replaces the user's salary transactions with a single new one.
// Stale salary rows left behind by earlier updates are retired in the
// same store transaction, so repeated updates converge on exactly one
// active salary whatever state they start from.
func (s *SalaryService) Update(ctx context.Context, user *core.User, amount core.Money) (*SalaryUpdate, error) {
	if err := amount.Validate(); err != nil {
		return nil, err
	}

	txn := core.Transaction{
		ID:           uuid.NewString(),
		Type:         core.Income,
		Amount:       amount,
		Description:  fmt.Sprintf("Salary - %s", user.Name),
		Date:         s.now().UTC(),
		Recurring:    true,
		SalaryUserID: user.ID,
		CreatedBy:    user.ID,
		CreatedAt:    s.now().UTC(),
	}
	if cat, err := s.store.GetCategoryByName(ctx, "Salary"); err == nil {
		txn.CategoryID = cat.ID
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	retired, err := s.store.ReplaceSalary(ctx, user.ID, txn)
	if err != nil {
		return nil, fmt.Errorf("replace salary: %w", err)
	}

	s.audit(ctx, user.ID, "UPDATE", "salary", txn.ID)
	if err := s.publisher.PublishChange(ctx, "transaction", txn.ID, "salary_update"); err != nil {
		s.logger.Warn("publish salary change", "error", err)
	}

	current, err := s.CurrentSalaries(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("salary updated",
		"user", user.Email,
		"retired_cents", retired,
		"new_cents", amount.Cents,
	)
	return &SalaryUpdate{
		OldSalaryTotal:  core.Money{Cents: retired},
		NewSalary:       amount,
		CurrentSalaries: current,
	}, nil
}

// CurrentSalaries returns the active salary per user, with display names
// resolved where the user still exists.
func (s *SalaryService) CurrentSalaries(ctx context.Context) ([]core.SalaryAmount, error) {
	txns, err := s.store.ListActiveSalaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	out := make([]core.SalaryAmount, 0, len(txns))
	for _, t := range txns {
		sa := core.SalaryAmount{UserID: t.SalaryUserID, Amount: t.Amount}
		if u, err := s.store.GetUser(ctx, t.SalaryUserID); err == nil {
			sa.Name = u.Name
		}
		out = append(out, sa)
	}
	return out, nil
}

func (s *SalaryService) audit(ctx context.Context, userID, action, entity, entityID string) {
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
