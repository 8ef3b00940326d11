package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store"
)

// DashboardService aggregates the month's financial picture.
type DashboardService struct {
	store       store.Store
	logger      *log.Logger
	now         func() time.Time
	horizonDays int
	recentLimit int
}

func NewDashboardService(st store.Store, logger *log.Logger, horizonDays, recentLimit int) *DashboardService {
	if horizonDays <= 0 {
		horizonDays = 30
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &DashboardService{
		store:       st,
		logger:      logger,
		now:         time.Now,
		horizonDays: horizonDays,
		recentLimit: recentLimit,
	}
}

// ComputeStats builds the dashboard for the given month. Zero year or
// month means the current one. Records that fail validation are skipped
// and reported as warnings rather than failing the whole dashboard.
func (s *DashboardService) ComputeStats(ctx context.Context, year, month int) (*core.DashboardStats, error) {
	now := s.now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	stats := &core.DashboardStats{Year: year, Month: month}

	txns, err := s.store.ListTransactions(ctx, store.TransactionFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	bills, err := s.store.ListBills(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	categories, err := s.store.ListCategories(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categoryName := make(map[string]string, len(categories))
	for _, c := range categories {
		if !c.Deleted {
			categoryName[c.ID] = c.Name
		}
	}
	resolveCategory := func(id string) string {
		if name, ok := categoryName[id]; ok {
			return name
		}
		return core.MiscellaneousCategory
	}

	byCategory := make(map[string]int64)

	for _, t := range txns {
		if t.Amount.Cents <= 0 {
			stats.Warnings = append(stats.Warnings, core.IntegrityWarning{
				Entity: "transaction", ID: t.ID, Reason: "non-positive amount",
			})
			continue
		}
		switch t.Type {
		case core.Income:
			stats.TotalIncome.Cents += t.Amount.Cents
		case core.Expense:
			// Bill-linked payments are counted through the bill's
			// expected amount, not again here.
			if t.BillID != "" {
				continue
			}
			stats.TotalExpenses.Cents += t.Amount.Cents
			byCategory[resolveCategory(t.CategoryID)] += t.Amount.Cents
		}
	}

	for _, b := range bills {
		if b.DueDay < 1 || b.DueDay > 31 || b.ExpectedAmount.Cents <= 0 {
			stats.Warnings = append(stats.Warnings, core.IntegrityWarning{
				Entity: "bill", ID: b.ID, Reason: "invalid due day or amount",
			})
			continue
		}
		// Each active monthly bill counts once per month.
		stats.TotalExpenses.Cents += b.ExpectedAmount.Cents
		byCategory[resolveCategory(b.CategoryID)] += b.ExpectedAmount.Cents

		due := NextDueDate(now, b.DueDay)
		if !due.After(now.AddDate(0, 0, s.horizonDays)) {
			stats.UpcomingBills = append(stats.UpcomingBills, core.UpcomingBill{Bill: b, DueDate: due})
		}
	}

	stats.MonthlySurplus.Cents = stats.TotalIncome.Cents - stats.TotalExpenses.Cents
	if stats.TotalIncome.Cents > 0 {
		rate := float64(stats.MonthlySurplus.Cents) / float64(stats.TotalIncome.Cents) * 100
		stats.SavingsRate = math.Round(rate*10) / 10
	}

	stats.CategoryBreakdown = make([]core.CategoryAmount, 0, len(byCategory))
	for name, cents := range byCategory {
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, core.CategoryAmount{
			Name: name, Amount: core.Money{Cents: cents},
		})
	}
	sort.Slice(stats.CategoryBreakdown, func(i, j int) bool {
		a, b := stats.CategoryBreakdown[i], stats.CategoryBreakdown[j]
		if a.Amount.Cents != b.Amount.Cents {
			return a.Amount.Cents > b.Amount.Cents
		}
		return a.Name < b.Name
	})

	sort.Slice(stats.UpcomingBills, func(i, j int) bool {
		a, b := stats.UpcomingBills[i], stats.UpcomingBills[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.Bill.Name < b.Bill.Name
	})

	recent, err := s.store.ListTransactions(ctx, store.TransactionFilter{Limit: s.recentLimit})
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	stats.RecentTransactions = recent

	salaries, err := s.store.ListActiveSalaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	for _, t := range salaries {
		sa := core.SalaryAmount{UserID: t.SalaryUserID, Amount: t.Amount}
		if u, err := s.store.GetUser(ctx, t.SalaryUserID); err == nil {
			sa.Name = u.Name
		}
		stats.CurrentSalaries = append(stats.CurrentSalaries, sa)
	}

	if len(stats.Warnings) > 0 {
		s.logger.Warn("dashboard skipped inconsistent records", "count", len(stats.Warnings))
	}
	return stats, nil
}
