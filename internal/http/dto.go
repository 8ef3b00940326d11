package http

import (
	"time"

	"bilancio/internal/core"
)

// JSON views. Amounts cross the wire as decimal euros, matching what
// the frontend renders.

type userView struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"is_active"`
}

func toUserView(u *core.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), Active: u.Active}
}

type accountView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Currency       string  `json:"currency"`
	OpeningBalance float64 `json:"opening_balance"`
	CurrentBalance float64 `json:"current_balance"`
	Active         bool    `json:"is_active"`
}

func toAccountView(a core.Account) accountView {
	return accountView{
		ID: a.ID, Name: a.Name, Type: a.Type, Currency: a.Currency,
		OpeningBalance: a.OpeningBalance.Euros(),
		CurrentBalance: a.CurrentBalance.Euros(),
		Active:         a.Active,
	}
}

type categoryView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Recurring bool   `json:"is_recurring"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
}

func toCategoryView(c core.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name, Type: string(c.Type), Recurring: c.Recurring, Icon: c.Icon, Color: c.Color}
}

type billView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Provider       string  `json:"provider,omitempty"`
	CategoryID     string  `json:"category_id,omitempty"`
	AccountID      string  `json:"account_id,omitempty"`
	Recurrence     string  `json:"recurrence"`
	DueDay         int     `json:"due_day"`
	ExpectedAmount float64 `json:"expected_amount"`
	Autopay        bool    `json:"autopay"`
	Active         bool    `json:"is_active"`
}

func toBillView(b core.Bill) billView {
	return billView{
		ID: b.ID, Name: b.Name, Provider: b.Provider,
		CategoryID: b.CategoryID, AccountID: b.AccountID,
		Recurrence: string(b.Recurrence), DueDay: b.DueDay,
		ExpectedAmount: b.ExpectedAmount.Euros(),
		Autopay:        b.Autopay, Active: b.Active,
	}
}

type transactionView struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	AccountID   string  `json:"account_id,omitempty"`
	CategoryID  string  `json:"category_id,omitempty"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
	BillID      string  `json:"bill_id,omitempty"`
	Recurring   bool    `json:"is_recurring"`
}

func toTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID: t.ID, Type: string(t.Type), AccountID: t.AccountID, CategoryID: t.CategoryID,
		Amount: t.Amount.Euros(), Description: t.Description,
		Date: t.Date.UTC().Format(time.RFC3339), BillID: t.BillID, Recurring: t.Recurring,
	}
}

type eventView struct {
	ID         string   `json:"id"`
	CalendarID string   `json:"calendar_id"`
	Title      string   `json:"title"`
	Notes      string   `json:"notes,omitempty"`
	Location   string   `json:"location,omitempty"`
	Start      string   `json:"start"`
	End        string   `json:"end,omitempty"`
	AllDay     bool     `json:"all_day"`
	Tags       []string `json:"tags,omitempty"`
	Reminders  []int    `json:"reminder_minutes,omitempty"`
	SourceType string   `json:"source_type,omitempty"`
	SourceID   string   `json:"source_id,omitempty"`
}

func toEventView(e core.Event) eventView {
	v := eventView{
		ID: e.ID, CalendarID: e.CalendarID, Title: e.Title, Notes: e.Notes,
		Location: e.Location, Start: e.Start.UTC().Format(time.RFC3339),
		AllDay: e.AllDay, Tags: e.Tags, Reminders: e.Reminders,
		SourceType: e.SourceType, SourceID: e.SourceID,
	}
	if !e.End.IsZero() {
		v.End = e.End.UTC().Format(time.RFC3339)
	}
	return v
}

type budgetView struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	LimitAmount float64 `json:"limit_amount"`
	SpentAmount float64 `json:"spent_amount"`
}

func toBudgetView(b core.Budget) budgetView {
	return budgetView{
		ID: b.ID, CategoryID: b.CategoryID, Month: b.Month, Year: b.Year,
		LimitAmount: b.LimitAmount.Euros(),
		SpentAmount: b.SpentAmount.Euros(),
	}
}

type calendarView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Scope   string `json:"scope"`
	Default bool   `json:"is_default"`
	Color   string `json:"color,omitempty"`
}

func toCalendarView(c core.Calendar) calendarView {
	return calendarView{ID: c.ID, Name: c.Name, Scope: c.Scope, Default: c.Default, Color: c.Color}
}

type upcomingBillView struct {
	billView
	DueDate string `json:"due_date"`
}

func toUpcomingBillView(u core.UpcomingBill) upcomingBillView {
	return upcomingBillView{billView: toBillView(u.Bill), DueDate: u.DueDate.Format("2006-01-02")}
}

type categoryAmountView struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type salaryAmountView struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name,omitempty"`
	Amount float64 `json:"amount"`
}

type warningView struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type dashboardView struct {
	Year               int                  `json:"year"`
	Month              int                  `json:"month"`
	TotalIncome        float64              `json:"total_income"`
	TotalExpenses      float64              `json:"total_expenses"`
	MonthlySurplus     float64              `json:"monthly_surplus"`
	SavingsRate        float64              `json:"savings_rate"`
	CategoryBreakdown  []categoryAmountView `json:"category_breakdown"`
	UpcomingBills      []upcomingBillView   `json:"upcoming_bills"`
	RecentTransactions []transactionView    `json:"recent_transactions"`
	CurrentSalaries    []salaryAmountView   `json:"current_salaries"`
	Warnings           []warningView        `json:"warnings,omitempty"`
}

func toDashboardView(s *core.DashboardStats) dashboardView {
	v := dashboardView{
		Year:               s.Year,
		Month:              s.Month,
		TotalIncome:        s.TotalIncome.Euros(),
		TotalExpenses:      s.TotalExpenses.Euros(),
		MonthlySurplus:     s.MonthlySurplus.Euros(),
		SavingsRate:        s.SavingsRate,
		CategoryBreakdown:  make([]categoryAmountView, 0, len(s.CategoryBreakdown)),
		UpcomingBills:      make([]upcomingBillView, 0, len(s.UpcomingBills)),
		RecentTransactions: make([]transactionView, 0, len(s.RecentTransactions)),
		CurrentSalaries:    make([]salaryAmountView, 0, len(s.CurrentSalaries)),
	}
	for _, c := range s.CategoryBreakdown {
		v.CategoryBreakdown = append(v.CategoryBreakdown, categoryAmountView{Name: c.Name, Amount: c.Amount.Euros()})
	}
	for _, b := range s.UpcomingBills {
		v.UpcomingBills = append(v.UpcomingBills, toUpcomingBillView(b))
	}
	for _, t := range s.RecentTransactions {
		v.RecentTransactions = append(v.RecentTransactions, toTransactionView(t))
	}
	for _, sa := range s.CurrentSalaries {
		v.CurrentSalaries = append(v.CurrentSalaries, salaryAmountView{UserID: sa.UserID, Name: sa.Name, Amount: sa.Amount.Euros()})
	}
	for _, w := range s.Warnings {
		v.Warnings = append(v.Warnings, warningView{Entity: w.Entity, ID: w.ID, Reason: w.Reason})
	}
	return v
}

type agendaItemView struct {
	Date  string            `json:"date"`
	Kind  string            `json:"kind"`
	Event *eventView        `json:"event,omitempty"`
	Bill  *upcomingBillView `json:"bill,omitempty"`
}

type agendaView struct {
	From          string             `json:"from"`
	Days          int                `json:"days"`
	Events        []eventView        `json:"events"`
	UpcomingBills []upcomingBillView `json:"upcoming_bills"`
	Items         []agendaItemView   `json:"items"`
}

func toAgendaView(a *core.Agenda) agendaView {
	v := agendaView{
		From:          a.From.Format("2006-01-02"),
		Days:          a.Days,
		Events:        make([]eventView, 0, len(a.Events)),
		UpcomingBills: make([]upcomingBillView, 0, len(a.UpcomingBills)),
		Items:         make([]agendaItemView, 0, len(a.Items)),
	}
	for _, e := range a.Events {
		v.Events = append(v.Events, toEventView(e))
	}
	for _, b := range a.UpcomingBills {
		v.UpcomingBills = append(v.UpcomingBills, toUpcomingBillView(b))
	}
	for _, it := range a.Items {
		iv := agendaItemView{Date: it.Date.Format("2006-01-02")}
		if it.Event != nil {
			iv.Kind = "event"
			ev := toEventView(*it.Event)
			iv.Event = &ev
		} else if it.Bill != nil {
			iv.Kind = "bill"
			bv := toUpcomingBillView(*it.Bill)
			iv.Bill = &bv
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

type auditView struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

func toAuditView(r core.AuditRecord) auditView {
	return auditView{
		ID: r.ID, UserID: r.UserID, Action: r.Action,
		Entity: r.Entity, EntityID: r.EntityID,
		Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
	}
}
