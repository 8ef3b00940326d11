package http

import (
	"net/http"
	"strings"

	"bilancio/internal/core"
	"bilancio/internal/metrics"
)

type salaryUpdateResponse struct {
	Message         string             `json:"message"`
	OldSalaryTotal  float64            `json:"old_salary_total"`
	NewSalary       float64            `json:"new_salary"`
	CurrentSalaries []salaryAmountView `json:"current_salaries"`
}

// handleUpdateSalary replaces the caller's salary with a new amount,
// given as decimal euros in the new_salary query parameter.
func (s *Server) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("new_salary"))
	if raw == "" {
		respondError(w, r, badRequestf("new_salary query parameter is required"))
		return
	}
	cents, err := core.ParseDecimalToCents(raw)
	if err != nil {
		respondError(w, r, badRequestf("invalid new_salary: %v", err))
		return
	}

	res, err := s.salaries.Update(r.Context(), currentUser(r), core.Money{Cents: cents})
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	metrics.SalaryUpdatesTotal.Inc()

	out := salaryUpdateResponse{
		Message:         "Salary updated successfully",
		OldSalaryTotal:  res.OldSalaryTotal.Euros(),
		NewSalary:       res.NewSalary.Euros(),
		CurrentSalaries: make([]salaryAmountView, 0, len(res.CurrentSalaries)),
	}
	for _, sa := range res.CurrentSalaries {
		out.CurrentSalaries = append(out.CurrentSalaries, salaryAmountView{
			UserID: sa.UserID, Name: sa.Name, Amount: sa.Amount.Euros(),
		})
	}
	respondJSON(w, http.StatusOK, out)
}
