package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	applog "github.com/tibame201020/asset-frontend-app-sub000/internal/log"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
)

// transactionPayload is the transaction wire form. It accepts both the
// canonical shape (type + non-negative amount) and the legacy shape (signed
// value, note under "ps"); when both amount and value appear, amount wins.
type transactionPayload struct {
	Date     string   `json:"date"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Amount   *float64 `json:"amount"`
	Value    *float64 `json:"value"`
	Note     string   `json:"note"`
	PS       string   `json:"ps"`
}

type transactionResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

func (p transactionPayload) toRecord(loc *time.Location) (core.TransactionRecord, error) {
	if p.Amount == nil && p.Value != nil {
		return core.FromLegacy(core.LegacyTransaction{
			Date:     p.Date,
			Type:     p.Type,
			Category: sanitizeInput(p.Category),
			Name:     sanitizeInput(p.Name),
			Value:    *p.Value,
			Note:     sanitizeInput(firstNonEmpty(p.Note, p.PS)),
		}), nil
	}

	var amount float64
	if p.Amount != nil {
		amount = *p.Amount
	}

	occurred, err := parseDay(p.Date, loc)
	if err != nil {
		occurred = time.Time{}
	}

	return core.TransactionRecord{
		OccurredOn: occurred,
		Direction:  core.Direction(strings.ToLower(strings.TrimSpace(p.Type))),
		Category:   sanitizeInput(p.Category),
		Name:       sanitizeInput(p.Name),
		Amount:     amount,
		Note:       sanitizeInput(firstNonEmpty(p.Note, p.PS)),
	}, nil
}

func toTransactionResponse(rec core.TransactionRecord, loc *time.Location) transactionResponse {
	return transactionResponse{
		ID:       rec.ID,
		Date:     rec.OccurredOn.In(loc).Format("2006-01-02"),
		Type:     string(rec.Direction),
		Category: rec.Category,
		Name:     rec.Name,
		Amount:   rec.Amount,
		Note:     rec.Note,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dir, err := parseDirection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.ledger.ListTransactions(r.Context(), from, to, keywordParam(r), dir)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toTransactionResponse(rec, s.loc))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload transactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := payload.toRecord(s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.ledger.CreateTransaction(r.Context(), rec)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.recordChange(r, applog.OpCreate, services.DomainLedger, id, payload.Date)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload transactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := payload.toRecord(s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec.ID = id

	if err := s.ledger.UpdateTransaction(r.Context(), rec); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.recordChange(r, applog.OpUpdate, services.DomainLedger, id, payload.Date)
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.recordChange(r, applog.OpDelete, services.DomainLedger, id, "")
	w.WriteHeader(http.StatusNoContent)
}

// budgetConfigPayload is the recurring entry wire form. Amount keeps its
// sign: positive is income, negative is an outgo.
type budgetConfigPayload struct {
	Frequency   string  `json:"frequency"`
	Purpose     string  `json:"purpose"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type budgetConfigResponse struct {
	ID          int64   `json:"id"`
	Frequency   string  `json:"frequency"`
	Purpose     string  `json:"purpose"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (p budgetConfigPayload) toConfig() core.RecurringBudgetConfig {
	return core.RecurringBudgetConfig{
		Frequency:   core.Frequency(strings.ToLower(strings.TrimSpace(p.Frequency))),
		Purpose:     core.NormalizePurpose(p.Purpose),
		Amount:      p.Amount,
		Description: sanitizeInput(p.Description),
	}
}

func (s *Server) handleListBudgetConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.ledger.ListBudgetConfigs(r.Context(), keywordParam(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]budgetConfigResponse, 0, len(configs))
	for _, c := range configs {
		out = append(out, budgetConfigResponse{
			ID:          c.ID,
			Frequency:   string(c.Frequency),
			Purpose:     string(c.Purpose),
			Amount:      c.Amount,
			Description: c.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBudgetConfig(w http.ResponseWriter, r *http.Request) {
	var payload budgetConfigPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.ledger.CreateBudgetConfig(r.Context(), payload.toConfig())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.recordChange(r, applog.OpCreate, services.DomainBudget, id, "")
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateBudgetConfig(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload budgetConfigPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := payload.toConfig()
	cfg.ID = id

	if err := s.ledger.UpdateBudgetConfig(r.Context(), cfg); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.recordChange(r, applog.OpUpdate, services.DomainBudget, id, "")
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteBudgetConfig(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledger.DeleteBudgetConfig(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.recordChange(r, applog.OpDelete, services.DomainBudget, id, "")
	w.WriteHeader(http.StatusNoContent)
}
