package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
)

// reportDomain reads the domain query parameter, defaulting to the ledger.
func reportDomain(r *http.Request) string {
	d := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("domain")))
	if d == "" {
		return services.DomainLedger
	}
	return d
}

// serveCached answers from the report cache when it can, otherwise runs
// build, stores the marshaled payload under key, and serves it. Cache keys
// are "<domain>/<report>?<query>" so mutations can invalidate by prefix.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key string, build func() (any, error)) {
	if body, ok := s.reportCache.Get(key); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}
	payload, err := build()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.reportCache.Set(key, body)
	writeRawJSON(w, http.StatusOK, body)
}

func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
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
	domain := reportDomain(r)
	key := domain + "/categories?" + r.URL.RawQuery
	s.serveCached(w, r, key, func() (any, error) {
		return s.dashboard.CategoryReport(r.Context(), domain, from, to, keywordParam(r), dir)
	})
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
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
	domain := reportDomain(r)
	key := domain + "/daily?" + r.URL.RawQuery
	s.serveCached(w, r, key, func() (any, error) {
		return s.dashboard.DailyReport(r.Context(), domain, from, to, keywordParam(r), dir)
	})
}

func (s *Server) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	key := services.DomainBudget + "/summary?" + r.URL.RawQuery
	s.serveCached(w, r, key, func() (any, error) {
		return s.dashboard.BudgetReport(r.Context(), time.Now().In(s.loc))
	})
}

func (s *Server) handleAssetReport(w http.ResponseWriter, r *http.Request) {
	key := services.DomainBudget + "/assets?" + r.URL.RawQuery
	s.serveCached(w, r, key, func() (any, error) {
		return s.dashboard.AssetReport(r.Context(), time.Now().In(s.loc))
	})
}

func (s *Server) handleOverviewReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	key := "overview/?" + r.URL.RawQuery
	s.serveCached(w, r, key, func() (any, error) {
		return s.dashboard.BuildOverview(r.Context(), from, to, time.Now().In(s.loc))
	})
}

func (s *Server) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summaries, err := s.rebuilder.Summaries(r.Context(), reportDomain(r),
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
