package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	loc := time.UTC
	srv := NewServer(Config{
		Addr:              ":0",
		RequestsPerMinute: 10000,
		CacheTTL:          time.Minute,
		CacheSize:         32,
		Location:          loc,
		ReadyCheck:        repo.Ping,
	},
		services.NewLedgerService(repo, nil, loc),
		services.NewCalendarService(repo, nil, loc),
		services.NewHealthService(repo, nil, loc),
		services.NewDashboardService(repo, loc),
		services.NewSummaryRebuilder(repo, loc),
	)
	t.Cleanup(func() { srv.cacheManager.Stop(); srv.limiter.Stop() })
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndReadiness(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}
}

func TestTransactionLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-05","type":"expense","category":"Food","name":"Lunch","amount":120}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var created idResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("parse create response: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("create returned zero id")
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/transactions?from=2024-03-01&to=2024-03-31", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var listed []transactionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("parse list response: %v", err)
	}
	if len(listed) != 1 || listed[0].Category != "Food" || listed[0].Amount != 120 {
		t.Fatalf("list = %+v", listed)
	}

	rr = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/transactions/%d", created.ID),
		`{"date":"2024-03-06","type":"expense","category":"Food","name":"Dinner","amount":80}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", created.ID), "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/transactions?from=2024-03-01&to=2024-03-31", "")
	listed = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("parse list response: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", listed)
	}
}

func TestCreateTransactionLegacyWireForm(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-05","type":"支出","category":"Food","name":"Lunch","value":-120,"ps":"street food"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("legacy create status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/transactions?from=2024-03-01&to=2024-03-31", "")
	var listed []transactionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("parse list response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(listed))
	}
	got := listed[0]
	if got.Type != "expense" || got.Amount != 120 || got.Note != "street food" {
		t.Fatalf("legacy translation = %+v", got)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"malformed JSON", `{"date":`, http.StatusBadRequest},
		{"missing category", `{"date":"2024-03-05","type":"expense","name":"X","amount":10}`, http.StatusBadRequest},
		{"bad direction", `{"date":"2024-03-05","type":"sideways","category":"Food","name":"X","amount":10}`, http.StatusBadRequest},
		{"negative amount", `{"date":"2024-03-05","type":"expense","category":"Food","name":"X","amount":-10}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, srv, http.MethodPost, "/api/transactions", tc.body)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tc.want, rr.Body.String())
			}
		})
	}
}

func TestUpdateMissingTransactionReturns404(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPut, "/api/transactions/999",
		`{"date":"2024-03-05","type":"expense","category":"Food","name":"X","amount":10}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rr.Code, rr.Body.String())
	}
}

func TestCalendarEventsByMonth(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/calendar/events",
		`{"title":"Dentist","date":"2024-05-09","start":"09:00","end":"09:30"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create event status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/calendar/events?month=202405", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list events status = %d", rr.Code)
	}
	var events []calendarEventResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &events); err != nil {
		t.Fatalf("parse events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Dentist" || events[0].Start != "09:00" {
		t.Fatalf("events = %+v", events)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/calendar/events?month=202406", "")
	events = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &events); err != nil {
		t.Fatalf("parse events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events in other month, got %+v", events)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/calendar/events?month=20245", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad month status = %d", rr.Code)
	}
}

func TestCalendarEventValidation(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/calendar/events",
		`{"title":"Backwards","date":"2024-05-09","start":"10:00","end":"09:00"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("end-before-start status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodPost, "/api/calendar/events",
		`{"title":"","date":"2024-05-09","start":"09:00","end":"10:00"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty title status = %d", rr.Code)
	}
}

func TestMealTypeDefaults(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/meal-types",
		`{"name":"Breakfast","icon":"🍳","default_calories":450}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create meal type status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/meal-types/defaults?name=breakfast", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("defaults status = %d", rr.Code)
	}
	var defaults struct {
		Calories float64 `json:"calories"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &defaults); err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	if defaults.Calories != 450 {
		t.Fatalf("calories = %v, want 450", defaults.Calories)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/meal-types/defaults", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing name status = %d", rr.Code)
	}
}

func TestExerciseDefaultsDeriveCalories(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/exercise-types",
		`{"name":"Running","default_duration":30,"kcal_per_hour":600}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create exercise type status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/exercise-types/defaults?name=Running", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("defaults status = %d", rr.Code)
	}
	var defaults struct {
		Duration float64 `json:"duration"`
		Calories float64 `json:"calories"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &defaults); err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	if defaults.Duration != 30 || defaults.Calories != 300 {
		t.Fatalf("defaults = %+v, want 30 min / 300 kcal", defaults)
	}
}

func TestMealLogLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/meals",
		`{"date":"2024-03-05","type":"Lunch","calories":650,"note":"noodles"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create meal status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/meals?from=2024-03-01&to=2024-03-31&keyword=noodles", "")
	var meals []mealLogResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &meals); err != nil {
		t.Fatalf("parse meals: %v", err)
	}
	if len(meals) != 1 || meals[0].Calories != 650 {
		t.Fatalf("meals = %+v", meals)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/meals?from=2024-03-01&to=2024-03-31&keyword=pizza", "")
	meals = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &meals); err != nil {
		t.Fatalf("parse meals: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("keyword should exclude, got %+v", meals)
	}
}

func TestCategoryReportReflectsMutations(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-05","type":"expense","category":"Food","name":"Lunch","amount":50}`)

	path := "/api/reports/categories?from=2024-03-01&to=2024-03-31&direction=expense"
	rr := doJSON(t, srv, http.MethodGet, path, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("report status = %d", rr.Code)
	}
	var slices []report.Slice
	if err := json.Unmarshal(rr.Body.Bytes(), &slices); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if len(slices) != 1 || slices[0].Value != 50 {
		t.Fatalf("slices = %+v", slices)
	}

	// A second identical request must be served from cache with the same
	// payload, and a mutation must invalidate it.
	rr = doJSON(t, srv, http.MethodGet, path, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("cached report status = %d", rr.Code)
	}

	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-06","type":"expense","category":"Transport","name":"Bus","amount":30}`)

	rr = doJSON(t, srv, http.MethodGet, path, "")
	slices = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &slices); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if len(slices) != 2 {
		t.Fatalf("expected invalidated report with 2 slices, got %+v", slices)
	}
}

func TestDailyReportGapFills(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-01","type":"expense","category":"Food","name":"A","amount":10}`)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-03","type":"expense","category":"Food","name":"B","amount":20}`)

	rr := doJSON(t, srv, http.MethodGet, "/api/reports/daily?from=2024-03-01&to=2024-03-03", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("daily report status = %d", rr.Code)
	}
	var series report.DailySeries
	if err := json.Unmarshal(rr.Body.Bytes(), &series); err != nil {
		t.Fatalf("parse series: %v", err)
	}
	if len(series.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(series.Rows))
	}
	if series.Rows[1].Total != 0 {
		t.Fatalf("middle day total = %v, want 0", series.Rows[1].Total)
	}
}

func TestDailyReportHonorsKeywordAndDirection(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-01","type":"expense","category":"Food","name":"Lunch","amount":50}`)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-02","type":"expense","category":"Transport","name":"Bus","amount":30}`)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-03","type":"income","category":"Salary","name":"March","amount":2000}`)

	getSeries := func(path string) report.DailySeries {
		t.Helper()
		rr := doJSON(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("daily report status = %d, body = %s", rr.Code, rr.Body.String())
		}
		var series report.DailySeries
		if err := json.Unmarshal(rr.Body.Bytes(), &series); err != nil {
			t.Fatalf("parse series: %v", err)
		}
		return series
	}

	series := getSeries("/api/reports/daily?from=2024-03-01&to=2024-03-03&keyword=Food")
	if len(series.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(series.Rows))
	}
	if series.Rows[0].ExpenseTotal != 50 {
		t.Fatalf("day 1 expense = %v, want 50", series.Rows[0].ExpenseTotal)
	}
	if series.Rows[1].ExpenseTotal != 0 || series.Rows[2].IncomeTotal != 0 {
		t.Fatalf("unfiltered records leaked: %+v", series.Rows)
	}
	if len(series.Categories) != 1 || series.Categories[0] != "Food" {
		t.Fatalf("categories = %v, want [Food]", series.Categories)
	}

	// A different keyword must not be served the cached Food payload.
	series = getSeries("/api/reports/daily?from=2024-03-01&to=2024-03-03&keyword=Transport")
	if series.Rows[1].ExpenseTotal != 30 || series.Rows[0].ExpenseTotal != 0 {
		t.Fatalf("keyword cache mixup: %+v", series.Rows)
	}

	series = getSeries("/api/reports/daily?from=2024-03-01&to=2024-03-03&direction=income")
	if series.Rows[2].IncomeTotal != 2000 || series.Rows[0].ExpenseTotal != 0 {
		t.Fatalf("direction filter ignored: %+v", series.Rows)
	}

	rr := doJSON(t, srv, http.MethodGet, "/api/reports/daily?direction=sideways", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad direction status = %d", rr.Code)
	}
}

func TestOverviewReport(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-05","type":"income","category":"Salary","name":"March","amount":3000}`)
	doJSON(t, srv, http.MethodPost, "/api/budget-configs",
		`{"frequency":"monthly","purpose":"rent","amount":-900,"description":"Rent"}`)

	rr := doJSON(t, srv, http.MethodGet, "/api/reports/overview?from=2024-03-01&to=2024-03-31", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("overview status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var overview services.Overview
	if err := json.Unmarshal(rr.Body.Bytes(), &overview); err != nil {
		t.Fatalf("parse overview: %v", err)
	}
	if overview.Budget.ExpenseTotal != 900 {
		t.Fatalf("budget expense total = %v, want 900", overview.Budget.ExpenseTotal)
	}
}

func TestUnknownReportDomainRejected(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodGet, "/api/reports/categories?domain=nonsense&from=2024-03-01&to=2024-03-02", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unknown domain status = %d, want 500", rr.Code)
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got == "" {
		t.Fatal("missing X-Frame-Options header")
	}
}
