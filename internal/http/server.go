package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/cache"
	applog "github.com/tibame201020/asset-frontend-app-sub000/internal/log"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/middleware/ratelimit"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/middleware/security"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/middleware/trace"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
)

// Config carries the server tunables.
type Config struct {
	Addr              string
	RequestsPerMinute int
	CacheTTL          time.Duration
	CacheSize         int
	Location          *time.Location

	// ReadyCheck is probed by the readiness endpoint; nil means always ready.
	ReadyCheck func(ctx context.Context) error
}

// Server is the JSON API over the record stores and report aggregators.
type Server struct {
	http.Server

	ledger    *services.LedgerService
	calendar  *services.CalendarService
	health    *services.HealthService
	dashboard *services.DashboardService
	rebuilder *services.SummaryRebuilder

	loc *time.Location

	limiter  *ratelimit.Limiter
	detector *security.Detector
	logs     *applog.HTTPLogger

	// Report responses are pre-marshaled and cached per domain+query;
	// mutations invalidate by domain prefix.
	reportCache  *cache.LRUCache[[]byte]
	cacheManager *cache.Manager

	readyCheck func(ctx context.Context) error

	startedAt    time.Time
	shutdownOnce sync.Once
}

func NewServer(cfg Config, ledger *services.LedgerService, calendar *services.CalendarService, health *services.HealthService, dashboard *services.DashboardService, rebuilder *services.SummaryRebuilder) *Server {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 100
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              cfg.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ledger:       ledger,
		calendar:     calendar,
		health:       health,
		dashboard:    dashboard,
		rebuilder:    rebuilder,
		loc:          loc,
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RequestsPerMinute}),
		detector:     security.NewDetector(),
		logs:         applog.NewHTTPLogger(applog.NewComponent(applog.ComponentHTTP)),
		reportCache:  cache.NewLRUCache[[]byte](cfg.CacheSize, cfg.CacheTTL),
		cacheManager: cache.NewManager(),
		readyCheck:   cfg.ReadyCheck,
		startedAt:    time.Now(),
	}

	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	s.routes(mux)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.detector.ExtractClientIP)
	limited := s.limiter.Middleware(s.detector.ExtractClientIP, nil)
	ctxLogger := applog.Middleware(applog.NewComponent(applog.ComponentHTTP))
	requestIDs := applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})

	handler := s.suspicionLog(limited(mux))
	handler = ctxLogger(requestIDs(handler))
	s.Handler = tracer.Middleware(headers.Middleware(handler))

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/budget-configs", s.handleListBudgetConfigs)
	mux.HandleFunc("POST /api/budget-configs", s.handleCreateBudgetConfig)
	mux.HandleFunc("PUT /api/budget-configs/{id}", s.handleUpdateBudgetConfig)
	mux.HandleFunc("DELETE /api/budget-configs/{id}", s.handleDeleteBudgetConfig)

	mux.HandleFunc("GET /api/calendar/events", s.handleListCalendarEvents)
	mux.HandleFunc("POST /api/calendar/events", s.handleCreateCalendarEvent)
	mux.HandleFunc("PUT /api/calendar/events/{id}", s.handleUpdateCalendarEvent)
	mux.HandleFunc("DELETE /api/calendar/events/{id}", s.handleDeleteCalendarEvent)

	mux.HandleFunc("GET /api/meals", s.handleListMealLogs)
	mux.HandleFunc("POST /api/meals", s.handleCreateMealLog)
	mux.HandleFunc("PUT /api/meals/{id}", s.handleUpdateMealLog)
	mux.HandleFunc("DELETE /api/meals/{id}", s.handleDeleteMealLog)
	mux.HandleFunc("GET /api/meal-types", s.handleListMealTypes)
	mux.HandleFunc("GET /api/meal-types/defaults", s.handleMealDefaults)
	mux.HandleFunc("POST /api/meal-types", s.handleCreateMealType)
	mux.HandleFunc("DELETE /api/meal-types/{id}", s.handleDeleteMealType)

	mux.HandleFunc("GET /api/exercises", s.handleListExerciseLogs)
	mux.HandleFunc("POST /api/exercises", s.handleCreateExerciseLog)
	mux.HandleFunc("PUT /api/exercises/{id}", s.handleUpdateExerciseLog)
	mux.HandleFunc("DELETE /api/exercises/{id}", s.handleDeleteExerciseLog)
	mux.HandleFunc("GET /api/exercise-types", s.handleListExerciseTypes)
	mux.HandleFunc("GET /api/exercise-types/defaults", s.handleExerciseDefaults)
	mux.HandleFunc("POST /api/exercise-types", s.handleCreateExerciseType)
	mux.HandleFunc("DELETE /api/exercise-types/{id}", s.handleDeleteExerciseType)

	mux.HandleFunc("GET /api/reports/categories", s.handleCategoryReport)
	mux.HandleFunc("GET /api/reports/daily", s.handleDailyReport)
	mux.HandleFunc("GET /api/reports/budget", s.handleBudgetReport)
	mux.HandleFunc("GET /api/reports/assets", s.handleAssetReport)
	mux.HandleFunc("GET /api/reports/overview", s.handleOverviewReport)
	mux.HandleFunc("GET /api/summaries", s.handleListSummaries)
}

// suspicionLog flags requests matching known scanner signatures. They are
// logged and counted, not blocked: the patterns are heuristics and the rate
// limiter already bounds abuse.
func (s *Server) suspicionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request",
				"method", r.Method,
				"path", r.URL.Path,
				"client_ip", s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

// recordChange logs a successful mutation and drops the report caches it
// staled.
func (s *Server) recordChange(r *http.Request, op, domain string, id int64, day string) {
	s.logs.LogRecordChange(r.Context(), op, domain, id, day)
	s.invalidateReports(domain)
}

// invalidateReports drops cached report payloads for a domain after a
// mutation. The overview mixes domains, so it goes too.
func (s *Server) invalidateReports(domain string) {
	s.reportCache.DeleteByPrefix(domain + "/")
	s.reportCache.DeleteByPrefix("overview/")
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
