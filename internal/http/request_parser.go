package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads and decodes a JSON request body with a size cap.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parse JSON body: %w", err)
	}
	return nil
}

// pathID extracts the {id} path segment as an int64.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// parseDay parses a yyyy-MM-dd value in loc. Plain date strings are the
// API's range vocabulary; instants stay internal.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(value), loc)
}

// parseRange reads from/to day parameters, defaulting to the last 30 days.
// The range is inclusive on both ends.
func parseRange(r *http.Request, loc *time.Location) (from, to time.Time, err error) {
	now := time.Now().In(loc)
	to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	from = to.AddDate(0, 0, -29)

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		from, err = parseDay(v, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from %q", v)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		to, err = parseDay(v, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to %q", v)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("range end before start")
	}
	return from, to, nil
}

// parseMonth reads a YYYYMM month index, defaulting to the current month.
func parseMonth(r *http.Request, loc *time.Location) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		now := time.Now().In(loc)
		return now.Year()*100 + int(now.Month()), nil
	}
	month, err := strconv.Atoi(v)
	if err != nil || month < 100001 || month%100 < 1 || month%100 > 12 {
		return 0, fmt.Errorf("invalid month %q", v)
	}
	return month, nil
}

// parseDirection maps the direction query parameter onto a filter. Blank
// means no direction filtering.
func parseDirection(r *http.Request) (report.DirectionFilter, error) {
	switch v := strings.TrimSpace(r.URL.Query().Get("direction")); v {
	case "", string(report.DirectionAll):
		return report.DirectionAll, nil
	case string(report.DirectionIncome):
		return report.DirectionIncome, nil
	case string(report.DirectionExpense):
		return report.DirectionExpense, nil
	default:
		return "", fmt.Errorf("invalid direction %q", r.URL.Query().Get("direction"))
	}
}

// keywordParam returns the sanitized keyword filter.
func keywordParam(r *http.Request) string {
	return sanitizeInput(r.URL.Query().Get("keyword"))
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
