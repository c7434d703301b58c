package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
)

func TestParseRange(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name     string
		query    string
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		{
			name:     "explicit range",
			query:    "from=2024-03-01&to=2024-03-31",
			wantFrom: "2024-03-01",
			wantTo:   "2024-03-31",
		},
		{
			name:     "single day range",
			query:    "from=2024-03-05&to=2024-03-05",
			wantFrom: "2024-03-05",
			wantTo:   "2024-03-05",
		},
		{name: "end before start", query: "from=2024-03-10&to=2024-03-01", wantErr: true},
		{name: "bad from", query: "from=yesterday&to=2024-03-01", wantErr: true},
		{name: "bad to", query: "from=2024-03-01&to=03/05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/transactions?"+tt.query, nil)
			from, to, err := parseRange(r, loc)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRange() error = %v", err)
			}
			if got := from.Format("2006-01-02"); got != tt.wantFrom {
				t.Errorf("from = %s, want %s", got, tt.wantFrom)
			}
			if got := to.Format("2006-01-02"); got != tt.wantTo {
				t.Errorf("to = %s, want %s", got, tt.wantTo)
			}
		})
	}
}

func TestParseRangeDefaultsToLast30Days(t *testing.T) {
	loc := time.UTC
	r := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)

	from, to, err := parseRange(r, loc)
	if err != nil {
		t.Fatalf("parseRange() error = %v", err)
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days != 30 {
		t.Errorf("default window = %d days, want 30", days)
	}
	now := time.Now().In(loc)
	if to.Format("2006-01-02") != now.Format("2006-01-02") {
		t.Errorf("default to = %s, want today", to.Format("2006-01-02"))
	}
}

func TestParseMonth(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{name: "valid month", query: "month=202405", want: 202405},
		{name: "december", query: "month=199912", want: 199912},
		{name: "month 13", query: "month=202413", wantErr: true},
		{name: "month 0", query: "month=202400", wantErr: true},
		{name: "not a number", query: "month=may", wantErr: true},
		{name: "too short", query: "month=2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/calendar/events?"+tt.query, nil)
			got, err := parseMonth(r, loc)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseMonth() = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMonth() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseMonth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMonthDefaultsToCurrent(t *testing.T) {
	loc := time.UTC
	r := httptest.NewRequest(http.MethodGet, "/api/calendar/events", nil)

	got, err := parseMonth(r, loc)
	if err != nil {
		t.Fatalf("parseMonth() error = %v", err)
	}
	now := time.Now().In(loc)
	if want := now.Year()*100 + int(now.Month()); got != want {
		t.Errorf("parseMonth() = %d, want %d", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		query   string
		want    report.DirectionFilter
		wantErr bool
	}{
		{query: "", want: report.DirectionAll},
		{query: "direction=all", want: report.DirectionAll},
		{query: "direction=income", want: report.DirectionIncome},
		{query: "direction=expense", want: report.DirectionExpense},
		{query: "direction=sideways", wantErr: true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/transactions?"+tt.query, nil)
		got, err := parseDirection(r)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDirection(%q): expected error", tt.query)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDirection(%q) error = %v", tt.query, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDirection(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "1", want: 1},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/transactions/x", nil)
		r.SetPathValue("id", tt.raw)
		got, err := pathID(r)
		if tt.wantErr {
			if err == nil {
				t.Errorf("pathID(%q) = %d, want error", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("pathID(%q) error = %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("pathID(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"line1\nline2", "line1\nline2"},
		{"null\x00byte", "nullbyte"},
		{"bell\x07ring", "bellring"},
		{"tab\tkept", "tab\tkept"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
