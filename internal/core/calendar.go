package core

import (
	"errors"
	"strings"
	"time"
)

// CalendarEventRecord is a scheduled event. DateStr is the authoring date in
// local time; Month is a coarse YYYYMM index derived from it.
type CalendarEventRecord struct {
	ID        int64
	Title     string
	DateStr   string
	Start     time.Time
	End       time.Time
	StartText string
	EndText   string
	Month     int
}

var (
	ErrEmptyTitle     = errors.New("empty title")
	ErrEndBeforeStart = errors.New("end must not be before start")
	ErrCrossDaySpan   = errors.New("start and end must fall on the same day")
)

// MonthIndex derives the YYYYMM index from a yyyy-MM-dd date string.
// Returns 0 for unparsable input.
func MonthIndex(dateStr string) int {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), time.Local)
	if err != nil {
		return 0
	}
	return t.Year()*100 + int(t.Month())
}

func (e CalendarEventRecord) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrZeroDate
	}
	if e.End.Before(e.Start) {
		return ErrEndBeforeStart
	}
	// Events never span midnight; both bounds belong to the authoring date.
	sy, sm, sd := e.Start.Date()
	ey, em, ed := e.End.Date()
	if sy != ey || sm != em || sd != ed {
		return ErrCrossDaySpan
	}
	if MonthIndex(e.DateStr) == 0 {
		return errors.New("invalid date string: " + e.DateStr)
	}
	return nil
}

// WithDerivedFields returns a copy with Month and the display-only HH:MM
// texts recomputed from the authoritative timestamps.
func (e CalendarEventRecord) WithDerivedFields() CalendarEventRecord {
	e.Month = MonthIndex(e.DateStr)
	e.StartText = e.Start.Format("15:04")
	e.EndText = e.End.Format("15:04")
	return e
}

func (e CalendarEventRecord) SearchFields() []string {
	return []string{e.DateStr, e.Title, e.StartText, e.EndText}
}
