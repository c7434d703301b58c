package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	applog "github.com/tibame201020/asset-frontend-app-sub000/internal/log"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
)

// calendarEventPayload is the calendar event wire form. Start and end are
// HH:MM clock times on the event's date.
type calendarEventPayload struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type calendarEventResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Month int    `json:"month"`
}

func (p calendarEventPayload) toRecord(id int64, loc *time.Location) core.CalendarEventRecord {
	e := core.CalendarEventRecord{
		ID:      id,
		Title:   sanitizeInput(p.Title),
		DateStr: strings.TrimSpace(p.Date),
	}
	e.Start = combineDayTime(e.DateStr, p.Start, loc)
	e.End = combineDayTime(e.DateStr, p.End, loc)
	return e.WithDerivedFields()
}

// combineDayTime builds a timestamp from a yyyy-MM-dd date and an HH:MM
// clock reading. Either part failing to parse yields the zero time, which
// record validation rejects.
func combineDayTime(dateStr, clock string, loc *time.Location) time.Time {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), loc)
	if err != nil {
		return time.Time{}
	}
	hm, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc)
}

func toCalendarEventResponse(e core.CalendarEventRecord) calendarEventResponse {
	return calendarEventResponse{
		ID:    e.ID,
		Title: e.Title,
		Date:  e.DateStr,
		Start: e.StartText,
		End:   e.EndText,
		Month: e.Month,
	}
}

func (s *Server) handleListCalendarEvents(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := s.calendar.EventsForMonth(r.Context(), month, keywordParam(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]calendarEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toCalendarEventResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	var payload calendarEventPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.calendar.CreateEvent(r.Context(), payload.toRecord(0, s.loc))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpCreate, services.DomainCalendar, id, payload.Date)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload calendarEventPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.calendar.UpdateEvent(r.Context(), payload.toRecord(id, s.loc)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpUpdate, services.DomainCalendar, id, payload.Date)
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteCalendarEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.calendar.DeleteEvent(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpDelete, services.DomainCalendar, id, "")
	w.WriteHeader(http.StatusNoContent)
}
