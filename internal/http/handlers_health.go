package http

import (
	"net/http"
	"strings"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	applog "github.com/tibame201020/asset-frontend-app-sub000/internal/log"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
)

type mealLogPayload struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Calories float64 `json:"calories"`
	Note     string  `json:"note"`
}

type mealLogResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Calories float64 `json:"calories"`
	Note     string  `json:"note"`
}

type exerciseLogPayload struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Duration float64 `json:"duration"`
	Calories float64 `json:"calories"`
	Note     string  `json:"note"`
}

type exerciseLogResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Duration float64 `json:"duration"`
	Calories float64 `json:"calories"`
	Note     string  `json:"note"`
}

type mealTypePayload struct {
	Name            string  `json:"name"`
	Icon            string  `json:"icon"`
	DefaultCalories float64 `json:"default_calories"`
}

type exerciseTypePayload struct {
	Name            string  `json:"name"`
	Icon            string  `json:"icon"`
	DefaultDuration float64 `json:"default_duration"`
	KcalPerHour     float64 `json:"kcal_per_hour"`
}

func (p mealLogPayload) toRecord(id int64, s *Server) core.MealLogRecord {
	occurred, _ := parseDay(p.Date, s.loc)
	return core.MealLogRecord{
		ID:         id,
		OccurredOn: occurred,
		TypeName:   sanitizeInput(p.Type),
		Calories:   p.Calories,
		Note:       sanitizeInput(p.Note),
	}
}

func (p exerciseLogPayload) toRecord(id int64, s *Server) core.ExerciseLogRecord {
	occurred, _ := parseDay(p.Date, s.loc)
	return core.ExerciseLogRecord{
		ID:         id,
		OccurredOn: occurred,
		TypeName:   sanitizeInput(p.Type),
		Duration:   p.Duration,
		Calories:   p.Calories,
		Note:       sanitizeInput(p.Note),
	}
}

func (s *Server) handleListMealLogs(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logs, err := s.health.ListMealLogs(r.Context(), from, to, keywordParam(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]mealLogResponse, 0, len(logs))
	for _, m := range logs {
		out = append(out, mealLogResponse{
			ID:       m.ID,
			Date:     m.OccurredOn.In(s.loc).Format("2006-01-02"),
			Type:     m.TypeName,
			Calories: m.Calories,
			Note:     m.Note,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMealLog(w http.ResponseWriter, r *http.Request) {
	var payload mealLogPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.health.CreateMealLog(r.Context(), payload.toRecord(0, s))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpCreate, services.DomainMeals, id, payload.Date)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateMealLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload mealLogPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.health.UpdateMealLog(r.Context(), payload.toRecord(id, s)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpUpdate, services.DomainMeals, id, payload.Date)
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteMealLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.health.DeleteMealLog(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpDelete, services.DomainMeals, id, "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExerciseLogs(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logs, err := s.health.ListExerciseLogs(r.Context(), from, to, keywordParam(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]exerciseLogResponse, 0, len(logs))
	for _, e := range logs {
		out = append(out, exerciseLogResponse{
			ID:       e.ID,
			Date:     e.OccurredOn.In(s.loc).Format("2006-01-02"),
			Type:     e.TypeName,
			Duration: e.Duration,
			Calories: e.Calories,
			Note:     e.Note,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExerciseLog(w http.ResponseWriter, r *http.Request) {
	var payload exerciseLogPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.health.CreateExerciseLog(r.Context(), payload.toRecord(0, s))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpCreate, services.DomainExercise, id, payload.Date)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateExerciseLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload exerciseLogPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.health.UpdateExerciseLog(r.Context(), payload.toRecord(id, s)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpUpdate, services.DomainExercise, id, payload.Date)
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteExerciseLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.health.DeleteExerciseLog(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.recordChange(r, applog.OpDelete, services.DomainExercise, id, "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMealTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.health.ListMealTypes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(types))
	for _, t := range types {
		out = append(out, map[string]any{
			"id":               t.ID,
			"name":             t.Name,
			"icon":             t.Icon,
			"default_calories": t.DefaultCalories,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMealType(w http.ResponseWriter, r *http.Request) {
	var payload mealTypePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.health.CreateMealType(r.Context(), core.MealType{
		Name:            sanitizeInput(payload.Name),
		Icon:            strings.TrimSpace(payload.Icon),
		DefaultCalories: payload.DefaultCalories,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleDeleteMealType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.health.DeleteMealType(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExerciseTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.health.ListExerciseTypes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(types))
	for _, t := range types {
		out = append(out, map[string]any{
			"id":               t.ID,
			"name":             t.Name,
			"icon":             t.Icon,
			"default_duration": t.DefaultDuration,
			"kcal_per_hour":    t.KcalPerHour,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExerciseType(w http.ResponseWriter, r *http.Request) {
	var payload exerciseTypePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.health.CreateExerciseType(r.Context(), core.ExerciseType{
		Name:            sanitizeInput(payload.Name),
		Icon:            strings.TrimSpace(payload.Icon),
		DefaultDuration: payload.DefaultDuration,
		KcalPerHour:     payload.KcalPerHour,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleDeleteExerciseType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.health.DeleteExerciseType(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMealDefaults returns the form defaults for a meal type name, so
// clients can pre-fill the calories field.
func (s *Server) handleMealDefaults(w http.ResponseWriter, r *http.Request) {
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	calories, err := s.health.MealDefaults(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "calories": calories})
}

func (s *Server) handleExerciseDefaults(w http.ResponseWriter, r *http.Request) {
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	duration, calories, err := s.health.ExerciseDefaults(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":     name,
		"duration": duration,
		"calories": calories,
	})
}
