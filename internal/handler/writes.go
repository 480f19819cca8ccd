package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/middleware"
	"org-calendar-api/internal/model"
	"org-calendar-api/internal/notify"
)

type holidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (h *Handler) handleCreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name required")
		return
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	switch req.Type {
	case "", model.HolidayFull, model.HolidayRestricted, model.HolidayHalf:
	default:
		respondError(w, http.StatusBadRequest, "unknown holiday type")
		return
	}

	hol := model.Holiday{
		Name:        req.Name,
		Date:        req.Date,
		Type:        req.Type,
		Color:       req.Color,
		Description: req.Description,
	}
	if err := h.store.CreateHoliday(r.Context(), &hol); err != nil {
		h.storeError(w, err, "holiday")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": hol.ID})
}

func (h *Handler) handleDeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteHoliday(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.storeError(w, err, "holiday")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type eventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	StartAllDay bool     `json:"startAllDay"`
	EndAllDay   bool     `json:"endAllDay"`
	Type        string   `json:"type"`
	Color       string   `json:"color"`
	Scope       string   `json:"scope"`
	Attendees   []string `json:"attendees"`
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title required")
		return
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}
	if !validDates(req.StartDate, req.EndDate) {
		respondError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}
	if req.EndDate < req.StartDate {
		respondError(w, http.StatusBadRequest, "endDate must not be before startDate")
		return
	}
	if req.Scope == "" {
		req.Scope = model.ScopeGlobal
	}
	if req.Scope != model.ScopeGlobal && req.Scope != model.ScopePrivate {
		respondError(w, http.StatusBadRequest, "scope must be Global or Private")
		return
	}

	creator := middleware.ViewerFrom(r.Context())
	ev := model.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		StartAllDay: req.StartAllDay,
		EndAllDay:   req.EndAllDay,
		Type:        req.Type,
		Color:       req.Color,
		CreatedBy:   &model.Ref{ID: creator},
		Scope:       req.Scope,
		Attendees:   toRefs(req.Attendees),
	}
	if err := h.store.CreateEvent(r.Context(), &ev); err != nil {
		h.storeError(w, err, "event")
		return
	}

	// global events go to everyone, private ones to the invitees
	var recipients []string
	if ev.Scope == model.ScopePrivate {
		recipients = others(req.Attendees, creator)
	}
	if recipients == nil || len(recipients) > 0 {
		h.notify(notify.Message{
			Recipients: recipients,
			Title:      "New Event: " + ev.Title,
			Message:    fmt.Sprintf("%s on %s", ev.Title, ev.StartDate),
			Type:       "Event",
			RelatedID:  ev.ID,
		})
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": ev.ID})
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEvent(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.storeError(w, err, "event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type meetingRequest struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Color     string   `json:"color"`
	Attendees []string `json:"attendees"`
}

func (h *Handler) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" || req.StartTime == "" || req.EndTime == "" {
		respondError(w, http.StatusBadRequest, "title, startTime and endTime required")
		return
	}
	if !validDates(req.Date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	host := middleware.ViewerFrom(r.Context())
	m := model.Meeting{
		Title:     req.Title,
		Link:      req.Link,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		Host:      model.Ref{ID: host},
		Attendees: toRefs(req.Attendees),
	}
	if err := h.store.CreateMeeting(r.Context(), &m); err != nil {
		h.storeError(w, err, "meeting")
		return
	}

	if recipients := others(req.Attendees, host); len(recipients) > 0 {
		h.notify(notify.Message{
			Recipients: recipients,
			Title:      "New Meeting: " + m.Title,
			Message:    fmt.Sprintf("%s on %s at %s", m.Title, m.Date, m.StartTime),
			Type:       "Meeting",
			RelatedID:  m.ID,
		})
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": m.ID})
}

func (h *Handler) handleDeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMeeting(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.storeError(w, err, "meeting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type taskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Type        string   `json:"type"`
	Color       string   `json:"color"`
	AssignedTo  []string `json:"assignedTo"`
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title required")
		return
	}
	if !validDates(req.Date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	switch req.Type {
	case "", model.TaskPersonal, model.TaskOfficial:
	default:
		respondError(w, http.StatusBadRequest, "unknown task type")
		return
	}

	owner := middleware.ViewerFrom(r.Context())
	t := model.Task{
		OwnerID:     owner,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		Color:       req.Color,
		AssignedTo:  toRefs(req.AssignedTo),
	}
	copies, err := h.store.AddTask(r.Context(), &t)
	if err != nil {
		h.storeError(w, err, "task")
		return
	}

	if t.Type == model.TaskOfficial {
		if recipients := others(req.AssignedTo, owner); len(recipients) > 0 {
			h.notify(notify.Message{
				Recipients: recipients,
				Title:      "New Task: " + t.Title,
				Message:    fmt.Sprintf("%s is due on %s", t.Title, t.Date),
				Type:       "Task",
				RelatedID:  t.GroupID,
			})
		}
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": t.ID, "groupId": t.GroupID, "copies": len(copies)})
}

func (h *Handler) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	done, err := h.store.ToggleTask(r.Context(), middleware.ViewerFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err, "task")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"isCompleted": done})
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTask(r.Context(), middleware.ViewerFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		h.storeError(w, err, "task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.store.ListNotifications(r.Context(), middleware.ViewerFrom(r.Context()), limit)
	if err != nil {
		h.storeError(w, err, "notification")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleReadNotification(w http.ResponseWriter, r *http.Request) {
	err := h.store.MarkNotificationRead(r.Context(), middleware.ViewerFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err, "notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReadAllNotifications(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.MarkAllNotificationsRead(r.Context(), middleware.ViewerFrom(r.Context()))
	if err != nil {
		h.storeError(w, err, "notification")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"updated": n})
}

func validDates(dates ...string) bool {
	for _, d := range dates {
		if _, err := calendar.ParseDate(d); err != nil {
			return false
		}
	}
	return true
}

func toRefs(ids []string) []model.Ref {
	out := make([]model.Ref, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Ref{ID: id})
	}
	return out
}

// others returns the canonical ids in ids other than self, without
// duplicates. The result is never nil.
func others(ids []string, self string) []string {
	self = model.CanonicalID(self)
	seen := make(map[string]bool, len(ids))
	out := []string{}
	for _, id := range ids {
		id = model.CanonicalID(id)
		if id == "" || id == self || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
