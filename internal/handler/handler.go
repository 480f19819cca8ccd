package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/middleware"
	"org-calendar-api/internal/model"
	"org-calendar-api/internal/notify"
)

// Store is the write side the HTTP endpoints need. Reads for the feed go
// through the aggregator.
type Store interface {
	CreateHoliday(ctx context.Context, h *model.Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
	CreateEvent(ctx context.Context, ev *model.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
	CreateMeeting(ctx context.Context, m *model.Meeting) error
	DeleteMeeting(ctx context.Context, id string) error
	AddTask(ctx context.Context, t *model.Task) ([]model.Task, error)
	ToggleTask(ctx context.Context, ownerID, taskID string) (bool, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	CreateEmployee(ctx context.Context, e *model.Employee) error
	UpdateEmployeeDetails(ctx context.Context, e *model.Employee) error
	UpdateEmployeeStatus(ctx context.Context, id, status string) error
	SearchEmployees(ctx context.Context, query string, limit int) ([]model.Employee, error)
	Ping(ctx context.Context) error
}

type Enqueuer interface {
	Enqueue(m notify.Message) bool
}

type Handler struct {
	agg   *calendar.Aggregator
	store Store
	queue Enqueuer
	log   *logrus.Entry
}

// New wires the handler. queue may be nil, in which case writes notify
// nobody.
func New(agg *calendar.Aggregator, st Store, queue Enqueuer, log *logrus.Entry) *Handler {
	return &Handler{agg: agg, store: st, queue: queue, log: log.WithField("component", "http")}
}

// Routes builds the HTTP API. rl may be nil to disable rate limiting.
func (h *Handler) Routes(secret string, rl *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	if rl != nil {
		api.Use(middleware.HTTPRateLimit(rl))
	}
	api.Use(middleware.Viewer(secret))
	api.HandleFunc("/calendar", h.handleFeed).Methods(http.MethodGet)
	api.HandleFunc("/calendar.ics", h.handleICS).Methods(http.MethodGet)

	write := api.NewRoute().Subrouter()
	write.Use(middleware.RequireViewer)
	write.HandleFunc("/holidays", h.handleCreateHoliday).Methods(http.MethodPost)
	write.HandleFunc("/holidays/{id}", h.handleDeleteHoliday).Methods(http.MethodDelete)
	write.HandleFunc("/events", h.handleCreateEvent).Methods(http.MethodPost)
	write.HandleFunc("/events/{id}", h.handleDeleteEvent).Methods(http.MethodDelete)
	write.HandleFunc("/meetings", h.handleCreateMeeting).Methods(http.MethodPost)
	write.HandleFunc("/meetings/{id}", h.handleDeleteMeeting).Methods(http.MethodDelete)
	write.HandleFunc("/tasks", h.handleCreateTask).Methods(http.MethodPost)
	write.HandleFunc("/tasks/{id}", h.handleDeleteTask).Methods(http.MethodDelete)
	write.HandleFunc("/tasks/{id}/toggle", h.handleToggleTask).Methods(http.MethodPut)
	write.HandleFunc("/notifications", h.handleListNotifications).Methods(http.MethodGet)
	write.HandleFunc("/notifications/read-all", h.handleReadAllNotifications).Methods(http.MethodPut)
	write.HandleFunc("/notifications/{id}/read", h.handleReadNotification).Methods(http.MethodPut)
	write.HandleFunc("/employees", h.handleCreateEmployee).Methods(http.MethodPost)
	write.HandleFunc("/employees", h.handleSearchEmployees).Methods(http.MethodGet)
	write.HandleFunc("/employees/me", h.handleUpdateDetails).Methods(http.MethodPut)
	write.HandleFunc("/employees/me/status", h.handleUpdateStatus).Methods(http.MethodPut)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.WithError(err).Warn("health check failed")
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// notify hands m to the background queue. It never blocks the caller.
func (h *Handler) notify(m notify.Message) {
	if h.queue == nil {
		return
	}
	h.queue.Enqueue(m)
}

// storeError maps store failures to a response.
func (h *Handler) storeError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, calendar.ErrNotFound) {
		respondError(w, http.StatusNotFound, what+" not found")
		return
	}
	if errors.Is(err, calendar.ErrConflict) {
		respondError(w, http.StatusConflict, what+" already exists")
		return
	}
	h.log.WithError(err).Errorf("%s store operation failed", what)
	respondError(w, http.StatusInternalServerError, "internal error")
}

func respondJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"message": msg})
}
