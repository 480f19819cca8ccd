package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/middleware"
	"org-calendar-api/internal/model"
)

type employeeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	CurrentStatus string `json:"currentStatus"`
	DOB           string `json:"dob,omitempty"`
	JoiningDate   string `json:"joiningDate,omitempty"`
}

func toEmployeeResponse(e model.Employee) employeeResponse {
	return employeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		Email:         e.Email,
		Role:          e.Role,
		CurrentStatus: e.Status,
		DOB:           optionalDate(e.DOB),
		JoiningDate:   optionalDate(e.JoiningDate),
	}
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return calendar.FormatDate(*t)
}

// parseOptionalDate accepts an empty string as "not set".
func parseOptionalDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := calendar.ParseDate(s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

type employeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DOB         string `json:"dob"`
	JoiningDate string `json:"joiningDate"`
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Name, req.Email = strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "name and email required")
		return
	}
	switch req.Role {
	case "", model.RoleOfficial, model.RoleAdmin:
	default:
		respondError(w, http.StatusBadRequest, "unknown role")
		return
	}
	dob, ok := parseOptionalDate(req.DOB)
	if !ok {
		respondError(w, http.StatusBadRequest, "dob must be YYYY-MM-DD")
		return
	}
	joined, ok := parseOptionalDate(req.JoiningDate)
	if !ok {
		respondError(w, http.StatusBadRequest, "joiningDate must be YYYY-MM-DD")
		return
	}

	e := model.Employee{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		DOB:         dob,
		JoiningDate: joined,
	}
	if err := h.store.CreateEmployee(r.Context(), &e); err != nil {
		h.storeError(w, err, "employee")
		return
	}
	respondJSON(w, http.StatusCreated, toEmployeeResponse(e))
}

type detailsRequest struct {
	Name        string `json:"name"`
	DOB         string `json:"dob"`
	JoiningDate string `json:"joiningDate"`
}

// handleUpdateDetails completes the caller's own profile. Both dates are
// required since they drive the birthday and anniversary markers.
func (h *Handler) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.DOB == "" || req.JoiningDate == "" {
		respondError(w, http.StatusBadRequest, "dob and joiningDate required")
		return
	}
	dob, ok := parseOptionalDate(req.DOB)
	if !ok {
		respondError(w, http.StatusBadRequest, "dob must be YYYY-MM-DD")
		return
	}
	joined, ok := parseOptionalDate(req.JoiningDate)
	if !ok {
		respondError(w, http.StatusBadRequest, "joiningDate must be YYYY-MM-DD")
		return
	}

	e := model.Employee{
		ID:          middleware.ViewerFrom(r.Context()),
		Name:        strings.TrimSpace(req.Name),
		DOB:         dob,
		JoiningDate: joined,
	}
	if err := h.store.UpdateEmployeeDetails(r.Context(), &e); err != nil {
		h.storeError(w, err, "employee")
		return
	}
	respondJSON(w, http.StatusOK, toEmployeeResponse(e))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	switch req.Status {
	case model.StatusAvailable, model.StatusOnLeave, model.StatusInMeeting:
	default:
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if err := h.store.UpdateEmployeeStatus(r.Context(), middleware.ViewerFrom(r.Context()), req.Status); err != nil {
		h.storeError(w, err, "employee")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"currentStatus": req.Status})
}

// handleSearchEmployees backs the attendee and assignee pickers.
func (h *Handler) handleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	found, err := h.store.SearchEmployees(r.Context(), q.Get("search"), limit)
	if err != nil {
		h.storeError(w, err, "employee")
		return
	}
	out := make([]employeeResponse, 0, len(found))
	for _, e := range found {
		out = append(out, toEmployeeResponse(e))
	}
	respondJSON(w, http.StatusOK, out)
}
