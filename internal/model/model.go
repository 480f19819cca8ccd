package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ScopeGlobal  = "Global"
	ScopePrivate = "Private"

	HolidayFull       = "Full Holiday"
	HolidayRestricted = "Restricted Holiday"
	HolidayHalf       = "Half Holiday"

	TaskPersonal = "Personal Task"
	TaskOfficial = "Official Task"

	RoleOfficial = "Official"
	RoleAdmin    = "Admin"

	StatusAvailable = "Available"
	StatusOnLeave   = "On Leave"
	StatusInMeeting = "In Meeting"

	DefaultEventColor   = "#0A55C4"
	DefaultMeetingColor = "#9C27B0"
	DefaultTaskColor    = "#2196F3"
)

// HolidayColor returns the display color for a holiday category.
func HolidayColor(typ string) string {
	switch typ {
	case HolidayRestricted:
		return "#4CAF50"
	case HolidayHalf:
		return "#FF9800"
	default:
		return "#D32F2F"
	}
}

// Ref is a reference to a user. Name and Email are set only when the
// reference was populated from the users table.
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CanonicalID normalizes a user reference so ids coming from tokens, query
// strings and the database compare equal.
func CanonicalID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// Is reports whether the reference points at the given identity.
func (r Ref) Is(id string) bool {
	return r.ID != "" && CanonicalID(r.ID) == CanonicalID(id)
}

type Holiday struct {
	ID          string
	Name        string
	Date        string
	Type        string
	Color       string
	Description string
}

type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	StartAllDay bool
	EndAllDay   bool
	Type        string
	Color       string
	CreatedBy   *Ref
	// Scope is empty for legacy rows; those are treated as Global.
	Scope     string
	Attendees []Ref
	CreatedAt time.Time
}

type Meeting struct {
	ID        string
	Title     string
	Link      string
	Date      string
	StartTime string
	EndTime   string
	Host      Ref
	Attendees []Ref
	Color     string
	CreatedAt time.Time
}

// Task is one entry of a user's own task list. Official tasks are copied
// into every assignee's list, so OwnerID differs from Host for those copies.
type Task struct {
	ID      string
	OwnerID string
	// GroupID is shared by the host's task and its assignee copies.
	GroupID     string
	Title       string
	Description string
	Date        string
	Time        string
	IsCompleted bool
	Type        string
	Color       string
	Host        *Ref
	AssignedTo  []Ref
	CreatedAt   time.Time
}

type Employee struct {
	ID          string
	Name        string
	Email       string
	Role        string
	Status      string
	DOB         *time.Time
	JoiningDate *time.Time
}

// EmployeeMarkers holds the annual (day, month) pairs of an employee.
// A nil component means the marker is not set.
type EmployeeMarkers struct {
	ID           string
	Name         string
	DOBDay       *int
	DOBMonth     *int
	JoiningDay   *int
	JoiningMonth *int
}

// Markers derives the annual marker pairs from the employee's full dates.
func (e Employee) Markers() EmployeeMarkers {
	m := EmployeeMarkers{ID: e.ID, Name: e.Name}
	if e.DOB != nil {
		d, mo := e.DOB.Day(), int(e.DOB.Month())
		m.DOBDay, m.DOBMonth = &d, &mo
	}
	if e.JoiningDate != nil {
		d, mo := e.JoiningDate.Day(), int(e.JoiningDate.Month())
		m.JoiningDay, m.JoiningMonth = &d, &mo
	}
	return m
}

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	RelatedID   string    `json:"relatedId,omitempty"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}
