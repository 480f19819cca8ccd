package calendar

import "org-calendar-api/internal/model"

// Kind identifies the category an entry came from. Its order is the order
// in which categories appear under a date.
type Kind int

const (
	KindHoliday Kind = iota
	KindEvent
	KindMeeting
	KindTask
	KindBirthday
	KindAnniversary
)

const (
	TypeMeeting     = "Meeting"
	TypeBirthday    = "Birthday"
	TypeAnniversary = "Anniversary"

	PrivateMeetingTitle = "Private Meeting"
)

// Entry is one item of a day in the feed. The concrete types below are the
// variants; each one marshals with its own "type" discriminator.
type Entry interface {
	Kind() Kind
	Header() Header
}

// Header is the subset of fields every entry carries.
type Header struct {
	ID          string
	Type        string
	Title       string
	Color       string
	Description string
}

// DayEntry pins an entry to the date key it is listed under.
type DayEntry struct {
	Date  string
	Entry Entry
}

type HolidayEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	StartAllDay bool   `json:"startAllDay"`
	EndAllDay   bool   `json:"endAllDay"`
}

func (e HolidayEntry) Kind() Kind { return KindHoliday }
func (e HolidayEntry) Header() Header {
	return Header{ID: e.ID, Type: e.Type, Title: e.Title, Color: e.Color, Description: e.Description}
}

type EventEntry struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Color       string      `json:"color"`
	Description string      `json:"description,omitempty"`
	StartTime   string      `json:"startTime,omitempty"`
	EndTime     string      `json:"endTime,omitempty"`
	StartAllDay bool        `json:"startAllDay"`
	EndAllDay   bool        `json:"endAllDay"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	IsMultiDay  bool        `json:"isMultiDay"`
	Host        *model.Ref  `json:"host"`
	Attendees   []model.Ref `json:"attendees"`
	Scope       string      `json:"scope,omitempty"`
}

func (e EventEntry) Kind() Kind { return KindEvent }
func (e EventEntry) Header() Header {
	return Header{ID: e.ID, Type: e.Type, Title: e.Title, Color: e.Color, Description: e.Description}
}

type MeetingEntry struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Title     string      `json:"title"`
	Date      string      `json:"date"`
	Host      model.Ref   `json:"host"`
	Attendees []model.Ref `json:"attendees"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Link      *string     `json:"link"`
	Color     string      `json:"color"`
	IsLocked  bool        `json:"isLocked"`
}

func (e MeetingEntry) Kind() Kind { return KindMeeting }
func (e MeetingEntry) Header() Header {
	return Header{ID: e.ID, Type: e.Type, Title: e.Title, Color: e.Color}
}

type TaskEntry struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Time        string      `json:"time,omitempty"`
	Color       string      `json:"color"`
	Description string      `json:"description,omitempty"`
	IsCompleted bool        `json:"isCompleted"`
	Host        *model.Ref  `json:"host"`
	AssignedTo  []model.Ref `json:"assignedTo"`
}

func (e TaskEntry) Kind() Kind { return KindTask }
func (e TaskEntry) Header() Header {
	return Header{ID: e.ID, Type: e.Type, Title: e.Title, Color: e.Color, Description: e.Description}
}

// MarkerEntry is a birthday or work anniversary.
type MarkerEntry struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Color       string `json:"color"`
	Time        string `json:"time"`
	StartAllDay bool   `json:"startAllDay"`
	EmployeeID  string `json:"employeeId"`
}

func (e MarkerEntry) Kind() Kind {
	if e.Type == TypeAnniversary {
		return KindAnniversary
	}
	return KindBirthday
}

func (e MarkerEntry) Header() Header {
	return Header{ID: e.EmployeeID, Type: e.Type, Title: e.Title, Color: e.Color}
}

func holidayEntry(h model.Holiday) DayEntry {
	typ := h.Type
	if typ == "" {
		typ = model.HolidayFull
	}
	color := h.Color
	if color == "" {
		color = model.HolidayColor(typ)
	}
	return DayEntry{Date: h.Date, Entry: HolidayEntry{
		ID:          h.ID,
		Type:        typ,
		Title:       h.Name,
		Color:       color,
		Description: h.Description,
		StartAllDay: true,
		EndAllDay:   true,
	}}
}

func taskEntry(t model.Task) DayEntry {
	color := t.Color
	if color == "" {
		color = model.DefaultTaskColor
	}
	return DayEntry{Date: t.Date, Entry: TaskEntry{
		ID:          t.ID,
		Type:        t.Type,
		Title:       t.Title,
		Time:        t.Time,
		Color:       color,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		Host:        t.Host,
		AssignedTo:  refs(t.AssignedTo),
	}}
}

func refs(in []model.Ref) []model.Ref {
	if in == nil {
		return []model.Ref{}
	}
	return in
}
