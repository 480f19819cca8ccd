package rpc

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"org-calendar-api/internal/calendar"
)

// FeedRequest is calendar.v1.FeedRequest. Month 0 asks for the whole year.
type FeedRequest struct {
	Year   int32
	Month  int32
	UserID string
}

// FeedResponse is calendar.v1.FeedResponse. Days are in calendar order.
type FeedResponse struct {
	Days []Day
}

type Day struct {
	Date    string
	Entries []Entry
}

type Entry struct {
	ID          string
	Type        string
	Title       string
	Color       string
	Description string
	StartTime   string
	EndTime     string
	StartDate   string
	EndDate     string
	IsMultiDay  bool
	Link        string
	IsLocked    bool
	IsCompleted bool
	HostID      string
	AttendeeIDs []string
	Scope       string
	Time        string
}

func (m *FeedRequest) marshal() ([]byte, error) {
	var out []byte
	out = appendVarint(out, 1, uint64(m.Year))
	out = appendVarint(out, 2, uint64(m.Month))
	out = appendString(out, 3, m.UserID)
	return out, nil
}

func (m *FeedRequest) unmarshal(b []byte) error {
	*m = FeedRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Year = int32(v)
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Month = int32(v)
			return n, nil
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			m.UserID = string(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func (m *FeedResponse) marshal() ([]byte, error) {
	var out []byte
	for _, d := range m.Days {
		var day []byte
		day = appendString(day, 1, d.Date)
		for _, e := range d.Entries {
			day = protowire.AppendTag(day, 2, protowire.BytesType)
			day = protowire.AppendBytes(day, e.marshal())
		}
		out = protowire.AppendTag(out, 1, protowire.BytesType)
		out = protowire.AppendBytes(out, day)
	}
	return out, nil
}

func (m *FeedResponse) unmarshal(b []byte) error {
	*m = FeedResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		var d Day
		if err := d.unmarshal(v); err != nil {
			return 0, err
		}
		m.Days = append(m.Days, d)
		return n, nil
	})
}

func (d *Day) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			d.Date = string(v)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			var e Entry
			if err := e.unmarshal(v); err != nil {
				return 0, err
			}
			d.Entries = append(d.Entries, e)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func (e *Entry) marshal() []byte {
	var out []byte
	out = appendString(out, 1, e.ID)
	out = appendString(out, 2, e.Type)
	out = appendString(out, 3, e.Title)
	out = appendString(out, 4, e.Color)
	out = appendString(out, 5, e.Description)
	out = appendString(out, 6, e.StartTime)
	out = appendString(out, 7, e.EndTime)
	out = appendString(out, 8, e.StartDate)
	out = appendString(out, 9, e.EndDate)
	out = appendBool(out, 10, e.IsMultiDay)
	out = appendString(out, 11, e.Link)
	out = appendBool(out, 12, e.IsLocked)
	out = appendBool(out, 13, e.IsCompleted)
	out = appendString(out, 14, e.HostID)
	for _, id := range e.AttendeeIDs {
		out = protowire.AppendTag(out, 15, protowire.BytesType)
		out = protowire.AppendString(out, id)
	}
	out = appendString(out, 16, e.Scope)
	out = appendString(out, 17, e.Time)
	return out
}

func (e *Entry) unmarshal(b []byte) error {
	strs := map[protowire.Number]*string{
		1: &e.ID, 2: &e.Type, 3: &e.Title, 4: &e.Color, 5: &e.Description,
		6: &e.StartTime, 7: &e.EndTime, 8: &e.StartDate, 9: &e.EndDate,
		11: &e.Link, 14: &e.HostID, 16: &e.Scope, 17: &e.Time,
	}
	bools := map[protowire.Number]*bool{10: &e.IsMultiDay, 12: &e.IsLocked, 13: &e.IsCompleted}

	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if p, ok := strs[num]; ok && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			*p = string(v)
			return n, nil
		}
		if p, ok := bools[num]; ok && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			*p = protowire.DecodeBool(v)
			return n, nil
		}
		if num == 15 && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			e.AttendeeIDs = append(e.AttendeeIDs, string(v))
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

// consumeFields walks a message, handing each field's value bytes to fn,
// which returns how many bytes it consumed.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("parse error: %w", protowire.ParseError(n))
		}
		b = b[n:]
		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("parse error: %w", protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

// proto3 omits zero values
func appendString(out []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return out
	}
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendString(out, s)
}

func appendVarint(out []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return out
	}
	out = protowire.AppendTag(out, num, protowire.VarintType)
	return protowire.AppendVarint(out, v)
}

func appendBool(out []byte, num protowire.Number, v bool) []byte {
	return appendVarint(out, num, protowire.EncodeBool(v))
}

// toResponse flattens a feed into wire form.
func toResponse(feed calendar.Feed) *FeedResponse {
	resp := &FeedResponse{Days: make([]Day, 0, len(feed))}
	for _, date := range feed.Dates() {
		day := Day{Date: date, Entries: make([]Entry, 0, len(feed[date]))}
		for _, e := range feed[date] {
			day.Entries = append(day.Entries, toEntry(e))
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

func toEntry(e calendar.Entry) Entry {
	h := e.Header()
	out := Entry{ID: h.ID, Type: h.Type, Title: h.Title, Color: h.Color, Description: h.Description}
	switch v := e.(type) {
	case calendar.EventEntry:
		out.StartTime, out.EndTime = v.StartTime, v.EndTime
		out.StartDate, out.EndDate = v.StartDate, v.EndDate
		out.IsMultiDay = v.IsMultiDay
		out.Scope = v.Scope
		if v.Host != nil {
			out.HostID = v.Host.ID
		}
		for _, a := range v.Attendees {
			out.AttendeeIDs = append(out.AttendeeIDs, a.ID)
		}
	case calendar.MeetingEntry:
		out.StartTime, out.EndTime = v.StartTime, v.EndTime
		out.StartDate, out.EndDate = v.Date, v.Date
		if v.Link != nil {
			out.Link = *v.Link
		}
		out.IsLocked = v.IsLocked
		out.HostID = v.Host.ID
		for _, a := range v.Attendees {
			out.AttendeeIDs = append(out.AttendeeIDs, a.ID)
		}
	case calendar.TaskEntry:
		out.Time = v.Time
		out.IsCompleted = v.IsCompleted
		if v.Host != nil {
			out.HostID = v.Host.ID
		}
		for _, a := range v.AssignedTo {
			out.AttendeeIDs = append(out.AttendeeIDs, a.ID)
		}
	case calendar.MarkerEntry:
		out.Time = v.Time
	}
	return out
}
