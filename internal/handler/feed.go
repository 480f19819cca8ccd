package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/middleware"
)

// Feed serves one calendar feed request and returns the status code and
// JSON body to send. viewer is the authenticated identity; when empty the
// userId query parameter names the viewer, and no viewer means guest mode.
func (h *Handler) Feed(ctx context.Context, q url.Values, viewer string) (int, any) {
	feed, _, code, body := h.feed(ctx, q, viewer)
	if body != nil {
		return code, body
	}
	return http.StatusOK, feed
}

func (h *Handler) feed(ctx context.Context, q url.Values, viewer string) (calendar.Feed, calendar.Window, int, any) {
	if viewer == "" {
		viewer = q.Get("userId")
	}
	req := calendar.Request{Year: q.Get("year"), Month: q.Get("month"), Viewer: viewer}

	feed, w, err := h.agg.Feed(ctx, req)
	switch {
	case err == nil:
		return feed, w, http.StatusOK, nil
	case errors.Is(err, calendar.ErrInvalidRequest):
		return nil, w, http.StatusBadRequest, map[string]string{"message": err.Error()}
	default:
		h.log.WithError(err).WithFields(logrus.Fields{"year": req.Year, "month": req.Month}).
			Error("calendar feed failed")
		return nil, w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to load calendar",
			"error":   err.Error(),
			"start":   w.Start,
			"end":     w.End,
		}
	}
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	code, body := h.Feed(r.Context(), r.URL.Query(), middleware.ViewerFrom(r.Context()))
	respondJSON(w, code, body)
}

func (h *Handler) handleICS(w http.ResponseWriter, r *http.Request) {
	feed, win, code, body := h.feed(r.Context(), r.URL.Query(), middleware.ViewerFrom(r.Context()))
	if body != nil {
		respondJSON(w, code, body)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "calendar-"+win.Start+".ics"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(RenderICS(feed, win, time.Now())))
}

// RenderICS writes the feed as all-day VEVENTs. A multi-day event becomes a
// single VEVENT covering its days inside the window.
func RenderICS(feed calendar.Feed, win calendar.Window, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//org-calendar-api//calendar feed//EN")

	seen := make(map[string]bool)
	for _, date := range feed.Dates() {
		for _, e := range feed[date] {
			hdr := e.Header()
			start, end := date, date
			uid := fmt.Sprintf("%s-%s@org-calendar", hdr.ID, date)

			if ev, ok := e.(calendar.EventEntry); ok && ev.IsMultiDay {
				uid = ev.ID + "@org-calendar"
				if seen[uid] {
					continue
				}
				seen[uid] = true
				start, end = clip(ev.StartDate, ev.EndDate, win)
			}

			from, err := calendar.ParseDate(start)
			if err != nil {
				continue
			}
			to, err := calendar.ParseDate(end)
			if err != nil {
				continue
			}

			vev := cal.AddEvent(uid)
			vev.SetDtStampTime(stamp)
			vev.SetSummary(hdr.Title)
			if hdr.Description != "" {
				vev.SetDescription(hdr.Description)
			}
			vev.SetAllDayStartAt(from)
			vev.SetAllDayEndAt(to.AddDate(0, 0, 1))
			vev.SetProperty(ical.ComponentPropertyCategories, hdr.Type)
			if m, ok := e.(calendar.MeetingEntry); ok && m.Link != nil {
				vev.SetURL(*m.Link)
			}
		}
	}
	return cal.Serialize()
}

func clip(start, end string, win calendar.Window) (string, string) {
	if start < win.Start {
		start = win.Start
	}
	if end > win.End {
		end = win.End
	}
	return start, end
}
