package calendar

import "sort"

// Feed maps a YYYY-MM-DD date to the entries listed on it. It is built per
// request and never shared.
type Feed map[string][]Entry

// Dates returns the feed's date keys in calendar order.
func (f Feed) Dates() []string {
	dates := make([]string, 0, len(f))
	for d := range f {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Len counts entries across all dates.
func (f Feed) Len() int {
	n := 0
	for _, es := range f {
		n += len(es)
	}
	return n
}

func (f Feed) add(e DayEntry) {
	f[e.Date] = append(f[e.Date], e.Entry)
}

// assemble merges category lists into a feed. Categories must be passed in
// display order; entries within a category keep their order.
func assemble(categories ...[]DayEntry) Feed {
	f := make(Feed)
	for _, c := range categories {
		for _, e := range c {
			f.add(e)
		}
	}
	return f
}
