package dataset

import "cloud.google.com/go/civil"

// FilterView returns the rows of t for one chart refresh: the channel must
// match exactly, the publish date must be on or after start and the trending
// date on or before end.
//
// The lower bound is checked against the publish date while the upper bound is
// checked against the trending date, so a video published inside the range but
// trending after it is excluded.
func FilterView(t *Table, channel string, start, end civil.Date) *Table {
	var out []Record
	for r := range t.All() {
		if r.ChannelName != channel {
			continue
		}
		if r.PublishDate.Before(start) {
			continue
		}
		if r.TrendingDate.After(end) {
			continue
		}
		out = append(out, r)
	}
	return &Table{records: out}
}
