package dataset

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// DefaultTopN is the number of channels the dashboard keeps.
const DefaultTopN = 50

// Prepare builds the base table: it keeps the rows of the topN most frequent
// channels, normalizes and parses both timestamps, derives the calendar
// fields and drops every row with a missing or unparseable value.
// Row order follows raw. Prepare never modifies raw.
func Prepare(raw []RawRecord, topN int) *Table {
	top := TopChannels(raw, topN)
	keep := make(map[string]bool, len(top))
	for _, ch := range top {
		keep[ch] = true
	}

	var records []Record
	for _, r := range raw {
		if !keep[r.ChannelName] {
			continue
		}
		rec, ok := prepareRecord(r)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return &Table{records: records}
}

// TopChannels returns the n channels with the most rows, highest first.
// Rows without a channel name are not counted. Channels with equal counts
// keep their order of first appearance in raw, which also decides who makes
// the cut at the n-th position.
func TopChannels(raw []RawRecord, n int) []string {
	if n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range raw {
		if r.ChannelName == "" {
			continue
		}
		if _, seen := counts[r.ChannelName]; !seen {
			order = append(order, r.ChannelName)
		}
		counts[r.ChannelName]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

func prepareRecord(r RawRecord) (Record, bool) {
	if !r.Complete() {
		return Record{}, false
	}
	published, ok := ParseTimestamp(NormalizePublishTime(r.PublishTime))
	if !ok {
		return Record{}, false
	}
	trending, ok := ParseTimestamp(NormalizeTrendingTime(r.TrendingTime))
	if !ok {
		return Record{}, false
	}

	rec := Record{
		ChannelName:  r.ChannelName,
		Like:         r.Like,
		Dislike:      r.Dislike,
		View:         r.View,
		Comment:      r.Comment,
		PublishTime:  published,
		TrendingTime: trending,
		PublishDate:  civil.DateOf(published),
		TrendingDate: civil.DateOf(trending),
	}
	rec.PublishYear, rec.PublishMonth, rec.PublishMonthName, rec.PublishDay, rec.PublishDayName = calendar(published)
	rec.TrendingYear, rec.TrendingMonth, rec.TrendingMonthName, rec.TrendingDay, rec.TrendingDayName = calendar(trending)
	return rec, true
}

func calendar(t time.Time) (year, month int, monthName string, day int, dayName string) {
	return t.Year(), int(t.Month()), t.Month().String(), t.Day(), t.Weekday().String()
}
