package dataset

import (
	"iter"
	"slices"
	"time"

	"cloud.google.com/go/civil"
)

// Column names the loader requires in the trending CSV header.
const (
	ColChannelName  = "channel_name"
	ColLike         = "like"
	ColDislike      = "dislike"
	ColView         = "view"
	ColComment      = "comment"
	ColPublishTime  = "publish_time"
	ColTrendingTime = "trending_time"
)

// RequiredColumns returns the columns every trending CSV must carry.
func RequiredColumns() []string {
	return []string{
		ColChannelName,
		ColLike,
		ColDislike,
		ColView,
		ColComment,
		ColPublishTime,
		ColTrendingTime,
	}
}

// RawRecord is one row of the trending CSV before any cleaning.
type RawRecord struct {
	ChannelName  string
	Like         int64
	Dislike      int64
	View         int64
	Comment      int64
	PublishTime  string
	TrendingTime string

	// Missing lists columns whose cell was empty, NA or not a non-negative integer.
	Missing []string
}

// Complete reports whether every raw field carried a usable value.
func (r RawRecord) Complete() bool {
	return len(r.Missing) == 0 && r.ChannelName != ""
}

// Record is a prepared trending row with parsed timestamps and calendar fields.
type Record struct {
	ChannelName string `json:"channel_name"`
	Like        int64  `json:"like"`
	Dislike     int64  `json:"dislike"`
	View        int64  `json:"view"`
	Comment     int64  `json:"comment"`

	PublishTime  time.Time  `json:"publish_time"`
	TrendingTime time.Time  `json:"trending_time"`
	PublishDate  civil.Date `json:"publish_date"`
	TrendingDate civil.Date `json:"trending_date"`

	PublishYear      int    `json:"publish_year"`
	PublishMonth     int    `json:"publish_month"`
	PublishMonthName string `json:"publish_month_name"`
	PublishDay       int    `json:"publish_day"`
	PublishDayName   string `json:"publish_day_name"`

	TrendingYear      int    `json:"trending_year"`
	TrendingMonth     int    `json:"trending_month"`
	TrendingMonthName string `json:"trending_month_name"`
	TrendingDay       int    `json:"trending_day"`
	TrendingDayName   string `json:"trending_day_name"`
}

// ChannelSummary describes one channel of a prepared table.
type ChannelSummary struct {
	Name         string     `json:"name"`
	Rows         int        `json:"rows"`
	FirstPublish civil.Date `json:"first_publish"`
	LastTrending civil.Date `json:"last_trending"`
}

// Table is an immutable set of prepared records. The zero value and a nil
// *Table are both valid empty tables.
type Table struct {
	records []Record
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns a copy of the rows in table order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return slices.Clone(t.records)
}

// All iterates the rows in table order.
func (t *Table) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if t == nil {
			return
		}
		for _, r := range t.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Channels lists the distinct channels in order of first appearance.
func (t *Table) Channels() []ChannelSummary {
	var out []ChannelSummary
	idx := make(map[string]int)
	for r := range t.All() {
		i, ok := idx[r.ChannelName]
		if !ok {
			idx[r.ChannelName] = len(out)
			out = append(out, ChannelSummary{
				Name:         r.ChannelName,
				Rows:         1,
				FirstPublish: r.PublishDate,
				LastTrending: r.TrendingDate,
			})
			continue
		}
		s := &out[i]
		s.Rows++
		if r.PublishDate.Before(s.FirstPublish) {
			s.FirstPublish = r.PublishDate
		}
		if r.TrendingDate.After(s.LastTrending) {
			s.LastTrending = r.TrendingDate
		}
	}
	return out
}

// HasChannel reports whether any row belongs to channel.
func (t *Table) HasChannel(channel string) bool {
	for r := range t.All() {
		if r.ChannelName == channel {
			return true
		}
	}
	return false
}

// Bounds returns the earliest publish date and the latest trending date.
// ok is false for an empty table.
func (t *Table) Bounds() (minPublish, maxTrending civil.Date, ok bool) {
	for r := range t.All() {
		if !ok {
			minPublish, maxTrending, ok = r.PublishDate, r.TrendingDate, true
			continue
		}
		if r.PublishDate.Before(minPublish) {
			minPublish = r.PublishDate
		}
		if r.TrendingDate.After(maxTrending) {
			maxTrending = r.TrendingDate
		}
	}
	return minPublish, maxTrending, ok
}
