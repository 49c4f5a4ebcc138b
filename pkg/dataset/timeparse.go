package dataset

import (
	"regexp"
	"strings"
	"time"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// trendingArtifact matches the "." plus space padding found in trending_time.
var trendingArtifact = regexp.MustCompile(`\. +`)

// NormalizePublishTime turns "2021-05-01T12:00:00Z" into "2021-05-01 12:00:00".
func NormalizePublishTime(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Z")
	return strings.Replace(s, "T", " ", 1)
}

// NormalizeTrendingTime strips the "." + spaces artifacts from a trending timestamp.
func NormalizeTrendingTime(s string) string {
	return strings.TrimSpace(trendingArtifact.ReplaceAllString(s, ""))
}

// ParseTimestamp parses a normalized timestamp. Any UTC offset is dropped:
// the wall clock as written is returned in UTC, so results are timezone-naive.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
	}
	return time.Time{}, false
}
