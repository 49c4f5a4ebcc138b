package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePublishTime(t *testing.T) {
	assert.Equal(t, "2021-07-01 10:00:00", NormalizePublishTime("2021-07-01T10:00:00Z"))
	assert.Equal(t, "2021-07-01 10:00:00", NormalizePublishTime(" 2021-07-01 10:00:00 "))
}

func TestNormalizeTrendingTime(t *testing.T) {
	assert.Equal(t, "2021-07-02 08:00:00", NormalizeTrendingTime("2021-07-02 08:00:00.            "))
	assert.Equal(t, "2021-07-02 08:00:00.123", NormalizeTrendingTime("2021-07-02 08:00:00.123"))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2021-07-01 10:00:00", want: time.Date(2021, 7, 1, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2021-07-01 10:00:00.250", want: time.Date(2021, 7, 1, 10, 0, 0, 250_000_000, time.UTC), ok: true},
		{in: "2021-07-01 10:00:00+07:00", want: time.Date(2021, 7, 1, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2021-07-01 10:00", want: time.Date(2021, 7, 1, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2021-07-01", want: time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2021-07-01T10:00:00", want: time.Date(2021, 7, 1, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2021-07-01T10:00:00Z", want: time.Date(2021, 7, 1, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2021-07-01T10:00", want: time.Date(2021, 7, 1, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2021-07-01X10:00:00", ok: false},
		{in: "", ok: false},
		{in: "2021-13-01 10:00:00", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestPrepare_TrendingTimeWithT(t *testing.T) {
	table := Prepare([]RawRecord{raw("A", "2021-07-01T10:00:00Z", "2021-07-02T08:00:00")}, DefaultTopN)
	if assert.Equal(t, 1, table.Len()) {
		assert.Equal(t, time.Date(2021, 7, 2, 8, 0, 0, 0, time.UTC), table.Records()[0].TrendingTime)
	}
}
