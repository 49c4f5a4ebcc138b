package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/ytdash/internal/store"
	"github.com/elonfeng/ytdash/pkg/dataset"
)

const fixtureCSV = `video_id,channel_name,like,dislike,view,comment,publish_time,trending_time
a1,Nihongo Mantappu,100,2,1000,10,2022-01-05T08:00:00Z,2022-01-07 . 09:30:00
a2,Nihongo Mantappu,200,4,2000,20,2022-01-06T08:00:00Z,2022-01-08 . 09:30:00
b1,Jess No Limit,300,6,3000,30,2022-01-02T08:00:00Z,2022-01-04 . 10:00:00
b2,Jess No Limit,,6,3000,30,2022-01-03T08:00:00Z,2022-01-05 . 10:00:00
`

// writeFixture writes the CSV and a config pointing at it, returning the config path.
func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "trending.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(fixtureCSV), 0o644))

	dbPath := filepath.Join(dir, "export.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "data:\n  path: " + csvPath + "\nexport:\n  db_path: " + dbPath + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, dbPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestChannelsCommand(t *testing.T) {
	cfgPath, _ := writeFixture(t)

	out, err := execute(t, "channels", "--json", "--config", cfgPath)
	require.NoError(t, err)

	var channels []dataset.ChannelSummary
	require.NoError(t, json.Unmarshal([]byte(out), &channels))
	require.Len(t, channels, 2)
	assert.Equal(t, "Nihongo Mantappu", channels[0].Name)
	assert.Equal(t, 2, channels[0].Rows)
	// The row with an empty like count is dropped.
	assert.Equal(t, 1, channels[1].Rows)

	out, err = execute(t, "channels", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "FIRST PUBLISH")
	assert.Contains(t, out, "2022-01-05")
	assert.Contains(t, out, "Jess No Limit")
}

func TestExportCommand(t *testing.T) {
	cfgPath, dbPath := writeFixture(t)

	out, err := execute(t, "export", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 3 rows")
	assert.Regexp(t, `2\s+Nihongo Mantappu`, out)
	assert.Regexp(t, `1\s+Jess No Limit`, out)
	assert.NotContains(t, out, "verified")

	out, err = execute(t, "export", "--verify", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "verified")

	db, err := store.New(dbPath)
	require.NoError(t, err)
	defer db.Close()
	counts, err := db.CountByChannel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Nihongo Mantappu": 2, "Jess No Limit": 1}, counts)
}

func TestMissingColumnIsFatal(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("channel_name,like\nA,1\n"), 0o644))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  path: "+csvPath+"\n"), 0o644))

	_, err := execute(t, "channels", "--config", cfgPath)
	var dfe *dataset.DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Contains(t, dfe.Missing, dataset.ColPublishTime)
}

func TestPrintChannels_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printChannels(&buf, nil, false))
	assert.Contains(t, buf.String(), "no channels found")
}

func TestVerifyExport_Mismatch(t *testing.T) {
	ctx := context.Background()
	full := dataset.Prepare([]dataset.RawRecord{
		{ChannelName: "Alpha", Like: 1, Dislike: 1, View: 1, Comment: 1,
			PublishTime: "2022-01-01T08:00:00Z", TrendingTime: "2022-01-02 08:00:00"},
		{ChannelName: "Alpha", Like: 2, Dislike: 2, View: 2, Comment: 2,
			PublishTime: "2022-01-03T08:00:00Z", TrendingTime: "2022-01-04 08:00:00"},
	}, dataset.DefaultTopN)
	partial := dataset.FilterView(full, "Alpha", full.Records()[1].PublishDate, full.Records()[1].TrendingDate)
	require.Equal(t, 1, partial.Len())

	db, err := store.New(filepath.Join(t.TempDir(), "export.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ReplaceRecords(ctx, partial)
	require.NoError(t, err)
	require.NoError(t, verifyExport(ctx, db, partial))

	err = verifyExport(ctx, db, full)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stored 1 rows, want 2")
}
