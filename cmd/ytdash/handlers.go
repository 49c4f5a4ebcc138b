package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/elonfeng/ytdash/internal/config"
	"github.com/elonfeng/ytdash/internal/logging"
	"github.com/elonfeng/ytdash/internal/store"
	"github.com/elonfeng/ytdash/pkg/dataset"
	"github.com/elonfeng/ytdash/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)
	return cfg, nil
}

// loadTable reads and prepares the trending CSV. A missing column or an
// unreadable file is fatal.
func loadTable(cfg *config.Config) (*dataset.Table, error) {
	raw, err := dataset.LoadFile(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	t := dataset.Prepare(raw, cfg.Data.TopN)
	attrs := []any{
		"path", cfg.Data.Path,
		"rows_read", len(raw),
		"rows_kept", t.Len(),
		"channels", len(t.Channels()),
	}
	if minPublish, maxTrending, ok := t.Bounds(); ok {
		attrs = append(attrs, "min_publish_date", minPublish.String(), "max_trending_date", maxTrending.String())
	}
	slog.Info("dataset prepared", attrs...)
	return t, nil
}

func runServe(port int, dataPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	t, err := loadTable(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(t, server.Options{
		Addr:           cfg.Server.Addr(),
		DefaultChannel: cfg.Data.DefaultChannel,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		Logger:         slog.Default(),
	})
	if srv.DefaultChannel() != cfg.Data.DefaultChannel {
		slog.Warn("default channel not in dataset", "configured", cfg.Data.DefaultChannel, "using", srv.DefaultChannel())
	}
	return srv.ListenAndServe(ctx)
}

func runChannels(w io.Writer, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadTable(cfg)
	if err != nil {
		return err
	}
	return printChannels(w, t.Channels(), jsonOutput)
}

func printChannels(w io.Writer, channels []dataset.ChannelSummary, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(channels)
	}

	if len(channels) == 0 {
		fmt.Fprintln(w, "no channels found (check the dataset path and its rows)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROWS\tFIRST PUBLISH\tLAST TRENDING\tCHANNEL")
	for _, c := range channels {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.Rows, c.FirstPublish, c.LastTrending, c.Name)
	}
	return tw.Flush()
}

func runExport(w io.Writer, out string, verify bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out == "" {
		out = cfg.Export.DBPath
	}

	t, err := loadTable(cfg)
	if err != nil {
		return err
	}
	return exportTable(context.Background(), w, out, t, verify)
}

// exportTable writes t to the SQLite file at path and prints the stored row
// count per channel. With verify, every channel is read back and compared
// against t.
func exportTable(ctx context.Context, w io.Writer, path string, t *dataset.Table, verify bool) error {
	db, err := store.New(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	n, err := db.ReplaceRecords(ctx, t)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	counts, err := db.CountByChannel(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROWS\tCHANNEL")
	for _, c := range t.Channels() {
		fmt.Fprintf(tw, "%d\t%s\n", counts[c.Name], c.Name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if verify {
		if err := verifyExport(ctx, db, t); err != nil {
			return err
		}
		fmt.Fprintln(w, "verified")
	}
	fmt.Fprintf(w, "exported %d rows to %s\n", n, path)
	return nil
}

func verifyExport(ctx context.Context, db store.Store, t *dataset.Table) error {
	for _, c := range t.Channels() {
		rows, err := db.ListRecords(ctx, c.Name)
		if err != nil {
			return err
		}
		if len(rows) != c.Rows {
			return fmt.Errorf("verify %s: stored %d rows, want %d", c.Name, len(rows), c.Rows)
		}

		first, last := rows[0].PublishDate, rows[0].TrendingDate
		for _, r := range rows[1:] {
			first = min(first, r.PublishDate)
			last = max(last, r.TrendingDate)
		}
		if first != c.FirstPublish.String() || last != c.LastTrending.String() {
			return fmt.Errorf("verify %s: stored dates %s..%s, want %s..%s",
				c.Name, first, last, c.FirstPublish, c.LastTrending)
		}
	}
	return nil
}
