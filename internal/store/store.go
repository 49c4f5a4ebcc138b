// Package store exports prepared trending tables for offline analysis.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

const timestampLayout = "2006-01-02 15:04:05"

// Row is one exported record.
type Row struct {
	ID                int64  `db:"id"`
	ChannelName       string `db:"channel_name"`
	Like              int64  `db:"likes"`
	Dislike           int64  `db:"dislikes"`
	View              int64  `db:"views"`
	Comment           int64  `db:"comments"`
	PublishTime       string `db:"publish_time"`
	TrendingTime      string `db:"trending_time"`
	PublishDate       string `db:"publish_date"`
	TrendingDate      string `db:"trending_date"`
	TrendingMonthName string `db:"trending_month_name"`
	TrendingDayName   string `db:"trending_day_name"`
}

func rowFrom(r dataset.Record) Row {
	return Row{
		ChannelName:       r.ChannelName,
		Like:              r.Like,
		Dislike:           r.Dislike,
		View:              r.View,
		Comment:           r.Comment,
		PublishTime:       r.PublishTime.Format(timestampLayout),
		TrendingTime:      r.TrendingTime.Format(timestampLayout),
		PublishDate:       r.PublishDate.String(),
		TrendingDate:      r.TrendingDate.String(),
		TrendingMonthName: r.TrendingMonthName,
		TrendingDayName:   r.TrendingDayName,
	}
}

// Store is the export interface.
type Store interface {
	ReplaceRecords(ctx context.Context, t *dataset.Table) (int, error)
	CountByChannel(ctx context.Context) (map[string]int, error)
	ListRecords(ctx context.Context, channel string) ([]Row, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceRecords swaps the stored rows for the rows of t in one transaction
// and returns the number written.
func (s *SQLiteStore) ReplaceRecords(ctx context.Context, t *dataset.Table) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO records (channel_name, likes, dislikes, views, comments, publish_time, trending_time,
			publish_date, trending_date, trending_month_name, trending_day_name)
		VALUES (:channel_name, :likes, :dislikes, :views, :comments, :publish_time, :trending_time,
			:publish_date, :trending_date, :trending_month_name, :trending_day_name)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for r := range t.All() {
		if _, err := stmt.ExecContext(ctx, rowFrom(r)); err != nil {
			return 0, fmt.Errorf("insert record %d: %w", n, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit export: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) CountByChannel(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT channel_name, COUNT(*) AS cnt FROM records GROUP BY channel_name")
	if err != nil {
		return nil, fmt.Errorf("count records by channel: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ch string
		var cnt int
		if err := rows.Scan(&ch, &cnt); err != nil {
			return nil, err
		}
		counts[ch] = cnt
	}
	return counts, rows.Err()
}

// ListRecords returns the stored rows of one channel, or every row when
// channel is empty, ordered by trending time.
func (s *SQLiteStore) ListRecords(ctx context.Context, channel string) ([]Row, error) {
	query := "SELECT * FROM records"
	var args []any
	if channel != "" {
		query += " WHERE channel_name = ?"
		args = append(args, channel)
	}
	query += " ORDER BY trending_time, id"

	var out []Row
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}
