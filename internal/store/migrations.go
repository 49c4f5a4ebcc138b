package store

const schema = `
CREATE TABLE IF NOT EXISTS records (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    channel_name        TEXT NOT NULL,
    likes               INTEGER NOT NULL,
    dislikes            INTEGER NOT NULL,
    views               INTEGER NOT NULL,
    comments            INTEGER NOT NULL,
    publish_time        TEXT NOT NULL,
    trending_time       TEXT NOT NULL,
    publish_date        TEXT NOT NULL,
    trending_date       TEXT NOT NULL,
    trending_month_name TEXT NOT NULL,
    trending_day_name   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_channel ON records(channel_name);
CREATE INDEX IF NOT EXISTS idx_records_publish_date ON records(publish_date);
CREATE INDEX IF NOT EXISTS idx_records_trending_date ON records(trending_date);
`
