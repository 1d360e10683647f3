package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// statements are applied in order and must stay idempotent.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS citizens (
  subject_id  TEXT PRIMARY KEY,
  email       TEXT NOT NULL,
  given_name  TEXT NOT NULL DEFAULT '',
  family_name TEXT NOT NULL DEFAULT '',
  avatar_url  TEXT NOT NULL DEFAULT '',
  role        TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('member', 'elevated')),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS citizens_created_at_idx ON citizens (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS modules (
  id          TEXT PRIMARY KEY,
  slug        TEXT NOT NULL,
  title       TEXT NOT NULL,
  summary     TEXT NOT NULL,
  body        TEXT NOT NULL,
  image_url   TEXT NOT NULL,
  category    TEXT NOT NULL DEFAULT 'natural' CHECK (category IN ('natural', 'safety')),
  tips        JSONB NOT NULL DEFAULT '{"before":[],"during":[],"after":[]}',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS modules_slug_key ON modules (slug)`,

	`CREATE TABLE IF NOT EXISTS quizzes (
  id          TEXT PRIMARY KEY,
  title       TEXT NOT NULL,
  summary     TEXT NOT NULL,
  image_url   TEXT NOT NULL,
  questions   JSONB NOT NULL DEFAULT '[]',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,

	`CREATE TABLE IF NOT EXISTS quiz_attempts (
  id           TEXT PRIMARY KEY,
  subject_id   TEXT NOT NULL,
  quiz_id      TEXT NOT NULL,
  score        INTEGER NOT NULL CHECK (score >= 0),
  total        INTEGER NOT NULL CHECK (total >= 1),
  completed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (score <= total)
)`,
	`CREATE INDEX IF NOT EXISTS quiz_attempts_completed_at_idx ON quiz_attempts (completed_at DESC)`,
	`CREATE INDEX IF NOT EXISTS quiz_attempts_owner_idx ON quiz_attempts (subject_id, quiz_id, completed_at DESC)`,

	`CREATE TABLE IF NOT EXISTS sos_requests (
  id                TEXT PRIMARY KEY,
  subject_id        TEXT NOT NULL,
  user_email        TEXT NOT NULL,
  user_display_name TEXT NOT NULL,
  location          TEXT NOT NULL,
  message           TEXT NOT NULL,
  status            TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
  operator_response TEXT NOT NULL DEFAULT '',
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (created_at <= updated_at)
)`,
	`CREATE INDEX IF NOT EXISTS sos_requests_created_at_idx ON sos_requests (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS sos_requests_owner_idx ON sos_requests (subject_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS sos_requests_pending_idx ON sos_requests (created_at) WHERE status = 'pending'`,
}

// Migrate applies the schema in a single transaction.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("pgx pool is nil")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migrate: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migrate: %w", err)
	}
	return nil
}
