package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const DriverName = "sqlite3"

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sql.DB) *Storage {
	s := &Storage{
		db: sqlx.NewDb(db, DriverName),
	}
	err := s.RunMigrations()
	if err != nil {
		panic(fmt.Sprintf("sqlite: running migrations: %v", err))
	}
	return s
}

// SaveAuth stores the serialized OAuth token for an account, replacing any
// previous one.
func (s Storage) SaveAuth(ctx context.Context, accountID, auth string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, auth) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET auth=?;
	`, accountID, auth, auth)
	return err
}

func (s Storage) Auth(ctx context.Context, accountID string) (string, error) {
	var auth string
	err := s.db.GetContext(ctx, &auth, `
		SELECT auth FROM accounts WHERE id = ?
	`, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("sqlite: no token stored for account %q", accountID)
	}
	return auth, err
}

func (s Storage) RecordRun(ctx context.Context, run *Run) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (command, started_at, finished_at, rules, created, duplicates, deleted, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Command, run.StartedAt, run.FinishedAt, run.Rules, run.Created, run.Duplicates, run.Deleted, run.Errors)
	if err != nil {
		return err
	}
	run.ID, err = res.LastInsertId()
	return err
}

// Runs returns the most recent runs, newest first.
func (s Storage) Runs(ctx context.Context, limit int) ([]*Run, error) {
	var runs []*Run
	err := s.db.SelectContext(ctx, &runs, `
		SELECT id, command, started_at, finished_at, rules, created, duplicates, deleted, errors
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	return runs, err
}
