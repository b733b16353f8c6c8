// Package catalog stores the published command catalog and advertises it on the chat platform.
package catalog

import (
	"cmdbot/internal/core/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS commands (
	name       TEXT PRIMARY KEY,
	help       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store persists the command catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the SQLite catalog at path and creates its table when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create catalog table: %w", err)
	}

	log.Debug().Str("path", path).Msg("opened command catalog")

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}

	return s.sqlDB.Close()
}

// Publish inserts info or replaces the entry with the same name.
func (s *Store) Publish(ctx context.Context, info domain.CommandInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		return errors.New("command name is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO commands (name, help, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET help = excluded.help, updated_at = excluded.updated_at`,
		name, strings.TrimSpace(info.Help), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}

	return nil
}

func (s *Store) Lookup(ctx context.Context, name string) (domain.CommandInfo, error) {
	var info domain.CommandInfo

	err := s.sqlDB.QueryRowContext(ctx, `SELECT name, help FROM commands WHERE name = ?`, name).
		Scan(&info.Name, &info.Help)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CommandInfo{}, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, name)
	}
	if err != nil {
		return domain.CommandInfo{}, fmt.Errorf("lookup %s: %w", name, err)
	}

	return info, nil
}

func (s *Store) List(ctx context.Context) ([]domain.CommandInfo, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name, help FROM commands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	defer rows.Close()

	infos := []domain.CommandInfo{}
	for rows.Next() {
		var info domain.CommandInfo
		if err := rows.Scan(&info.Name, &info.Help); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM commands WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}

	return nil
}
