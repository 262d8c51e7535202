package frames

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gifforge/internal/config"
	"gifforge/internal/normalize"
	"gifforge/internal/services"
)

// ErrWorkspaceLocked is returned when another gifforge process holds the
// workspace. At most one collection is live at a time.
var ErrWorkspaceLocked = errors.New("workspace is locked by another gifforge session")

// Store manages the frame collection persisted in the workspace SQLite
// database. It owns the ordering invariants: insertion order is animation
// order, positions stay dense, and ids never repeat.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock

	defaultDelayMS int
}

// Open locks the workspace, connects to the frame database, and applies the
// schema. Callers must Close the store to release the workspace lock.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.WorkspaceDir, "workspace.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !ok {
		return nil, ErrWorkspaceLocked
	}

	dbPath := filepath.Join(cfg.Paths.WorkspaceDir, "frames.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock, defaultDelayMS: cfg.Output.DelayMS}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the workspace lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) applySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("workspace schema version %d is not supported (want %d); run 'gifforge frames clear' to reset", version, schemaVersion)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO session (id, title, delay_ms, updated_at) VALUES (1, '', ?, ?)`,
		s.defaultDelayMS, now)
	if err != nil {
		return fmt.Errorf("seed session row: %w", err)
	}
	return nil
}

// Append assigns each normalized image a fresh unique id and appends the
// whole batch after any existing frames, preserving the batch's input order.
func (s *Store) Append(ctx context.Context, batch []normalize.Image) ([]Frame, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM frames`).Scan(&next); err != nil {
		return nil, fmt.Errorf("read next position: %w", err)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	appended := make([]Frame, 0, len(batch))
	for i, img := range batch {
		frame := Frame{
			ID:         uuid.NewString(),
			Position:   next + i,
			SourceName: img.SourceName,
			Width:      img.Width,
			Height:     img.Height,
			PNG:        img.PNG,
			CreatedAt:  now,
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO frames (id, position, source_name, width, height, png, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			frame.ID, frame.Position, frame.SourceName, frame.Width, frame.Height, frame.PNG, timestamp)
		if err != nil {
			return nil, fmt.Errorf("insert frame %d: %w", i, err)
		}
		appended = append(appended, frame)
	}

	// First batch names the session after its first frame.
	if next == 0 {
		title := DeriveTitle(batch[0].SourceName)
		if _, err := tx.ExecContext(ctx,
			`UPDATE session SET title = ?, updated_at = ? WHERE id = 1 AND title = ''`,
			title, timestamp); err != nil {
			return nil, fmt.Errorf("set session title: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit append: %w", err)
	}
	return appended, nil
}

// Remove deletes the frame with the given id and renumbers the remaining
// frames so positions stay dense. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM frames WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete frame: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil
	}

	if err := renumber(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove: %w", err)
	}
	return nil
}

func renumber(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM frames ORDER BY position`)
	if err != nil {
		return fmt.Errorf("list frames: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan frame id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("close rows: %w", err)
	}

	// Two passes avoid transient UNIQUE collisions on position.
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE frames SET position = ? WHERE id = ?`, -(i + 1), id); err != nil {
			return fmt.Errorf("stage position: %w", err)
		}
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE frames SET position = ? WHERE id = ?`, i, id); err != nil {
			return fmt.Errorf("assign position: %w", err)
		}
	}
	return nil
}

// Clear removes every frame and resets the session row.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM frames`); err != nil {
		return fmt.Errorf("clear frames: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`UPDATE session SET title = '', delay_ms = ?, updated_at = ? WHERE id = 1`,
		s.defaultDelayMS, now); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

// Size returns the current frame count.
func (s *Store) Size(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM frames`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count frames: %w", err)
	}
	return count, nil
}

// List returns every frame in animation order.
func (s *Store) List(ctx context.Context) ([]Frame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, source_name, width, height, png, created_at
         FROM frames ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	var result []Frame
	for rows.Next() {
		var frame Frame
		var createdAt string
		if err := rows.Scan(&frame.ID, &frame.Position, &frame.SourceName,
			&frame.Width, &frame.Height, &frame.PNG, &createdAt); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			frame.CreatedAt = parsed
		}
		result = append(result, frame)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}
	return result, nil
}

// Session returns the session row.
func (s *Store) Session(ctx context.Context) (Session, error) {
	var sess Session
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT title, delay_ms, updated_at FROM session WHERE id = 1`).
		Scan(&sess.Title, &sess.DelayMS, &updatedAt)
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		sess.UpdatedAt = parsed
	}
	return sess, nil
}

// SetDelay updates the per-frame display interval, bounded to the supported range.
func (s *Store) SetDelay(ctx context.Context, delayMS int) error {
	if delayMS < config.MinDelayMS || delayMS > config.MaxDelayMS {
		return services.Wrap(services.ErrValidation, "frames", "set delay",
			fmt.Sprintf("delay %dms outside %d-%dms", delayMS, config.MinDelayMS, config.MaxDelayMS), nil)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE session SET delay_ms = ?, updated_at = ? WHERE id = 1`, delayMS, now); err != nil {
		return fmt.Errorf("set delay: %w", err)
	}
	return nil
}
