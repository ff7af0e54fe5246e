package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/qbank/internal/question"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on questions.pos for newest-first listing
const currentSchemaVersion = 1

// SQLite is a RecordStore backed by a SQLite database file.
type SQLite struct {
	db  *sql.DB
	ids IDGenerator
}

var _ RecordStore = (*SQLite)(nil)

// OpenSQLite creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// Use ":memory:" for a throwaway database. This function is idempotent -
// safe to call multiple times on the same file.
func OpenSQLite(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, and ":memory:" databases
	// are per-connection, so keep a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	o := buildOptions(opts)
	return &SQLite{db: db, ids: o.ids}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seed inserts qs when the table is empty, keeping qs[0] first in List
// order. It reports whether anything was written.
func (s *SQLite) Seed(ctx context.Context, qs []question.Question) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, question.NewTransportError("seed: begin tx", err)
	}
	defer tx.Rollback() // No-op if committed

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return false, question.NewTransportError("seed: count", err)
	}
	if count > 0 {
		return false, nil
	}

	// Insert oldest first so the first seed record gets the highest pos.
	for i := len(qs) - 1; i >= 0; i-- {
		q := qs[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO questions (id, title, answer, tags, difficulty, pos)
			VALUES (?, ?, ?, ?, ?, ?)
		`, q.ID, q.Title, q.Answer, q.Tags.Joined(), string(q.Difficulty.OrDefault()), len(qs)-i)
		if err != nil {
			if isDuplicateKey(err) {
				return false, duplicateIDError(q.ID)
			}
			return false, question.NewTransportError("seed: insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, question.NewTransportError("seed: commit", err)
	}
	return true, nil
}

// List returns all records ordered by pos descending.
func (s *SQLite) List(ctx context.Context) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, answer, tags, difficulty
		FROM questions
		ORDER BY pos DESC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, question.NewTransportError("list questions", err)
	}
	defer rows.Close()

	qs := []question.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, question.NewTransportError("scan question", err)
		}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, question.NewTransportError("iterate questions", err)
	}
	return qs, nil
}

// Get returns the record with id.
func (s *SQLite) Get(ctx context.Context, id string) (question.Question, error) {
	return getQuestion(ctx, s.db, id)
}

// Add inserts a record above every existing one.
func (s *SQLite) Add(ctx context.Context, in question.Input) (question.Question, error) {
	if err := in.Validate(); err != nil {
		return question.Question{}, err
	}
	q := in.New(s.ids.Generate())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, title, answer, tags, difficulty, pos)
		SELECT ?, ?, ?, ?, ?, COALESCE(MAX(pos), 0) + 1 FROM questions
	`, q.ID, q.Title, q.Answer, q.Tags.Joined(), string(q.Difficulty))
	if err != nil {
		if isDuplicateKey(err) {
			return question.Question{}, duplicateIDError(q.ID)
		}
		return question.Question{}, question.NewTransportError("add question", err)
	}
	return q, nil
}

// Update reads, merges and writes back in one transaction.
func (s *SQLite) Update(ctx context.Context, p question.Patch) (question.Question, error) {
	if err := p.Validate(); err != nil {
		return question.Question{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return question.Question{}, question.NewTransportError("update question: begin tx", err)
	}
	defer tx.Rollback() // No-op if committed

	current, err := getQuestion(ctx, tx, p.ID)
	if err != nil {
		return question.Question{}, err
	}
	updated := p.Apply(current)

	_, err = tx.ExecContext(ctx, `
		UPDATE questions
		SET title = ?, answer = ?, tags = ?, difficulty = ?
		WHERE id = ?
	`, updated.Title, updated.Answer, updated.Tags.Joined(), string(updated.Difficulty), updated.ID)
	if err != nil {
		return question.Question{}, question.NewTransportError("update question", err)
	}

	if err := tx.Commit(); err != nil {
		return question.Question{}, question.NewTransportError("update question: commit", err)
	}
	return updated, nil
}

// Remove deletes the record with id. Missing ids are not an error.
func (s *SQLite) Remove(ctx context.Context, id string) (string, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id); err != nil {
		return "", question.NewTransportError("remove question", err)
	}
	return id, nil
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getQuestion(ctx context.Context, db queryRower, id string) (question.Question, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, title, answer, tags, difficulty
		FROM questions
		WHERE id = ?
	`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Question{}, question.NewNotFoundError(id)
	}
	if err != nil {
		return question.Question{}, question.NewTransportError("get question", err)
	}
	return q, nil
}

func scanQuestion(row scanner) (question.Question, error) {
	var q question.Question
	var tags, difficulty string
	if err := row.Scan(&q.ID, &q.Title, &q.Answer, &tags, &difficulty); err != nil {
		return question.Question{}, err
	}
	q.Tags = question.ParseTags(tags)
	q.Difficulty = question.Difficulty(difficulty)
	return q, nil
}

// isDuplicateKey reports a primary key or unique violation. Other
// constraint failures (CHECK, NOT NULL) are not duplicates.
func isDuplicateKey(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		se.ExtendedCode == sqlite3.ErrConstraintUnique
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the pos index used by List.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_questions_pos ON questions(pos)`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLite) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
