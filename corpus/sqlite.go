package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
)

// SQLStore keeps organizations and their questions in a SQLite database.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLStore opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLStore(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question database: %w", err)
	}
	// pragmas below are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLStore{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS organizations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		question_text TEXT NOT NULL,
		answer_text TEXT,
		status TEXT NOT NULL DEFAULT 'draft',
		category TEXT NOT NULL DEFAULT '',
		source_title TEXT NOT NULL DEFAULT '',
		source_requester TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (organization_id) REFERENCES organizations(id)
	);

	CREATE INDEX IF NOT EXISTS idx_questions_candidates
		ON questions(organization_id, status, updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// CreateOrganization registers an organization. Existing ids are left as is.
func (s *SQLStore) CreateOrganization(ctx context.Context, id, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		id, name, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create organization %q: %w", id, err)
	}
	return nil
}

// InsertQuestion stores q under an organization and returns its id. A new
// id is generated when q.ID is empty; an empty status is stored as draft.
func (s *SQLStore) InsertQuestion(ctx context.Context, organizationID string, q qsim.CandidateQuestion) (string, error) {
	return insertQuestion(ctx, s.db, s.now(), organizationID, q)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertQuestion(ctx context.Context, db execer, now time.Time, organizationID string, q qsim.CandidateQuestion) (string, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Status == "" {
		q.Status = qsim.StatusDraft
	}

	var answer sql.NullString
	if q.HasAnswer() {
		answer = sql.NullString{String: q.AnswerText, Valid: true}
	}

	ts := now.UnixNano()
	_, err := db.ExecContext(ctx,
		`INSERT INTO questions (
			id, organization_id, question_text, answer_text, status, category,
			source_title, source_requester, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, organizationID, q.QuestionText, answer, string(q.Status), q.Category,
		q.Source.Title, q.Source.Requester, ts, ts)
	if err != nil {
		return "", fmt.Errorf("failed to insert question %q: %w", q.ID, err)
	}
	return q.ID, nil
}

// UpdateAnswer records an answer and status for an existing question.
func (s *SQLStore) UpdateAnswer(ctx context.Context, id, answer string, status qsim.QuestionStatus) error {
	var value sql.NullString
	if strings.TrimSpace(answer) != "" {
		value = sql.NullString{String: answer, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET answer_text = ?, status = ?, updated_at = ? WHERE id = ?`,
		value, string(status), s.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("failed to update question %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update question %q: %w", id, sql.ErrNoRows)
	}
	return nil
}

// Import copies every organization and question of src in one transaction.
// It returns the number of questions written.
func (s *SQLStore) Import(ctx context.Context, src *Memory) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	count := 0
	for _, org := range src.Organizations() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO organizations (id, name, created_at) VALUES (?, '', ?)
			 ON CONFLICT(id) DO NOTHING`, org, now.UnixNano()); err != nil {
			return 0, fmt.Errorf("failed to import organization %q: %w", org, err)
		}
		for _, q := range src.Questions(org) {
			// later questions of a fixture are treated as more recent
			if _, err := insertQuestion(ctx, tx, now.Add(time.Duration(count)), org, q); err != nil {
				return 0, err
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return count, nil
}

// FetchCandidates returns the organization's completed, answered questions,
// most recently updated first, without ExcludeID, capped at Limit.
func (s *SQLStore) FetchCandidates(ctx context.Context, filter qsim.CandidateFilter) ([]qsim.CandidateQuestion, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM organizations WHERE id = ?`, filter.OrganizationID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrganization, filter.OrganizationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up organization: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_text, answer_text, status, category, source_title, source_requester
		 FROM questions
		 WHERE organization_id = ?
		   AND status = ?
		   AND answer_text IS NOT NULL
		   AND trim(answer_text) <> ''
		   AND id <> ?
		 ORDER BY updated_at DESC, id
		 LIMIT ?`,
		filter.OrganizationID, string(qsim.StatusCompleted), filter.ExcludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]qsim.CandidateQuestion, 0)
	for rows.Next() {
		var (
			q      qsim.CandidateQuestion
			answer sql.NullString
			status string
		)
		if err := rows.Scan(&q.ID, &q.QuestionText, &answer, &status, &q.Category,
			&q.Source.Title, &q.Source.Requester); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		q.AnswerText = answer.String
		q.Status = qsim.QuestionStatus(status)
		candidates = append(candidates, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}
