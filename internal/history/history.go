package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"quizbot/internal/runner"
)

// Open opens (creating if needed) the history database at path and makes
// sure the schema exists.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return db, nil
}

// Ingest stores a run. Re-ingesting the same run ID replaces the stored
// rows, so the operation is idempotent.
func Ingest(ctx context.Context, db *sql.DB, results runner.Results) error {
	if db == nil {
		return fmt.Errorf("history: db is nil")
	}
	if results.RunID == "" {
		return fmt.Errorf("history: run ID is empty")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"question_results", "quiz_results", "runs"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id = ?", table), results.RunID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	summary := results.Summary
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, site, started_at, finished_at,
		   quizzes_total, quizzes_completed, claims_confirmed,
		   questions_total, questions_answered, cache_hits, llm_fallbacks, guesses)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID, results.Site, results.StartedAt, results.FinishedAt,
		summary.QuizzesTotal, summary.QuizzesCompleted, summary.ClaimsConfirmed,
		summary.QuestionsTotal, summary.QuestionsAnswered,
		summary.CacheHits, summary.LLMFallbacks, summary.Guesses,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, quiz := range results.Quizzes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quiz_results (run_id, name, path, status, failure_reason,
			   claim_attempted, claim_solved, claim_confirmed, claim_error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			results.RunID, quiz.Name, quiz.Path, quiz.Status, quiz.FailureReason,
			quiz.Claim.Attempted, quiz.Claim.Solved, quiz.Claim.Confirmed, nullable(quiz.Claim.Error),
		); err != nil {
			return fmt.Errorf("insert quiz %s: %w", quiz.Name, err)
		}
		for _, question := range quiz.Questions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO question_results (question_id, run_id, quiz_name, idx,
				   question, answer, option_text, method, score, answered, error, wall_time_seconds)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				question.ID, results.RunID, quiz.Name, question.Index,
				question.Question, question.Answer, question.Option, question.Method,
				question.Score, question.Answered, nullable(question.Error), question.WallTimeSeconds,
			); err != nil {
				return fmt.Errorf("insert question %s: %w", question.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}
	return nil
}

// RunRow is one stored run in reverse chronological listings.
type RunRow struct {
	RunID             string
	Site              string
	StartedAt         time.Time
	FinishedAt        time.Time
	QuizzesTotal      int
	QuizzesCompleted  int
	ClaimsConfirmed   int
	QuestionsTotal    int
	QuestionsAnswered int
	CacheHits         int
	LLMFallbacks      int
	Guesses           int
}

// RecentRuns lists the most recent runs, newest first.
func RecentRuns(ctx context.Context, db *sql.DB, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx,
		`SELECT run_id, site, started_at, finished_at,
		   quizzes_total, quizzes_completed, claims_confirmed,
		   questions_total, questions_answered, cache_hits, llm_fallbacks, guesses
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(
			&row.RunID, &row.Site, &row.StartedAt, &row.FinishedAt,
			&row.QuizzesTotal, &row.QuizzesCompleted, &row.ClaimsConfirmed,
			&row.QuestionsTotal, &row.QuestionsAnswered,
			&row.CacheHits, &row.LLMFallbacks, &row.Guesses,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// nullable maps empty strings to SQL NULL.
func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
