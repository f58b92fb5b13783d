package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skilleval/internal/assess"
)

type attemptRepo struct {
	db *sql.DB
}

// attemptRow holds the encoded mutable columns of an attempt.
type attemptRow struct {
	answers    string
	endTime    any
	score      any
	evaluation any
}

func encodeAttempt(a *assess.Attempt) (*attemptRow, error) {
	answers := a.Answers
	if answers == nil {
		answers = []assess.Answer{}
	}
	enc, err := encodeJSON(answers)
	if err != nil {
		return nil, err
	}
	row := &attemptRow{answers: enc}
	if a.EndTime != nil {
		row.endTime = utc(*a.EndTime)
	}
	if a.Score != nil {
		row.score = *a.Score
	}
	if a.Evaluation != nil {
		ev, err := encodeJSON(a.Evaluation)
		if err != nil {
			return nil, err
		}
		row.evaluation = ev
	}
	return row, nil
}

func (r *attemptRepo) Create(ctx context.Context, a *assess.Attempt) error {
	row, err := encodeAttempt(a)
	if err != nil {
		return err
	}

	query, args := sqlite().Insert(attemptsTable).
		Columns(columnNames(AttemptsColumns)...).
		Values(a.ID, a.TestID, a.UserID, row.answers, utc(a.StartTime), row.endTime, row.score, row.evaluation, a.Completed).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Get(ctx context.Context, id string) (*assess.Attempt, error) {
	query, args := sqlite().Select(columnNames(AttemptsColumns)...).
		From(entsql.Table(attemptsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	a, err := scanAttempt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Kind: "attempt", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return a, nil
}

func (r *attemptRepo) Update(ctx context.Context, a *assess.Attempt) error {
	row, err := encodeAttempt(a)
	if err != nil {
		return err
	}

	query, args := sqlite().Update(attemptsTable).
		Set("answers", row.answers).
		Set("end_time", row.endTime).
		Set("score", row.score).
		Set("evaluation", row.evaluation).
		Set("completed", a.Completed).
		Where(entsql.And(entsql.EQ("id", a.ID), entsql.EQ("completed", false))).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	if n == 0 {
		if _, err := r.Get(ctx, a.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrAttemptCompleted, a.ID)
	}
	return nil
}

func (r *attemptRepo) ListByUser(ctx context.Context, userID string) ([]assess.Attempt, error) {
	return r.list(ctx, entsql.EQ("user_id", userID))
}

func (r *attemptRepo) List(ctx context.Context) ([]assess.Attempt, error) {
	return r.list(ctx, nil)
}

func (r *attemptRepo) list(ctx context.Context, where *entsql.Predicate) ([]assess.Attempt, error) {
	sel := sqlite().Select(columnNames(AttemptsColumns)...).
		From(entsql.Table(attemptsTable)).
		OrderBy(entsql.Asc("start_time"))
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []assess.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAttempt(row rowScanner) (*assess.Attempt, error) {
	var (
		a          assess.Attempt
		answers    string
		endTime    sql.NullTime
		score      sql.NullInt64
		evaluation sql.NullString
	)
	if err := row.Scan(&a.ID, &a.TestID, &a.UserID, &answers, &a.StartTime, &endTime, &score, &evaluation, &a.Completed); err != nil {
		return nil, err
	}
	if err := decodeJSON(answers, &a.Answers); err != nil {
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		a.EndTime = &t
	}
	if score.Valid {
		s := int(score.Int64)
		a.Score = &s
	}
	if evaluation.Valid && evaluation.String != "" {
		var res assess.EvaluationResult
		if err := decodeJSON(evaluation.String, &res); err != nil {
			return nil, err
		}
		a.Evaluation = &res
	}
	return &a, nil
}
