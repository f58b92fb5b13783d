package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skilleval/internal/assess"
)

type testRepo struct {
	db *sql.DB
}

func (r *testRepo) Create(ctx context.Context, t *assess.Test) error {
	questions, err := encodeJSON(t.Questions)
	if err != nil {
		return err
	}
	meta, err := encodeJSON(t.Metadata)
	if err != nil {
		return err
	}

	query, args := sqlite().Insert(testsTable).
		Columns(columnNames(TestsColumns)...).
		Values(t.ID, t.ProfileID, questions, meta, utc(t.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert test: %w", err)
	}
	return nil
}

func (r *testRepo) Get(ctx context.Context, id string) (*assess.Test, error) {
	return r.getOne(ctx, entsql.EQ("id", id), id)
}

func (r *testRepo) GetByProfile(ctx context.Context, profileID string) (*assess.Test, error) {
	return r.getOne(ctx, entsql.EQ("profile_id", profileID), profileID)
}

func (r *testRepo) getOne(ctx context.Context, where *entsql.Predicate, key string) (*assess.Test, error) {
	query, args := sqlite().Select(columnNames(TestsColumns)...).
		From(entsql.Table(testsTable)).
		Where(where).
		OrderBy(entsql.Desc("created_at")).
		Limit(1).
		Query()

	var (
		t               assess.Test
		questions, meta string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.ProfileID, &questions, &meta, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Kind: "test", ID: key}
	}
	if err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}
	if err := decodeJSON(questions, &t.Questions); err != nil {
		return nil, err
	}
	if err := decodeJSON(meta, &t.Metadata); err != nil {
		return nil, err
	}
	return &t, nil
}
