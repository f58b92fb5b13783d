package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skilleval/internal/blueprint"
)

type profileRepo struct {
	db *sql.DB
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *profileRepo) Create(ctx context.Context, p *blueprint.Profile) error {
	stack, err := encodeJSON(p.TechStack)
	if err != nil {
		return err
	}
	types, err := encodeJSON(p.QuestionTypes)
	if err != nil {
		return err
	}

	query, args := sqlite().Insert(profilesTable).
		Columns(columnNames(ProfilesColumns)...).
		Values(p.ID, p.UserID, p.Role, string(p.Level), stack, types, p.Duration, p.Refinement, utc(p.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Get(ctx context.Context, id string) (*blueprint.Profile, error) {
	query, args := sqlite().Select(columnNames(ProfilesColumns)...).
		From(entsql.Table(profilesTable)).
		Where(entsql.EQ("id", id)).
		Query()

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Kind: "profile", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *profileRepo) ListByUser(ctx context.Context, userID string) ([]blueprint.Profile, error) {
	return r.list(ctx, entsql.EQ("user_id", userID))
}

func (r *profileRepo) List(ctx context.Context) ([]blueprint.Profile, error) {
	return r.list(ctx, nil)
}

func (r *profileRepo) list(ctx context.Context, where *entsql.Predicate) ([]blueprint.Profile, error) {
	sel := sqlite().Select(columnNames(ProfilesColumns)...).
		From(entsql.Table(profilesTable)).
		OrderBy(entsql.Desc("created_at"))
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []blueprint.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanProfile(row rowScanner) (*blueprint.Profile, error) {
	var (
		p            blueprint.Profile
		level        string
		stack, types string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Role, &level, &stack, &types, &p.Duration, &p.Refinement, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Level = blueprint.Level(level)
	if err := decodeJSON(stack, &p.TechStack); err != nil {
		return nil, err
	}
	if err := decodeJSON(types, &p.QuestionTypes); err != nil {
		return nil, err
	}
	return &p, nil
}
