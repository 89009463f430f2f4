package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/journalkeeper/api/internal/domain/entity"
	"github.com/journalkeeper/api/internal/domain/repository"
)

type EntryRepository struct {
	pool *pgxpool.Pool
}

func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

func (r *EntryRepository) Create(ctx context.Context, e *entity.Entry) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO entries (timestamp_in_utc, utc_zone, content, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, e.TimestampUTC, e.UTCZone, e.Content, e.UserID)

	return row.Scan(&e.ID)
}

// GetByIDAndOwner scopes the lookup to the owner so a foreign entry is
// indistinguishable from a missing one.
func (r *EntryRepository) GetByIDAndOwner(ctx context.Context, id, userID int64) (*entity.Entry, error) {
	e := &entity.Entry{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, timestamp_in_utc, utc_zone, content, user_id
		FROM entries
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := row.Scan(&e.ID, &e.TimestampUTC, &e.UTCZone, &e.Content, &e.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EntryRepository) ListByOwner(ctx context.Context, userID int64) ([]*entity.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, timestamp_in_utc, utc_zone, content, user_id
		FROM entries
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*entity.Entry, 0)
	for rows.Next() {
		e := &entity.Entry{}
		if err := rows.Scan(&e.ID, &e.TimestampUTC, &e.UTCZone, &e.Content, &e.UserID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *EntryRepository) Update(ctx context.Context, e *entity.Entry) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE entries
		SET timestamp_in_utc = $1, utc_zone = $2, content = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5
	`, e.TimestampUTC, e.UTCZone, e.Content, e.ID, e.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) DeleteByIDAndOwner(ctx context.Context, id, userID int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.EntryRepository = (*EntryRepository)(nil)
