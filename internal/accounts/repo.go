package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation = "23505"
	// createLockID is the advisory lock key taken by Create.
	createLockID int64 = 0x5a55_ac01
)

var _ Repository = (*PGRepo)(nil)

type PGRepo struct {
	pg *pgxpool.Pool
}

func NewPGRepo(pg *pgxpool.Pool) *PGRepo {
	return &PGRepo{pg: pg}
}

const selectAccount = `
SELECT id, email, name, password_hash, role, created_at, updated_at
FROM accounts`

// Create serialises inserts with a transaction-scoped advisory lock so that
// exactly one account can observe an empty table and become admin.
func (r *PGRepo) Create(ctx context.Context, p CreateParams) (*Account, error) {
	const q = `
INSERT INTO accounts (email, name, password_hash, role)
VALUES (
  $1, $2, $3,
  CASE WHEN EXISTS (SELECT 1 FROM accounts) THEN 'member' ELSE 'admin' END
)
RETURNING id, email, name, password_hash, role, created_at, updated_at`

	var a *Account
	err := pgx.BeginFunc(ctx, r.pg, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, createLockID); err != nil {
			return err
		}
		var err error
		a, err = scanAccount(tx.QueryRow(ctx, q, p.Email, p.Name, p.PasswordHash))
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return a, nil
}

func (r *PGRepo) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return scanAccount(r.pg.QueryRow(ctx, selectAccount+` WHERE email = $1 LIMIT 1`, email))
}

func (r *PGRepo) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return scanAccount(r.pg.QueryRow(ctx, selectAccount+` WHERE id = $1 LIMIT 1`, id))
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Account, error) {
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pg.Query(ctx, selectAccount+` ORDER BY created_at, email LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pg.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&n)
	return n, err
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
