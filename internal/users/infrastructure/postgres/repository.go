package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/services/internal/users/application"
	"github.com/shopcore/services/internal/users/domain"
)

const uniqueViolation = "23505"

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name     TEXT NOT NULL,
			street        TEXT NOT NULL,
			city          TEXT NOT NULL,
			state         TEXT NOT NULL,
			postal_code   TEXT NOT NULL,
			country       TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *Repository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, street, city, state, postal_code, country, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		u.Email, u.PasswordHash, u.FullName,
		u.Address.Street, u.Address.City, u.Address.State, u.Address.PostalCode, u.Address.Country,
		u.CreatedAt,
	).Scan(&u.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.User{}, application.ErrEmailTaken
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, `
		SELECT id, email, password_hash, full_name, street, city, state, postal_code, country, created_at
		FROM users WHERE email=$1`, email)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return r.get(ctx, `
		SELECT id, email, password_hash, full_name, street, city, state, postal_code, country, created_at
		FROM users WHERE id=$1`, id)
}

func (r *Repository) get(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Address.Street, &u.Address.City, &u.Address.State, &u.Address.PostalCode, &u.Address.Country,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, application.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
