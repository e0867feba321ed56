package repository

import (
	"context"
	"database/sql"
	"errors"

	"seedble/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type Profile struct {
	ID         uuid.UUID
	Email      string
	FullName   string
	AvatarURL  string
	Role       string
	Department string
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Profile, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListCandidates(ctx context.Context) ([]Profile, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, COALESCE(avatar_url, ''), role, department
		 FROM profiles WHERE id = $1`,
		id,
	)

	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Role, &p.Department); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresUserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ListCandidates(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, full_name, COALESCE(avatar_url, ''), role, department
		 FROM profiles
		 ORDER BY full_name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Profile, 0)
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Role, &p.Department); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
