package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/finalstore/backend/internal/account/domain"
	"github.com/finalstore/backend/internal/common/db"
)

type ProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) FindByEmail(ctx context.Context, email string) (domain.Profile, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, name, phone, address, city, country
		 FROM profiles
		 WHERE email = $1`,
		email,
	)

	var profile domain.Profile
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.Name,
		&profile.Phone,
		&profile.Address,
		&profile.City,
		&profile.Country,
	)
	if err := db.HandleQueryError(err, ErrProfileNotFound, "find profile by email", start); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

var ErrProfileNotFound = errors.New("profile not found")
