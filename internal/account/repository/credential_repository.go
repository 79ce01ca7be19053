package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/finalstore/backend/internal/account/domain"
	"github.com/finalstore/backend/internal/common/db"
)

type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.Credential, error)
	FindByRefreshToken(ctx context.Context, token string) (domain.Credential, error)
	UpdateRefreshToken(ctx context.Context, email string, token string) error
	ClearRefreshToken(ctx context.Context, email string) error
	UpdatePasswordHash(ctx context.Context, email string, hash string) error
}

type PgCredentialRepository struct {
	pool *pgxpool.Pool
}

func NewPgCredentialRepository(pool *pgxpool.Pool) *PgCredentialRepository {
	return &PgCredentialRepository{pool: pool}
}

func (r *PgCredentialRepository) FindByEmail(ctx context.Context, email string) (domain.Credential, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, password_hash, refresh_token, created_at
		 FROM credentials
		 WHERE email = $1`,
		email,
	)
	return scanCredential(row, "find credential by email", start)
}

func (r *PgCredentialRepository) FindByRefreshToken(ctx context.Context, token string) (domain.Credential, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, password_hash, refresh_token, created_at
		 FROM credentials
		 WHERE refresh_token = $1`,
		token,
	)
	return scanCredential(row, "find credential by refresh token", start)
}

func (r *PgCredentialRepository) UpdateRefreshToken(ctx context.Context, email string, token string) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`UPDATE credentials SET refresh_token = $2 WHERE email = $1`,
		email,
		token,
	)
	return db.HandleExecError(err, "update credential refresh token", start)
}

// ClearRefreshToken is idempotent: clearing an already clear token, or a
// token for an unknown email, is not an error.
func (r *PgCredentialRepository) ClearRefreshToken(ctx context.Context, email string) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`UPDATE credentials SET refresh_token = NULL WHERE email = $1`,
		email,
	)
	return db.HandleExecError(err, "clear credential refresh token", start)
}

func (r *PgCredentialRepository) UpdatePasswordHash(ctx context.Context, email string, hash string) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE credentials SET password_hash = $2 WHERE email = $1`,
		email,
		hash,
	)
	if err := db.HandleExecError(err, "update credential password hash", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

type credentialRow interface {
	Scan(dest ...interface{}) error
}

func scanCredential(row credentialRow, operation string, start time.Time) (domain.Credential, error) {
	var cred domain.Credential
	var refreshToken *string
	err := row.Scan(&cred.ID, &cred.Email, &cred.PasswordHash, &refreshToken, &cred.CreatedAt)
	if err := db.HandleQueryError(err, ErrCredentialNotFound, operation, start); err != nil {
		return domain.Credential{}, err
	}
	if refreshToken != nil {
		cred.RefreshToken = *refreshToken
	}
	return cred, nil
}

var ErrCredentialNotFound = pgx.ErrNoRows

var ErrEmailAlreadyExists = errors.New("email already exists")
