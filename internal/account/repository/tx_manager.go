package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/finalstore/backend/internal/account/domain"
	"github.com/finalstore/backend/internal/common/db"
)

// AccountTx groups the writes that must land atomically: the paired
// credential+profile insert at registration, and the email key move at
// profile edit. Identifier allocation happens inside the transaction from a
// database sequence, so concurrent registrations cannot collide.
type AccountTx interface {
	NextAccountID(ctx context.Context) (domain.AccountID, error)
	InsertCredential(ctx context.Context, cred domain.Credential) error
	InsertProfile(ctx context.Context, profile domain.Profile) error
	UpdateCredentialEmail(ctx context.Context, prevEmail, newEmail string) error
	UpdateProfile(ctx context.Context, prevEmail string, profile domain.Profile) (domain.Profile, error)
}

type AccountTxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx AccountTx) error) error
}

type PgAccountTxManager struct {
	pool *pgxpool.Pool
}

func NewPgAccountTxManager(pool *pgxpool.Pool) *PgAccountTxManager {
	return &PgAccountTxManager{pool: pool}
}

func (m *PgAccountTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx AccountTx) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, &pgAccountTx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type pgAccountTx struct {
	tx pgx.Tx
}

func (t *pgAccountTx) NextAccountID(ctx context.Context) (domain.AccountID, error) {
	start := time.Now()
	row := t.tx.QueryRow(ctx, `SELECT nextval('account_id_seq')`)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, db.HandleQueryError(err, nil, "allocate credential id", start)
	}
	db.MeasureQueryDuration("allocate credential id", start)
	return domain.AccountID(id), nil
}

func (t *pgAccountTx) InsertCredential(ctx context.Context, cred domain.Credential) error {
	start := time.Now()
	_, err := t.tx.Exec(
		ctx,
		`INSERT INTO credentials (id, email, password_hash, refresh_token)
		 VALUES ($1, $2, $3, $4)`,
		int64(cred.ID),
		cred.Email,
		cred.PasswordHash,
		nullableToken(cred.RefreshToken),
	)
	if isUniqueViolation(err) {
		return ErrEmailAlreadyExists
	}
	return db.HandleExecError(err, "insert credential", start)
}

func (t *pgAccountTx) InsertProfile(ctx context.Context, profile domain.Profile) error {
	start := time.Now()
	_, err := t.tx.Exec(
		ctx,
		`INSERT INTO profiles (id, email, name, phone, address, city, country)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		int64(profile.ID),
		profile.Email,
		profile.Name,
		profile.Phone,
		profile.Address,
		profile.City,
		profile.Country,
	)
	if isUniqueViolation(err) {
		return ErrEmailAlreadyExists
	}
	return db.HandleExecError(err, "insert profile", start)
}

func (t *pgAccountTx) UpdateCredentialEmail(ctx context.Context, prevEmail, newEmail string) error {
	start := time.Now()
	tag, err := t.tx.Exec(
		ctx,
		`UPDATE credentials SET email = $2 WHERE email = $1`,
		prevEmail,
		newEmail,
	)
	if isUniqueViolation(err) {
		return ErrEmailAlreadyExists
	}
	if err := db.HandleExecError(err, "update credential email", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

func (t *pgAccountTx) UpdateProfile(ctx context.Context, prevEmail string, profile domain.Profile) (domain.Profile, error) {
	start := time.Now()
	row := t.tx.QueryRow(
		ctx,
		`UPDATE profiles
		 SET email = $2, name = $3, phone = $4, address = $5, city = $6, country = $7
		 WHERE email = $1
		 RETURNING id, email, name, phone, address, city, country`,
		prevEmail,
		profile.Email,
		profile.Name,
		profile.Phone,
		profile.Address,
		profile.City,
		profile.Country,
	)

	var updated domain.Profile
	err := row.Scan(
		&updated.ID,
		&updated.Email,
		&updated.Name,
		&updated.Phone,
		&updated.Address,
		&updated.City,
		&updated.Country,
	)
	if isUniqueViolation(err) {
		return domain.Profile{}, ErrEmailAlreadyExists
	}
	if err := db.HandleQueryError(err, ErrProfileNotFound, "update profile", start); err != nil {
		return domain.Profile{}, err
	}
	return updated, nil
}

func nullableToken(token string) *string {
	if token == "" {
		return nil
	}
	return &token
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
