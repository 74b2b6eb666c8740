package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool used by the storage. Tests substitute
// a pgxmock pool through the same interface.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Users returns the account repository.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT NOT NULL,
            password_hash TEXT NOT NULL DEFAULT '',
            google_id TEXT,
            name TEXT NOT NULL DEFAULT '',
            picture TEXT NOT NULL DEFAULT '',
            account_number TEXT UNIQUE NOT NULL,
            balance DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_local ON users(email) WHERE password_hash <> ''`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_google_id ON users(google_id) WHERE google_id IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const userColumns = `id, email, password_hash, COALESCE(google_id, ''), name, picture, account_number, balance, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.GoogleID, &u.Name, &u.Picture, &u.AccountNumber, &u.Balance, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash, accountNumber string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, account_number) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, accountNumber).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	u.AccountNumber = accountNumber
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1 AND password_hash <> ''`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

// FindOrCreateFederated upserts on the provider subject id: racing first
// logins hit the partial unique index instead of creating duplicates.
// Name, picture and email are refreshed from the provider on every login.
func (r *userRepository) FindOrCreateFederated(ctx context.Context, profile model.FederatedProfile) (*model.User, error) {
	const query = `INSERT INTO users (email, google_id, name, picture, account_number)
                   VALUES ($1, $2, $3, $4, $2)
                   ON CONFLICT (google_id) WHERE google_id IS NOT NULL DO UPDATE
                   SET email = EXCLUDED.email,
                       name = EXCLUDED.name,
                       picture = EXCLUDED.picture
                   RETURNING ` + userColumns
	return scanUser(r.storage.pool.QueryRow(ctx, query, profile.Email, profile.SubjectID, profile.Name, profile.Picture))
}

func (r *userRepository) Deposit(ctx context.Context, userID int64, amount float64) error {
	const query = `UPDATE users SET balance = balance + $2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, userID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Transfer debits the sender and credits the recipient inside one
// transaction. Both rows are locked in id order so that opposing transfers
// cannot deadlock. An unresolvable recipient aborts before any debit.
func (r *userRepository) Transfer(ctx context.Context, fromID int64, toAccount string, amount float64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const resolveQuery = `SELECT id FROM users WHERE account_number=$1 OR google_id=$1`
		var toID int64
		if err := tx.QueryRow(ctx, resolveQuery, toAccount).Scan(&toID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if toID == fromID {
			return domainErrors.ErrInvalidAmount
		}

		const lockQuery = `SELECT id, balance FROM users WHERE id = $1 OR id = $2 ORDER BY id FOR UPDATE`
		rows, err := tx.Query(ctx, lockQuery, fromID, toID)
		if err != nil {
			return err
		}
		defer rows.Close()

		var senderBalance float64
		senderFound := false
		for rows.Next() {
			var id int64
			var balance float64
			if err := rows.Scan(&id, &balance); err != nil {
				return err
			}
			if id == fromID {
				senderBalance = balance
				senderFound = true
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		if !senderFound {
			return domainErrors.ErrNotFound
		}
		if senderBalance < amount {
			return domainErrors.ErrInsufficientBalance
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET balance = balance - $2 WHERE id=$1`, fromID, amount); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET balance = balance + $2 WHERE id=$1`, toID, amount); err != nil {
			return err
		}
		return nil
	})
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
