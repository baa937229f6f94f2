package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrSerializationConflict reports that a serializable transaction kept
// colliding with concurrent writers after all retry attempts.
var ErrSerializationConflict = errors.New("serializable transaction conflict")

const serializableAttempts = 3

// RunSerializable executes fn inside a SERIALIZABLE transaction. Serialization
// failures and deadlocks are retried up to three attempts; other errors pass
// through unchanged.
func (p *Postgres) RunSerializable(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < serializableAttempts; attempt++ {
		err = p.DB.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err == nil || !IsSerializationConflict(err) {
			return err
		}
	}
	return ErrSerializationConflict
}

func IsSerializationConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
