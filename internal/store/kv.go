package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrVersionConflict is returned by Put when the stored version no longer
// matches the caller's expectation (another writer got there first).
var ErrVersionConflict = errors.New("kv: version conflict")

// KVRepo is a versioned key-value store. Versions start at 1 on first write
// and increment on every update, giving callers compare-and-swap semantics
// for read-modify-write cycles.
type KVRepo interface {
	// Get returns the value and version stored under key. A missing key is
	// not an error: it returns (nil, 0, nil).
	Get(ctx context.Context, key string) (value []byte, version int64, err error)

	// Put writes value under key. expect must be the version returned by the
	// preceding Get (0 for a key not yet present); on mismatch it returns
	// ErrVersionConflict and writes nothing.
	Put(ctx context.Context, key string, value []byte, expect int64) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

type kvRepo struct {
	db *sql.DB
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var value []byte
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT value, version FROM kv WHERE key = ?`, key,
	).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, version, nil
}

func (r *kvRepo) Put(ctx context.Context, key string, value []byte, expect int64) error {
	if expect == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO kv (key, version, value) VALUES (?, 1, ?)
			 ON CONFLICT(key) DO NOTHING`, key, value)
		if err != nil {
			return fmt.Errorf("kv insert %q: %w", key, err)
		}
		return checkAffected(res)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE kv SET value = ?, version = version + 1
		 WHERE key = ? AND version = ?`, value, key, expect)
	if err != nil {
		return fmt.Errorf("kv update %q: %w", key, err)
	}
	return checkAffected(res)
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}
