package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned by every BlobStore when a key holds no value
var ErrNotFound = errors.New("blob not found")

// BlobStore is durable key-value storage for opaque blobs
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type NoRowsError struct {
	NoRows bool
	Err    error
}

func (nr NoRowsError) Error() string {
	return fmt.Sprintf("%v: no rows returned for scan: %v", nr.NoRows, nr.Err)
}

func (nr NoRowsError) Is(target error) bool {
	return target == ErrNotFound
}

func (nr NoRowsError) Unwrap() error {
	return nr.Err
}

// BlobDatabase stores blobs in the palette_blobs table created by the migrations package
type BlobDatabase struct {
	database *sql.DB
}

func NewBlobDatabase(db *sql.DB) (BlobDatabase, error) {
	var blobDB BlobDatabase
	if db == nil {
		return blobDB, fmt.Errorf("blob database requires a connection")
	}
	blobDB.database = db
	return blobDB, nil
}

// Get retrieves the blob stored under key
func (bdb BlobDatabase) Get(ctx context.Context, key string) ([]byte, error) {
	db := bdb.database

	sqlStatement := `
		SELECT value
		FROM palette_blobs
		WHERE key = $1`

	var value []byte
	err := db.QueryRowContext(ctx, sqlStatement, key).Scan(&value)

	switch err {
	case sql.ErrNoRows:
		return nil, NoRowsError{true, err}
	case nil:
		return value, nil
	default:
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
}

// Put inserts or replaces the blob stored under key
func (bdb BlobDatabase) Put(ctx context.Context, key string, value []byte) error {
	db := bdb.database

	sqlStatement := `
		INSERT INTO palette_blobs (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := db.ExecContext(ctx, sqlStatement, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}

	return nil
}

// Delete removes the blob stored under key
func (bdb BlobDatabase) Delete(ctx context.Context, key string) error {
	db := bdb.database

	sqlStatement := `DELETE FROM palette_blobs WHERE key = $1`
	_, err := db.ExecContext(ctx, sqlStatement, key)

	return err
}
