package submission

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	logBucketName = "submissions"
	logKey        = "submission_log"
)

// LogStore is the persistence capability behind the submission log: a
// single key/value slot holding the full serialized snapshot of the
// log. It is read once at startup, overwritten on every append, and
// deleted on clear.
type LogStore interface {
	// Read returns the persisted snapshot, or ok=false if none exists
	Read() (snapshot []byte, ok bool, err error)

	// Write overwrites the snapshot in full
	Write(snapshot []byte) error

	// Delete removes the snapshot; deleting an absent snapshot is not an error
	Delete() error
}

// BoltStore implements the LogStore interface using BoltDB, with one
// bucket and one fixed key.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore creates a new BoltStore instance
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(logBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Read returns the persisted log snapshot
func (b *BoltStore) Read() ([]byte, bool, error) {
	var snapshot []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(logBucketName))
		data := bucket.Get([]byte(logKey))
		if data != nil {
			snapshot = make([]byte, len(data))
			copy(snapshot, data)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading log snapshot: %w", err)
	}
	return snapshot, snapshot != nil, nil
}

// Write overwrites the persisted log snapshot
func (b *BoltStore) Write(snapshot []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(logBucketName))
		return bucket.Put([]byte(logKey), snapshot)
	})
	if err != nil {
		return fmt.Errorf("writing log snapshot: %w", err)
	}
	return nil
}

// Delete removes the persisted log snapshot
func (b *BoltStore) Delete() error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(logBucketName))
		return bucket.Delete([]byte(logKey))
	})
	if err != nil {
		return fmt.Errorf("deleting log snapshot: %w", err)
	}
	return nil
}

// Close closes the database connection
func (b *BoltStore) Close() error {
	return b.db.Close()
}
