// Package bolt implements the repository interfaces on an embedded bbolt
// file. It backs standalone deployments that run without postgres; every
// entity lives in its own bucket as a JSON document keyed by id.
package bolt

import (
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var buckets = []string{
	"users",
	"clients",
	"vehicles",
	"services",
	"shifts",
	"appointments",
	"appointment_services",
	"notifications",
}

// Store owns the bbolt handle shared by all repositories.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the database file and ensures all buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle, used by health checks.
func (s *Store) DB() *bbolt.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}
