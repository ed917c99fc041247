package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	bbolt "go.etcd.io/bbolt"

	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

// collection is a typed view over one bucket. Documents are stored as JSON
// under their uuid key; filtering happens in memory after decode.
type collection[T any] struct {
	db     *bbolt.DB
	bucket []byte
	name   string
}

func newCollection[T any](db *bbolt.DB, bucket string) collection[T] {
	return collection[T]{db: db, bucket: []byte(bucket), name: bucket}
}

func (c collection[T]) put(id uuid.UUID, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", c.name, err)
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(c.bucket).Put(id[:], data)
	})
}

func (c collection[T]) get(id uuid.UUID) (*T, error) {
	var doc *T
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(c.bucket).Get(id[:])
		if data == nil {
			return apperrors.NotFound(c.resource(), nil)
		}
		doc = new(T)
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("failed to decode %s document: %w", c.name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// update overwrites an existing document, failing when it does not exist.
func (c collection[T]) update(id uuid.UUID, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", c.name, err)
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b.Get(id[:]) == nil {
			return apperrors.NotFound(c.resource(), nil)
		}
		return b.Put(id[:], data)
	})
}

func (c collection[T]) delete(id uuid.UUID) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b.Get(id[:]) == nil {
			return apperrors.NotFound(c.resource(), nil)
		}
		return b.Delete(id[:])
	})
}

// list decodes every document in the bucket and keeps those the predicate
// accepts. A nil predicate keeps everything.
func (c collection[T]) list(keep func(*T) bool) ([]*T, error) {
	var docs []*T
	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(c.bucket).ForEach(func(_, data []byte) error {
			doc := new(T)
			if err := json.Unmarshal(data, doc); err != nil {
				return fmt.Errorf("failed to decode %s document: %w", c.name, err)
			}
			if keep == nil || keep(doc) {
				docs = append(docs, doc)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// deleteWhere removes every document the predicate accepts and reports how
// many went away.
func (c collection[T]) deleteWhere(match func(*T) bool) (int64, error) {
	var deleted int64
	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.bucket)
		var keys [][]byte
		err := b.ForEach(func(k, data []byte) error {
			doc := new(T)
			if err := json.Unmarshal(data, doc); err != nil {
				return fmt.Errorf("failed to decode %s document: %w", c.name, err)
			}
			if match(doc) {
				key := make([]byte, len(k))
				copy(key, k)
				keys = append(keys, key)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		deleted = int64(len(keys))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// resource turns a bucket name into the singular used in error messages.
func (c collection[T]) resource() string {
	if len(c.name) > 1 && c.name[len(c.name)-1] == 's' {
		return c.name[:len(c.name)-1]
	}
	return c.name
}
