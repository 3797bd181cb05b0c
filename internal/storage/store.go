package storage

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	historyBucket = []byte("history")
	sessionBucket = []byte("session")
)

var sessionTokenKey = []byte("token")

// ReadMark records that a content item was opened in the reader.
type ReadMark struct {
	Key    string    `json:"key"` // owner_username/slug
	Title  string    `json:"title"`
	ReadAt time.Time `json:"read_at"`
}

// Store keeps local state that survives restarts: which contents were
// already opened, and the session token from the last login.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{historyBucket, sessionBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const writeRetries = 3

// retryWrite reruns a bolt update a few times; writes here are tiny and the
// only realistic failure is a transient lock from another tn process.
func retryWrite(fn func() error) error {
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return err
}

// MarkRead records that the content identified by key (owner/slug) was opened.
func (s *Store) MarkRead(key, title string) error {
	mark := ReadMark{Key: key, Title: title, ReadAt: time.Now()}
	return retryWrite(func() error {
		return s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(historyBucket)
			data, err := json.Marshal(mark)
			if err != nil {
				return err
			}
			return b.Put([]byte(key), data)
		})
	})
}

// IsRead reports whether the content was opened before.
func (s *Store) IsRead(key string) (bool, error) {
	var read bool
	err := s.db.View(func(tx *bolt.Tx) error {
		read = tx.Bucket(historyBucket).Get([]byte(key)) != nil
		return nil
	})
	return read, err
}

// ReadSet returns every recorded key, for marking a whole feed page at once.
func (s *Store) ReadSet() (map[string]bool, error) {
	set := make(map[string]bool)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(historyBucket).ForEach(func(k, _ []byte) error {
			set[string(k)] = true
			return nil
		})
	})
	return set, err
}

// SaveToken persists the session token so logins survive restarts.
func (s *Store) SaveToken(token string) error {
	return retryWrite(func() error {
		return s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(sessionBucket)
			if token == "" {
				return b.Delete(sessionTokenKey)
			}
			return b.Put(sessionTokenKey, []byte(token))
		})
	})
}

// Token returns the persisted session token, empty when never logged in.
func (s *Store) Token() (string, error) {
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		token = string(tx.Bucket(sessionBucket).Get(sessionTokenKey))
		return nil
	})
	return token, err
}
