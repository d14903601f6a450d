package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
	bolt "go.etcd.io/bbolt"
)

// DefaultBucket holds recorded trees when Options.Bucket is empty.
const DefaultBucket = "snapshots"

var (
	ErrNotFound = zerr.New("snapshot: not found")
	ErrExpired  = zerr.New("snapshot: expired")
)

// Store persists recorded trees keyed by application id, with TTL semantics.
// It is safe for concurrent use by multiple goroutines.
type Store struct {
	db         *bolt.DB
	bucket     []byte
	defaultTTL time.Duration
	clock      clockwork.Clock
	mu         sync.RWMutex
}

type Options struct {
	// Bucket is the name of the Bolt bucket to use.
	Bucket string
	// DefaultTTL is used when Put is called with ttl <= 0.
	DefaultTTL time.Duration
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// Open initializes or opens a Store at the given path, creating parent
// directories as needed.
func Open(path string, opts Options) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to create snapshot directory"), "path", path)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open snapshot db"), "path", path)
	}
	bucket := []byte(DefaultBucket)
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, "failed to create snapshot bucket")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{db: db, bucket: bucket, defaultTTL: opts.DefaultTTL, clock: clock}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores the tree of appID with an absolute expiration computed as now+ttl.
// If ttl <= 0, DefaultTTL is used; if DefaultTTL <= 0, the tree never expires.
func (s *Store) Put(appID string, root *Node, ttl time.Duration) error {
	if err := root.validate("/"); err != nil {
		return err
	}
	value, err := json.Marshal(root)
	if err != nil {
		return zerr.Wrap(err, "failed to encode snapshot")
	}
	expiresAt := int64(0)
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl > 0 {
		expiresAt = s.clock.Now().Add(ttl).Unix()
	}
	// Layout: 8 bytes big endian expiresAt || json tree
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresAt))
	copy(buf[8:], value)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(appID), buf)
	})
}

// Get returns the recorded tree of appID if present and not expired.
func (s *Store) Get(appID string) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []byte
	var expired, exists bool
	if err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(appID))
		if v == nil {
			return nil
		}
		exists = true
		if s.expired(v) {
			expired = true
			return nil
		}
		out = append([]byte(nil), v[8:]...)
		return nil
	}); err != nil {
		return nil, err
	}
	if !exists {
		return nil, zerr.With(zerr.Wrap(ErrNotFound, "get snapshot"), "application", appID)
	}
	if expired {
		return nil, zerr.With(zerr.Wrap(ErrExpired, "get snapshot"), "application", appID)
	}
	var n Node
	if err := json.Unmarshal(out, &n); err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidSnapshot, "decode stored tree"), "application", appID)
	}
	return &n, nil
}

// Load implements Source.
func (s *Store) Load(appID string) (*Node, error) { return s.Get(appID) }

// List returns the ids of all unexpired recordings in key order.
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			if !s.expired(v) {
				ids = append(ids, string(k))
			}
			return nil
		})
	})
	return ids, err
}

// Delete removes the recording of appID.
func (s *Store) Delete(appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(appID))
	})
}

func (s *Store) expired(v []byte) bool {
	if len(v) < 8 {
		return true
	}
	expiresAt := int64(binary.BigEndian.Uint64(v[:8]))
	return expiresAt > 0 && s.clock.Now().Unix() > expiresAt
}
