package history

import (
	"errors"
	"fmt"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"time"
)

// Store keeps one record per update run in a bbolt file.
type Store struct {
	db       *bolt.DB
	readOnly bool
}

type OpenOptions struct {
	Path string // state.path, e.g. "./.vox/history.db"
	// ReadOnly opens with a shared lock and never creates the file.
	ReadOnly bool
	// Timeout bounds the wait for the file lock held by a running watcher
	// or scheduler. Zero means one second.
	Timeout time.Duration
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("history: missing path")
	}
	if opt.Timeout == 0 {
		opt.Timeout = time.Second
	}
	if opt.ReadOnly {
		if _, err := os.Stat(opt.Path); err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout:  opt.Timeout,
		ReadOnly: opt.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", opt.Path, err)
	}
	s := &Store{db: db, readOnly: opt.ReadOnly}
	if !opt.ReadOnly {
		if err := s.ensureBuckets(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bRuns, bMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
