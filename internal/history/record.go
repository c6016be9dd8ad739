package history

import (
	"encoding/json"
	"errors"
	bolt "go.etcd.io/bbolt"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrReadOnly = errors.New("history: store opened read-only")
)

// RunRecord describes one update run. It is a log entry only; runs never read
// it back to decide what the index should contain.
type RunRecord struct {
	At         time.Time `json:"at"`
	Posts      int       `json:"posts"`
	Drafts     int       `json:"drafts"`
	UniqueTags int       `json:"unique_tags"`
	Recent     []string  `json:"recent"`
	TopTags    []string  `json:"top_tags"`
	Changed    bool      `json:"changed"`
	CorpusHash string    `json:"corpus_hash"`
	ConfigHash string    `json:"config_hash"`
	OutputHash string    `json:"output_hash"`
	RunHash    string    `json:"run_hash"`
}

func (s *Store) Record(r RunRecord) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if r.At.IsZero() {
		r.At = time.Now()
	}
	v, err := json.Marshal(r)
	if err != nil {
		return err
	}
	key := makeTimeKey(r.At.UnixNano(), r.RunHash)

	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bRuns)
		meta := tx.Bucket(bMeta)
		if err := runs.Put(key, v); err != nil {
			return err
		}
		// out-of-order inserts must not move "last" backwards
		if cur := meta.Get(keyLast); cur != nil {
			if t, ok := unixNanoFromTimeKey(cur); ok && t > r.At.UnixNano() {
				return nil
			}
		}
		return meta.Put(keyLast, key)
	})
}

func (s *Store) Last() (RunRecord, error) {
	var r RunRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bMeta)
		runs := tx.Bucket(bRuns)
		if meta == nil || runs == nil {
			return ErrNotFound
		}
		k := meta.Get(keyLast)
		if k == nil {
			return ErrNotFound
		}
		v := runs.Get(k)
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &r)
	})
	return r, err
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]RunRecord, error) {
	var out []RunRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bRuns)
		if runs == nil {
			return nil
		}
		cur := runs.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var r RunRecord
			if err := json.Unmarshal(v, &r); err != nil {
				continue
			}
			if r.RunHash == "" {
				r.RunHash = hashFromTimeKey(k)
			}
			out = append(out, r)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// Prune keeps the newest keep records and deletes the rest.
func (s *Store) Prune(keep int) (int, error) {
	if s.readOnly {
		return 0, ErrReadOnly
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bRuns)
		if runs == nil {
			return nil
		}
		var stale [][]byte
		cur := runs.Cursor()
		seen := 0
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			seen++
			if seen > keep {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := runs.Delete(k); err != nil {
				return err
			}
			removed++
		}
		if keep == 0 {
			if meta := tx.Bucket(bMeta); meta != nil {
				return meta.Delete(keyLast)
			}
		}
		return nil
	})
	return removed, err
}
