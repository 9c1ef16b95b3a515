// Copyright 2024 PrepInsight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package docstore persists named collections of JSON records in flat files,
// one JSON array per collection. Writes are crash-safe (temp file + rename)
// and serialized per collection; reads never fail, a missing or corrupt file
// is treated as an empty collection.
package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/EagleChen/mapmutex"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/prepinsight/prepinsight/internal/metrics"
)

// Record is one JSON object within a collection. Every record carries an
// opaque unique "id" assigned by the caller; per-user records additionally
// carry a "userId" foreign key.
type Record map[string]any

// Predicate is a pure filter over a single record.
type Predicate func(Record) bool

// Store owns a data directory and a per-collection lock registry. Mutating
// operations on the same collection are mutually exclusive within the
// process; the lock does not coordinate across processes.
type Store struct {
	dir   string
	locks *mapmutex.Mutex
}

// New creates the data directory if needed and returns a ready Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: create data dir %s: %w", dir, err)
	}

	return &Store{
		dir: dir,
		locks: mapmutex.NewCustomizedMapMutex(
			800,
			100000000,
			10,
			1.1,
			0.2), // default configs: maxDelay:  100000000, // 0.1 second baseDelay: 10,        // 10 nanosecond
	}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// lock blocks until the collection lock is held. TryLock already retries
// with backoff internally; the outer loop covers the rare exhaustion case.
func (s *Store) lock(collection string) {
	for !s.locks.TryLock(collection) {
		time.Sleep(time.Millisecond)
	}
}

func (s *Store) unlock(collection string) {
	s.locks.Unlock(collection)
}

// Read returns the full ordered contents of a collection. A missing file or
// a file that fails to parse yields an empty collection; such failures are
// logged and never surfaced to the caller.
func (s *Store) Read(collection string) []Record {
	metrics.StoreReads.WithLabelValues(collection).Inc()

	raw, err := os.ReadFile(s.path(collection))
	if err != nil {
		if !os.IsNotExist(err) {
			zap.S().Warnf("Failed to read collection %s: %s", collection, err)
		}
		return []Record{}
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		zap.S().Warnf("Collection %s does not parse, treating as empty: %s", collection, err)
		return []Record{}
	}
	if records == nil {
		records = []Record{}
	}

	return records
}

// Write replaces the full contents of a collection. The new contents are
// materialized in a temp file first and renamed over the canonical path, so
// a concurrent reader observes either the old or the new file, never a
// fragment. A failed temp write removes the temp file and returns the error.
func (s *Store) Write(collection string, records []Record) error {
	s.lock(collection)
	defer s.unlock(collection)

	return s.writeLocked(collection, records)
}

func (s *Store) writeLocked(collection string, records []Record) error {
	metrics.StoreWrites.WithLabelValues(collection).Inc()

	if records == nil {
		records = []Record{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		metrics.StoreWriteErrors.WithLabelValues(collection).Inc()
		return fmt.Errorf("docstore: marshal collection %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		metrics.StoreWriteErrors.WithLabelValues(collection).Inc()
		return fmt.Errorf("docstore: create temp file for %s: %w", collection, err)
	}

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		metrics.StoreWriteErrors.WithLabelValues(collection).Inc()
		return fmt.Errorf("docstore: write temp file for %s: %w", collection, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		metrics.StoreWriteErrors.WithLabelValues(collection).Inc()
		return fmt.Errorf("docstore: close temp file for %s: %w", collection, err)
	}

	if err = os.Rename(tmp.Name(), s.path(collection)); err != nil {
		_ = os.Remove(tmp.Name())
		metrics.StoreWriteErrors.WithLabelValues(collection).Inc()
		return fmt.Errorf("docstore: replace collection %s: %w", collection, err)
	}

	return nil
}

// FindOne returns the first record matching the predicate in stored order.
func (s *Store) FindOne(collection string, match Predicate) (Record, bool) {
	for _, record := range s.Read(collection) {
		if match(record) {
			return record, true
		}
	}
	return nil, false
}

// FindMany returns all records matching the predicate in stored order.
func (s *Store) FindMany(collection string, match Predicate) []Record {
	matches := []Record{}
	for _, record := range s.Read(collection) {
		if match(record) {
			matches = append(matches, record)
		}
	}
	return matches
}

// Insert appends the record and persists the collection. The caller must
// pre-assign a globally unique id.
func (s *Store) Insert(collection string, record Record) (Record, error) {
	s.lock(collection)
	defer s.unlock(collection)

	records := s.Read(collection)
	records = append(records, record)
	if err := s.writeLocked(collection, records); err != nil {
		return nil, err
	}

	return record, nil
}

// Update shallow-merges the partial fields onto the first record matching
// the predicate and persists the collection. If nothing matches, no write
// happens and ok is false.
func (s *Store) Update(collection string, match Predicate, fields Record) (Record, bool, error) {
	s.lock(collection)
	defer s.unlock(collection)

	records := s.Read(collection)
	for i, record := range records {
		if !match(record) {
			continue
		}

		merged := make(Record, len(record)+len(fields))
		for k, v := range record {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}
		records[i] = merged

		if err := s.writeLocked(collection, records); err != nil {
			return nil, false, err
		}
		return merged, true, nil
	}

	return nil, false, nil
}

// Remove deletes the first record matching the predicate and persists the
// collection. If nothing matches, no write happens and the result is false.
func (s *Store) Remove(collection string, match Predicate) (bool, error) {
	s.lock(collection)
	defer s.unlock(collection)

	records := s.Read(collection)
	for i, record := range records {
		if !match(record) {
			continue
		}

		records = append(records[:i], records[i+1:]...)
		if err := s.writeLocked(collection, records); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}
