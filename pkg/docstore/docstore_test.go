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

package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	assert.NoError(t, err)
	return store
}

func byID(id string) Predicate {
	return func(r Record) bool { return r["id"] == id }
}

func TestInsertAndRead(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Insert("lessons", Record{"id": "a", "topic": "commas"})
	assert.NoError(t, err)
	_, err = store.Insert("lessons", Record{"id": "b", "topic": "fractions"})
	assert.NoError(t, err)

	records := store.Read("lessons")
	assert.Len(t, records, 2)
	assert.Equal(t, "a", records[0]["id"])
	assert.Equal(t, "b", records[1]["id"])
}

func TestReadNeverFails(t *testing.T) {
	store := newTestStore(t)

	t.Run("missing-file", func(t *testing.T) {
		records := store.Read("nothing")
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
	t.Run("corrupt-file", func(t *testing.T) {
		err := os.WriteFile(filepath.Join(store.dir, "broken.json"), []byte("{not json"), 0o644)
		assert.NoError(t, err)

		records := store.Read("broken")
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
	t.Run("null-file", func(t *testing.T) {
		err := os.WriteFile(filepath.Join(store.dir, "nulled.json"), []byte("null"), 0o644)
		assert.NoError(t, err)

		records := store.Read("nulled")
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestFindOne(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Insert("users", Record{"id": "u1", "email": "a@b.c"})
	assert.NoError(t, err)

	record, found := store.FindOne("users", byID("u1"))
	assert.True(t, found)
	assert.Equal(t, "a@b.c", record["email"])

	_, found = store.FindOne("users", byID("u2"))
	assert.False(t, found)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Insert("users", Record{"id": "u1", "name": "Ada", "xp": 10})
	assert.NoError(t, err)

	t.Run("shallow-merge", func(t *testing.T) {
		merged, updated, err := store.Update("users", byID("u1"), Record{"xp": 60})
		assert.NoError(t, err)
		assert.True(t, updated)
		assert.Equal(t, 60, merged["xp"])
		assert.Equal(t, "Ada", merged["name"])

		// Merge persisted, numbers come back as float64
		record, found := store.FindOne("users", byID("u1"))
		assert.True(t, found)
		assert.Equal(t, float64(60), record["xp"])
		assert.Equal(t, "Ada", record["name"])
	})
	t.Run("no-match-no-write", func(t *testing.T) {
		before, err := os.ReadFile(store.path("users"))
		assert.NoError(t, err)

		_, updated, err := store.Update("users", byID("missing"), Record{"xp": 999})
		assert.NoError(t, err)
		assert.False(t, updated)

		after, err := os.ReadFile(store.path("users"))
		assert.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Insert("cards", Record{"id": "c1"})
	assert.NoError(t, err)
	_, err = store.Insert("cards", Record{"id": "c2"})
	assert.NoError(t, err)

	t.Run("first-match", func(t *testing.T) {
		removed, err := store.Remove("cards", byID("c1"))
		assert.NoError(t, err)
		assert.True(t, removed)

		records := store.Read("cards")
		assert.Len(t, records, 1)
		assert.Equal(t, "c2", records[0]["id"])
	})
	t.Run("absent-no-write", func(t *testing.T) {
		before, err := os.ReadFile(store.path("cards"))
		assert.NoError(t, err)

		removed, err := store.Remove("cards", byID("c1"))
		assert.NoError(t, err)
		assert.False(t, removed)

		after, err := os.ReadFile(store.path("cards"))
		assert.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestWriteReplacesAtomically(t *testing.T) {
	store := newTestStore(t)

	err := store.Write("plans", []Record{{"id": "p1"}})
	assert.NoError(t, err)
	err = store.Write("plans", []Record{{"id": "p2"}, {"id": "p3"}})
	assert.NoError(t, err)

	records := store.Read("plans")
	assert.Len(t, records, 2)
	assert.Equal(t, "p2", records[0]["id"])

	// No temp files left behind
	entries, err := os.ReadDir(store.dir)
	assert.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp")
	}
}

func TestFailedWriteKeepsPriorContent(t *testing.T) {
	store := newTestStore(t)

	err := store.Write("plans", []Record{{"id": "keep"}})
	assert.NoError(t, err)

	// channels cannot be marshaled, so the write fails before the rename
	err = store.Write("plans", []Record{{"id": "bad", "ch": make(chan int)}})
	assert.Error(t, err)

	records := store.Read("plans")
	assert.Len(t, records, 1)
	assert.Equal(t, "keep", records[0]["id"])

	entries, err := os.ReadDir(store.dir)
	assert.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp")
	}
}

func TestConcurrentInserts(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Insert("events", Record{"id": fmt.Sprintf("e%d", n)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Read("events"), 20)
}
