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
	"testing"

	"github.com/stretchr/testify/assert"
)

func any25(Record) bool { return true }

func seedPaginate(t *testing.T) *Store {
	t.Helper()
	store := newTestStore(t)
	records := make([]Record, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, Record{"id": fmt.Sprintf("r%02d", i), "rank": float64(i)})
	}
	assert.NoError(t, store.Write("items", records))
	return store
}

func TestPaginate(t *testing.T) {
	store := seedPaginate(t)

	t.Run("first-page", func(t *testing.T) {
		page := store.Paginate("items", any25, 1, 10, nil)
		assert.Len(t, page.Items, 10)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, "r00", page.Items[0]["id"])
	})
	t.Run("last-partial-page", func(t *testing.T) {
		page := store.Paginate("items", any25, 3, 10, nil)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, "r20", page.Items[0]["id"])
	})
	t.Run("out-of-range-page", func(t *testing.T) {
		page := store.Paginate("items", any25, 4, 10, nil)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, 3, page.TotalPages)
	})
	t.Run("zero-limit-defaults", func(t *testing.T) {
		page := store.Paginate("items", any25, 1, 0, nil)
		assert.Equal(t, 10, page.Limit)
		assert.Len(t, page.Items, 10)
	})
	t.Run("filter-applies-before-paging", func(t *testing.T) {
		even := func(r Record) bool {
			return int(r["rank"].(float64))%2 == 0
		}
		page := store.Paginate("items", even, 1, 10, nil)
		assert.Equal(t, 13, page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})
}

func TestPaginateSort(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Write("scores", []Record{
		{"id": "a", "score": float64(3)},
		{"id": "b", "score": float64(1)},
		{"id": "c", "score": float64(2)},
		{"id": "d", "score": float64(1)},
	}))

	t.Run("ascending", func(t *testing.T) {
		page := store.Paginate("scores", any25, 1, 10, &SortSpec{Field: "score"})
		assert.Equal(t, "b", page.Items[0]["id"])
		assert.Equal(t, "d", page.Items[1]["id"]) // tie keeps stored order
		assert.Equal(t, "c", page.Items[2]["id"])
		assert.Equal(t, "a", page.Items[3]["id"])
	})
	t.Run("descending", func(t *testing.T) {
		page := store.Paginate("scores", any25, 1, 10, &SortSpec{Field: "score", Descending: true})
		assert.Equal(t, "a", page.Items[0]["id"])
		assert.Equal(t, "c", page.Items[1]["id"])
		assert.Equal(t, "b", page.Items[2]["id"])
		assert.Equal(t, "d", page.Items[3]["id"])
	})
	t.Run("string-field", func(t *testing.T) {
		page := store.Paginate("scores", any25, 1, 10, &SortSpec{Field: "id", Descending: true})
		assert.Equal(t, "d", page.Items[0]["id"])
		assert.Equal(t, "a", page.Items[3]["id"])
	})
	t.Run("missing-field-keeps-order", func(t *testing.T) {
		page := store.Paginate("scores", any25, 1, 10, &SortSpec{Field: "nope"})
		assert.Equal(t, "a", page.Items[0]["id"])
		assert.Equal(t, "d", page.Items[3]["id"])
	})
}
