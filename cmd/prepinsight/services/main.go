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

// Package services holds the per-resource domain logic. Controllers never
// touch storage directly; each operation here is straight-line: fetch the
// caller's records, optionally call the AI gateway, derive simple fields and
// persist. Multi-collection updates are sequences of independent writes.
package services

import (
	"errors"
	"time"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/pkg/aigateway"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

var (
	// ErrNotFound means no record matched within the caller's tenancy.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken means the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadCredentials means the login email/password pair is wrong.
	ErrBadCredentials = errors.New("invalid email or password")
)

// Service wires the document store and the AI gateway into the routes.
// It is passed explicitly; there is no package-level state.
type Service struct {
	Store *docstore.Store
	AI    *aigateway.Gateway

	// now is the clock, swappable in tests for streak logic.
	now func() time.Time
}

// New returns a Service over the given store and gateway.
func New(store *docstore.Store, ai *aigateway.Gateway) *Service {
	return &Service{Store: store, AI: ai, now: time.Now}
}

// owned matches one record by id within the user's tenancy.
func owned(userID string, id string) docstore.Predicate {
	return func(r docstore.Record) bool {
		return r[models.FieldID] == id && r[models.FieldUserID] == userID
	}
}

// byUser matches all records of one user.
func byUser(userID string) docstore.Predicate {
	return func(r docstore.Record) bool {
		return r[models.FieldUserID] == userID
	}
}

// asInt coerces a stored numeric field. JSON decoding yields float64, but a
// record that never round-tripped through disk may still hold an int.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
