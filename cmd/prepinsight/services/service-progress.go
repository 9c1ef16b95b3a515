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

package services

import (
	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

// GetProgress returns the user's progress record with derived aggregates.
func (s *Service) GetProgress(userID string) (docstore.Record, error) {
	progress, found := s.Store.FindOne(models.CollectionProgress, byUser(userID))
	if !found {
		return nil, ErrNotFound
	}

	xp := asInt(progress["xp"])
	view := make(docstore.Record, len(progress)+1)
	for k, v := range progress {
		view[k] = v
	}
	view["level"] = Level(xp)

	return view, nil
}

// recordActivity awards experience and advances the daily streak on the
// user's progress record. completedKey, when non-empty, increments a
// completion counter (e.g. "lessons", "quiz:math"). Progress is an
// aggregate; a failed update here is logged by the caller but does not
// invalidate the primary record already written.
func (s *Service) recordActivity(userID string, xp int, completedKey string) error {
	progress, found := s.Store.FindOne(models.CollectionProgress, byUser(userID))
	if !found {
		return ErrNotFound
	}

	now := s.now()
	streak := NextStreak(asString(progress["lastActivityDate"]), asInt(progress["streak"]), now)

	completed := map[string]any{}
	if existing, ok := progress["completed"].(map[string]any); ok {
		for k, v := range existing {
			completed[k] = v
		}
	}
	if completedKey != "" {
		completed[completedKey] = asInt(completed[completedKey]) + 1
	}

	_, _, err := s.Store.Update(models.CollectionProgress, byUser(userID), docstore.Record{
		"xp":               asInt(progress["xp"]) + xp,
		"streak":           streak,
		"lastActivityDate": now.UTC().Format(dayFormat),
		"completed":        completed,
	})
	return err
}
