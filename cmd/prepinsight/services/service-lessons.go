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
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

// ListLessons returns one page of the user's lessons, newest first.
func (s *Service) ListLessons(userID string, page int, limit int) docstore.Page {
	return s.Store.Paginate(models.CollectionLessons, byUser(userID), page, limit,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})
}

// GetLesson returns one lesson owned by the user.
func (s *Service) GetLesson(userID string, id string) (docstore.Record, error) {
	lesson, found := s.Store.FindOne(models.CollectionLessons, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}
	return lesson, nil
}

// GenerateLesson asks the gateway for lesson content and stores it.
func (s *Service) GenerateLesson(userID string, req models.GenerateLessonRequest) (docstore.Record, error) {
	content, err := s.AI.GenerateLesson(req.Subject, req.Topic)
	if err != nil {
		return nil, err
	}

	lesson := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"subject":             req.Subject,
		"topic":               req.Topic,
		"content":             content,
		"completed":           false,
		models.FieldCreatedAt: timestamp(s.now()),
	}
	return s.Store.Insert(models.CollectionLessons, lesson)
}

// CompleteLesson marks a lesson done and credits the activity. The lesson
// write and the progress write are independent; a failure in the second
// leaves a completed lesson with stale aggregates, which is accepted.
func (s *Service) CompleteLesson(userID string, id string) (docstore.Record, error) {
	lesson, updated, err := s.Store.Update(models.CollectionLessons, owned(userID, id), docstore.Record{
		"completed":   true,
		"completedAt": timestamp(s.now()),
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}

	if err := s.recordActivity(userID, XPLessonComplete, "lessons"); err != nil {
		zap.S().Warnf("Failed to record lesson activity for user %s: %s", userID, err)
	}

	return lesson, nil
}
