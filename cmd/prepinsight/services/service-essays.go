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

	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

// ListEssays returns one page of the user's graded essays, newest first.
func (s *Service) ListEssays(userID string, page int, limit int) docstore.Page {
	return s.Store.Paginate(models.CollectionEssays, byUser(userID), page, limit,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})
}

// GetEssay returns one essay owned by the user.
func (s *Service) GetEssay(userID string, id string) (docstore.Record, error) {
	essay, found := s.Store.FindOne(models.CollectionEssays, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}
	return essay, nil
}

// SubmitEssay grades the essay through the gateway and stores the result.
func (s *Service) SubmitEssay(userID string, req models.SubmitEssayRequest) (docstore.Record, error) {
	grade, err := s.AI.GradeEssay(req.Prompt, req.Text)
	if err != nil {
		return nil, err
	}

	essay := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"prompt":              req.Prompt,
		"text":                req.Text,
		"score":               ClampEssayScore(grade.Score),
		"feedback":            grade.Feedback,
		models.FieldCreatedAt: timestamp(s.now()),
	}
	return s.Store.Insert(models.CollectionEssays, essay)
}
