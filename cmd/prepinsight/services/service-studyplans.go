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

// CurrentStudyPlan returns the user's newest study plan.
func (s *Service) CurrentStudyPlan(userID string) (docstore.Record, error) {
	page := s.Store.Paginate(models.CollectionStudyPlans, byUser(userID), 1, 1,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})
	if len(page.Items) == 0 {
		return nil, ErrNotFound
	}
	return page.Items[0], nil
}

// GenerateStudyPlan asks the gateway for a weekly plan and stores it. The
// newest plan is the active one; older plans are kept as history.
func (s *Service) GenerateStudyPlan(userID string, req models.GenerateStudyPlanRequest) (docstore.Record, error) {
	weeks, err := s.AI.GenerateStudyPlan(req.TestDate, req.HoursPerWeek, req.WeakSubjects)
	if err != nil {
		return nil, err
	}

	plan := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"testDate":            req.TestDate,
		"hoursPerWeek":        req.HoursPerWeek,
		"weeks":               weeks,
		models.FieldCreatedAt: timestamp(s.now()),
	}
	return s.Store.Insert(models.CollectionStudyPlans, plan)
}
