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

// GetSettings returns the settings view of the user record.
func (s *Service) GetSettings(userID string) (docstore.Record, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return docstore.Record{
		"name":        user["name"],
		"email":       user["email"],
		"targetScore": user["targetScore"],
		"dailyGoal":   user["dailyGoal"],
	}, nil
}

// UpdateSettings merges the provided fields into the user record. Absent
// fields are left untouched.
func (s *Service) UpdateSettings(userID string, req models.UpdateSettingsRequest) (docstore.Record, error) {
	fields := docstore.Record{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.TargetScore != nil {
		fields["targetScore"] = *req.TargetScore
	}
	if req.DailyGoal != nil {
		fields["dailyGoal"] = *req.DailyGoal
	}

	if len(fields) == 0 {
		return s.GetSettings(userID)
	}

	updated, found, err := s.Store.Update(models.CollectionUsers, func(r docstore.Record) bool {
		return r[models.FieldID] == userID
	}, fields)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	return PublicUser(updated), nil
}
