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
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

// Register creates a user record plus its empty progress record and returns
// the public view of the user. The email must be unused.
func (s *Service) Register(req models.RegisterRequest) (docstore.Record, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, exists := s.Store.FindOne(models.CollectionUsers, func(r docstore.Record) bool {
		return r["email"] == email
	}); exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := docstore.Record{
		models.FieldID:        uuid.NewString(),
		"name":                req.Name,
		"email":               email,
		"passwordHash":        string(hash),
		"targetScore":         30,
		"dailyGoal":           30,
		models.FieldCreatedAt: timestamp(now),
	}
	if _, err := s.Store.Insert(models.CollectionUsers, user); err != nil {
		return nil, err
	}

	progress := docstore.Record{
		models.FieldID:     uuid.NewString(),
		models.FieldUserID: asString(user[models.FieldID]),
		"xp":               0,
		"streak":           0,
		"lastActivityDate": "",
		"completed":        map[string]any{},
	}
	if _, err := s.Store.Insert(models.CollectionProgress, progress); err != nil {
		return nil, err
	}

	return PublicUser(user), nil
}

// Login verifies the password and returns the public view of the user.
func (s *Service) Login(req models.LoginRequest) (docstore.Record, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, found := s.Store.FindOne(models.CollectionUsers, func(r docstore.Record) bool {
		return r["email"] == email
	})
	if !found {
		return nil, ErrBadCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(asString(user["passwordHash"])), []byte(req.Password)) != nil {
		return nil, ErrBadCredentials
	}

	return PublicUser(user), nil
}

// GetUser returns the public view of one user by id.
func (s *Service) GetUser(userID string) (docstore.Record, error) {
	user, found := s.Store.FindOne(models.CollectionUsers, func(r docstore.Record) bool {
		return r[models.FieldID] == userID
	})
	if !found {
		return nil, ErrNotFound
	}
	return PublicUser(user), nil
}

// DeleteAccount removes the user and then all their records, collection by
// collection. The store has no referential integrity; this explicit cascade
// is the only cleanup that happens.
func (s *Service) DeleteAccount(userID string) error {
	removed, err := s.Store.Remove(models.CollectionUsers, func(r docstore.Record) bool {
		return r[models.FieldID] == userID
	})
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}

	perUser := []string{
		models.CollectionLessons,
		models.CollectionQuizzes,
		models.CollectionTests,
		models.CollectionStudyPlans,
		models.CollectionEssays,
		models.CollectionFlashcards,
		models.CollectionChatHistory,
		models.CollectionProgress,
	}
	for _, collection := range perUser {
		for {
			removed, err := s.Store.Remove(collection, byUser(userID))
			if err != nil {
				return err
			}
			if !removed {
				break
			}
		}
	}

	return nil
}

// PublicUser strips credentials from a user record.
func PublicUser(user docstore.Record) docstore.Record {
	public := make(docstore.Record, len(user))
	for k, v := range user {
		if k == "passwordHash" {
			continue
		}
		public[k] = v
	}
	return public
}
