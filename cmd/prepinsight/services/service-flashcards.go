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

// ListFlashcardDecks returns one page of the user's decks, newest first.
func (s *Service) ListFlashcardDecks(userID string, page int, limit int) docstore.Page {
	return s.Store.Paginate(models.CollectionFlashcards, byUser(userID), page, limit,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})
}

// GetFlashcardDeck returns one deck owned by the user.
func (s *Service) GetFlashcardDeck(userID string, id string) (docstore.Record, error) {
	deck, found := s.Store.FindOne(models.CollectionFlashcards, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}
	return deck, nil
}

// GenerateFlashcards asks the gateway for cards and stores them as a deck.
func (s *Service) GenerateFlashcards(userID string, req models.GenerateFlashcardsRequest) (docstore.Record, error) {
	count := req.Count
	if count < 1 {
		count = 10
	}
	if count > 50 {
		count = 50
	}

	cards, err := s.AI.GenerateFlashcards(req.Topic, count)
	if err != nil {
		return nil, err
	}

	deck := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"topic":               req.Topic,
		"cards":               cards,
		"reviews":             0,
		"knownTotal":          0,
		models.FieldCreatedAt: timestamp(s.now()),
	}
	return s.Store.Insert(models.CollectionFlashcards, deck)
}

// ReviewFlashcardDeck records one review pass and credits the activity.
func (s *Service) ReviewFlashcardDeck(userID string, id string, known int) (docstore.Record, error) {
	deck, found := s.Store.FindOne(models.CollectionFlashcards, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}

	updated, _, err := s.Store.Update(models.CollectionFlashcards, owned(userID, id), docstore.Record{
		"reviews":        asInt(deck["reviews"]) + 1,
		"knownTotal":     asInt(deck["knownTotal"]) + known,
		"lastReviewedAt": timestamp(s.now()),
	})
	if err != nil {
		return nil, err
	}

	if err := s.recordActivity(userID, known*XPPerKnownFlashcard, "flashcards"); err != nil {
		zap.S().Warnf("Failed to record flashcard activity for user %s: %s", userID, err)
	}

	return updated, nil
}
