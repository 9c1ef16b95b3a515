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
	"github.com/prepinsight/prepinsight/pkg/aigateway"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

// ListQuizzes returns one page of the user's quizzes, newest first.
func (s *Service) ListQuizzes(userID string, page int, limit int) docstore.Page {
	return s.Store.Paginate(models.CollectionQuizzes, byUser(userID), page, limit,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})
}

// GetQuiz returns one quiz owned by the user.
func (s *Service) GetQuiz(userID string, id string) (docstore.Record, error) {
	quiz, found := s.Store.FindOne(models.CollectionQuizzes, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}
	return quiz, nil
}

// GenerateQuiz asks the gateway for questions and stores the quiz.
func (s *Service) GenerateQuiz(userID string, req models.GenerateQuizRequest) (docstore.Record, error) {
	count := req.Count
	if count < 1 {
		count = 5
	}
	if count > 20 {
		count = 20
	}

	questions, err := s.AI.GenerateQuiz(req.Subject, req.Topic, count)
	if err != nil {
		return nil, err
	}

	quiz := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"subject":             req.Subject,
		"topic":               req.Topic,
		"questions":           questions,
		"submitted":           false,
		models.FieldCreatedAt: timestamp(s.now()),
	}
	return s.Store.Insert(models.CollectionQuizzes, quiz)
}

// SubmitQuiz scores the answers against the stored questions, maps the
// ratio onto the 1-36 scale and credits the activity.
func (s *Service) SubmitQuiz(userID string, id string, answers []int) (docstore.Record, error) {
	quiz, found := s.Store.FindOne(models.CollectionQuizzes, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}

	correctAnswers := correctAnswerIndexes(quiz["questions"])
	total := len(correctAnswers)
	correct := 0
	for i, answer := range answers {
		if i < total && answer == correctAnswers[i] {
			correct++
		}
	}

	updated, _, err := s.Store.Update(models.CollectionQuizzes, owned(userID, id), docstore.Record{
		"submitted":   true,
		"answers":     answers,
		"correct":     correct,
		"total":       total,
		"score":       ScaledScore(correct, total),
		"submittedAt": timestamp(s.now()),
	})
	if err != nil {
		return nil, err
	}

	if err := s.recordActivity(userID, correct*XPPerCorrectAnswer, "quiz:"+asString(quiz["subject"])); err != nil {
		zap.S().Warnf("Failed to record quiz activity for user %s: %s", userID, err)
	}

	return updated, nil
}

// correctAnswerIndexes reads the answer index of each stored question.
// Questions may be freshly generated typed values or maps read from disk.
func correctAnswerIndexes(questions any) []int {
	switch qs := questions.(type) {
	case []aigateway.Question:
		indexes := make([]int, len(qs))
		for i, q := range qs {
			indexes[i] = q.Answer
		}
		return indexes
	case []any:
		indexes := make([]int, len(qs))
		for i, q := range qs {
			if m, ok := q.(map[string]any); ok {
				indexes[i] = asInt(m["answer"])
			}
		}
		return indexes
	default:
		return nil
	}
}
