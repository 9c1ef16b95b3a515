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

// ListTests returns one page of the user's practice tests, newest first.
func (s *Service) ListTests(userID string, page int, limit int) docstore.Page {
	return s.Store.Paginate(models.CollectionTests, byUser(userID), page, limit,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})
}

// GetTest returns one practice test owned by the user.
func (s *Service) GetTest(userID string, id string) (docstore.Record, error) {
	test, found := s.Store.FindOne(models.CollectionTests, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}
	return test, nil
}

// GenerateTest asks the gateway for a practice test over the requested
// sections and stores it.
func (s *Service) GenerateTest(userID string, req models.GenerateTestRequest) (docstore.Record, error) {
	sections, err := s.AI.GeneratePracticeTest(req.Sections)
	if err != nil {
		return nil, err
	}

	test := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"sections":            sections,
		"submitted":           false,
		models.FieldCreatedAt: timestamp(s.now()),
	}
	return s.Store.Insert(models.CollectionTests, test)
}

// SubmitTest scores each section, derives the composite, and then touches
// three collections in sequence: the test record, the user's best-score
// stats, and the progress aggregates. The writes are independent and
// non-atomic; a crash in between leaves well-formed records with stale
// aggregates.
func (s *Service) SubmitTest(userID string, id string, answers map[string][]int) (docstore.Record, error) {
	test, found := s.Store.FindOne(models.CollectionTests, owned(userID, id))
	if !found {
		return nil, ErrNotFound
	}

	sectionScores := map[string]any{}
	var scores []int
	for _, section := range storedSections(test["sections"]) {
		correctIndexes := correctAnswerIndexes(section.questions)
		given := answers[section.name]
		correct := 0
		for i, answer := range given {
			if i < len(correctIndexes) && answer == correctIndexes[i] {
				correct++
			}
		}
		score := ScaledScore(correct, len(correctIndexes))
		sectionScores[section.name] = score
		scores = append(scores, score)
	}
	composite := CompositeScore(scores)

	updated, _, err := s.Store.Update(models.CollectionTests, owned(userID, id), docstore.Record{
		"submitted":     true,
		"answers":       answers,
		"sectionScores": sectionScores,
		"composite":     composite,
		"submittedAt":   timestamp(s.now()),
	})
	if err != nil {
		return nil, err
	}

	// best composite so far lives on the user record
	user, found := s.Store.FindOne(models.CollectionUsers, func(r docstore.Record) bool {
		return r[models.FieldID] == userID
	})
	if found && composite > asInt(user["bestComposite"]) {
		if _, _, err := s.Store.Update(models.CollectionUsers, func(r docstore.Record) bool {
			return r[models.FieldID] == userID
		}, docstore.Record{"bestComposite": composite}); err != nil {
			zap.S().Warnf("Failed to update best composite for user %s: %s", userID, err)
		}
	}

	if err := s.recordActivity(userID, len(scores)*XPPerTestSection, "tests"); err != nil {
		zap.S().Warnf("Failed to record test activity for user %s: %s", userID, err)
	}

	return updated, nil
}

type storedSection struct {
	name      string
	questions any
}

// storedSections normalizes a test's sections, whether freshly generated
// typed values or maps read back from disk.
func storedSections(sections any) []storedSection {
	switch ss := sections.(type) {
	case []aigateway.TestSection:
		out := make([]storedSection, len(ss))
		for i, section := range ss {
			out[i] = storedSection{name: section.Section, questions: section.Questions}
		}
		return out
	case []any:
		var out []storedSection
		for _, raw := range ss {
			if m, ok := raw.(map[string]any); ok {
				out = append(out, storedSection{name: asString(m["section"]), questions: m["questions"]})
			}
		}
		return out
	default:
		return nil
	}
}
