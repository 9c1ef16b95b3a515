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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/pkg/aigateway"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

var testClock = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// newTestService wires a Service over a temp store and a fake completion
// endpoint. The endpoint echoes whatever *reply currently holds as the
// assistant content.
func newTestService(t *testing.T) (*Service, *string) {
	t.Helper()

	reply := new(string)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := json.Marshal(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": *reply}},
			},
		})
		assert.NoError(t, err)
		_, _ = w.Write(raw)
	}))
	t.Cleanup(server.Close)

	store, err := docstore.New(t.TempDir())
	assert.NoError(t, err)

	service := New(store, aigateway.New(server.URL, "test-key"))
	service.now = func() time.Time { return testClock }
	return service, reply
}

func registerTestUser(t *testing.T, service *Service) string {
	t.Helper()
	user, err := service.Register(models.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)
	return asString(user[models.FieldID])
}

func TestRegister(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.Register(models.RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, user[models.FieldID])
	assert.Equal(t, "ada@example.com", user["email"]) // normalized
	assert.NotContains(t, user, "passwordHash")
	assert.Equal(t, 30, user["targetScore"])

	t.Run("progress-record-created", func(t *testing.T) {
		progress, err := service.GetProgress(asString(user[models.FieldID]))
		assert.NoError(t, err)
		assert.Equal(t, 0, asInt(progress["xp"]))
		assert.Equal(t, 1, asInt(progress["level"]))
	})
	t.Run("duplicate-email", func(t *testing.T) {
		_, err := service.Register(models.RegisterRequest{
			Name:     "Imposter",
			Email:    "ADA@example.com",
			Password: "another-pass",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	t.Run("valid", func(t *testing.T) {
		user, err := service.Login(models.LoginRequest{Email: "ADA@example.com", Password: "correct-horse"})
		assert.NoError(t, err)
		assert.Equal(t, "Ada", user["name"])
		assert.NotContains(t, user, "passwordHash")
	})
	t.Run("wrong-password", func(t *testing.T) {
		_, err := service.Login(models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
	t.Run("unknown-email", func(t *testing.T) {
		_, err := service.Login(models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestDeleteAccount(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = "Commas separate independent clauses."
	_, err := service.GenerateLesson(userID, models.GenerateLessonRequest{Subject: "english", Topic: "commas"})
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteAccount(userID))

	_, err = service.GetUser(userID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = service.GetProgress(userID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, service.ListLessons(userID, 1, 10).Items)

	t.Run("delete-twice", func(t *testing.T) {
		assert.ErrorIs(t, service.DeleteAccount(userID), ErrNotFound)
	})
}

// Removing a user record directly from the store must leave the other
// collections untouched; the cascade in DeleteAccount is the route's own
// explicit sequence of per-collection deletes.
func TestStoreDoesNotCascade(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = "lesson body"
	_, err := service.GenerateLesson(userID, models.GenerateLessonRequest{Subject: "math", Topic: "ratios"})
	assert.NoError(t, err)

	removed, err := service.Store.Remove(models.CollectionUsers, func(r docstore.Record) bool {
		return r[models.FieldID] == userID
	})
	assert.NoError(t, err)
	assert.True(t, removed)

	lessons := service.Store.FindMany(models.CollectionLessons, byUser(userID))
	assert.Len(t, lessons, 1)
}

func TestLessonFlow(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = "## Comma Splices\nTwo worked examples follow."
	lesson, err := service.GenerateLesson(userID, models.GenerateLessonRequest{Subject: "english", Topic: "comma splices"})
	assert.NoError(t, err)
	assert.Equal(t, *reply, lesson["content"])
	assert.Equal(t, false, lesson["completed"])

	id := asString(lesson[models.FieldID])

	t.Run("get-requires-ownership", func(t *testing.T) {
		_, err := service.GetLesson("someone-else", id)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("complete-credits-activity", func(t *testing.T) {
		completed, err := service.CompleteLesson(userID, id)
		assert.NoError(t, err)
		assert.Equal(t, true, completed["completed"])

		progress, err := service.GetProgress(userID)
		assert.NoError(t, err)
		assert.Equal(t, XPLessonComplete, asInt(progress["xp"]))
		assert.Equal(t, 1, asInt(progress["streak"]))
		assert.Equal(t, "2024-03-15", progress["lastActivityDate"])

		completedCounters, ok := progress["completed"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, 1, asInt(completedCounters["lessons"]))
	})
	t.Run("complete-unknown", func(t *testing.T) {
		_, err := service.CompleteLesson(userID, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestQuizFlow(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = `Here you go:
[
  {"question": "2+2?", "choices": ["3", "4", "5", "6"], "answer": 1, "explanation": "basic addition"},
  {"question": "3*3?", "choices": ["6", "9", "12", "3"], "answer": 1, "explanation": "basic multiplication"}
]`
	quiz, err := service.GenerateQuiz(userID, models.GenerateQuizRequest{Subject: "math", Topic: "arithmetic", Count: 2})
	assert.NoError(t, err)
	id := asString(quiz[models.FieldID])

	t.Run("submit-scores", func(t *testing.T) {
		submitted, err := service.SubmitQuiz(userID, id, []int{1, 0})
		assert.NoError(t, err)
		assert.Equal(t, true, submitted["submitted"])
		assert.Equal(t, 1, asInt(submitted["correct"]))
		assert.Equal(t, 2, asInt(submitted["total"]))
		assert.Equal(t, ScaledScore(1, 2), asInt(submitted["score"]))

		progress, err := service.GetProgress(userID)
		assert.NoError(t, err)
		assert.Equal(t, XPPerCorrectAnswer, asInt(progress["xp"]))
		completedCounters := progress["completed"].(map[string]any)
		assert.Equal(t, 1, asInt(completedCounters["quiz:math"]))
	})
	t.Run("submit-after-reload", func(t *testing.T) {
		// force the questions through a disk round trip
		reloaded, err := service.GetQuiz(userID, id)
		assert.NoError(t, err)
		indexes := correctAnswerIndexes(reloaded["questions"])
		assert.Equal(t, []int{1, 1}, indexes)
	})
	t.Run("submit-unknown", func(t *testing.T) {
		_, err := service.SubmitQuiz(userID, "missing", []int{0})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPracticeTestFlow(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = `[
  {"section": "math", "questions": [
    {"question": "q1", "choices": ["a", "b", "c", "d"], "answer": 0, "explanation": ""},
    {"question": "q2", "choices": ["a", "b", "c", "d"], "answer": 1, "explanation": ""}
  ]},
  {"section": "english", "questions": [
    {"question": "q3", "choices": ["a", "b", "c", "d"], "answer": 2, "explanation": ""}
  ]}
]`
	test, err := service.GenerateTest(userID, models.GenerateTestRequest{Sections: []string{"math", "english"}})
	assert.NoError(t, err)
	id := asString(test[models.FieldID])

	submitted, err := service.SubmitTest(userID, id, map[string][]int{
		"math":    {0, 1}, // both correct -> 36
		"english": {0},    // wrong -> 1
	})
	assert.NoError(t, err)
	assert.Equal(t, true, submitted["submitted"])

	sectionScores := submitted["sectionScores"].(map[string]any)
	assert.Equal(t, 36, asInt(sectionScores["math"]))
	assert.Equal(t, 1, asInt(sectionScores["english"]))
	assert.Equal(t, CompositeScore([]int{36, 1}), asInt(submitted["composite"]))

	t.Run("best-composite-on-user", func(t *testing.T) {
		user, err := service.GetUser(userID)
		assert.NoError(t, err)
		assert.Equal(t, asInt(submitted["composite"]), asInt(user["bestComposite"]))
	})
	t.Run("activity-credited-per-section", func(t *testing.T) {
		progress, err := service.GetProgress(userID)
		assert.NoError(t, err)
		assert.Equal(t, 2*XPPerTestSection, asInt(progress["xp"]))
	})
}

func TestEssayFlow(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = `{"score": 14, "feedback": "Strong thesis, weak transitions."}`
	essay, err := service.SubmitEssay(userID, models.SubmitEssayRequest{Prompt: "Should school start later?", Text: "Yes, because..."})
	assert.NoError(t, err)
	assert.Equal(t, 12, essay["score"]) // clamped to scale
	assert.Equal(t, "Strong thesis, weak transitions.", essay["feedback"])

	page := service.ListEssays(userID, 1, 10)
	assert.Equal(t, 1, page.Total)
}

func TestFlashcardFlow(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = `[{"front": "hypotenuse", "back": "side opposite the right angle"}]`
	deck, err := service.GenerateFlashcards(userID, models.GenerateFlashcardsRequest{Topic: "geometry", Count: 1})
	assert.NoError(t, err)
	assert.Equal(t, 0, deck["reviews"])

	id := asString(deck[models.FieldID])

	reviewed, err := service.ReviewFlashcardDeck(userID, id, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, asInt(reviewed["reviews"]))
	assert.Equal(t, 1, asInt(reviewed["knownTotal"]))

	reviewed, err = service.ReviewFlashcardDeck(userID, id, 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, asInt(reviewed["reviews"]))
	assert.Equal(t, 4, asInt(reviewed["knownTotal"]))

	progress, err := service.GetProgress(userID)
	assert.NoError(t, err)
	assert.Equal(t, 4*XPPerKnownFlashcard, asInt(progress["xp"]))
}

func TestStudyPlanFlow(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	t.Run("no-plan-yet", func(t *testing.T) {
		_, err := service.CurrentStudyPlan(userID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	*reply = `[{"week": 1, "focus": "algebra", "tasks": ["drill linear equations"]}]`
	first, err := service.GenerateStudyPlan(userID, models.GenerateStudyPlanRequest{
		TestDate:     "2024-06-08",
		HoursPerWeek: 6,
		WeakSubjects: []string{"math"},
	})
	assert.NoError(t, err)

	t.Run("newest-plan-wins", func(t *testing.T) {
		service.now = func() time.Time { return testClock.Add(time.Hour) }
		*reply = `[{"week": 1, "focus": "geometry", "tasks": ["review triangles"]}]`
		second, err := service.GenerateStudyPlan(userID, models.GenerateStudyPlanRequest{
			TestDate:     "2024-06-08",
			HoursPerWeek: 8,
		})
		assert.NoError(t, err)

		current, err := service.CurrentStudyPlan(userID)
		assert.NoError(t, err)
		assert.Equal(t, second[models.FieldID], current[models.FieldID])
		assert.NotEqual(t, first[models.FieldID], current[models.FieldID])
	})
}

func TestChatFlow(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = "A comma splice joins two independent clauses with only a comma."
	answer, err := service.SendChatMessage(userID, "What is a comma splice?")
	assert.NoError(t, err)
	assert.Equal(t, "assistant", answer["role"])
	assert.Equal(t, *reply, answer["content"])

	history := service.ChatHistory(userID, 1, 10)
	assert.Equal(t, 2, history.Total)
	// newest first: the reply sorts after the question
	assert.Equal(t, "assistant", history.Items[0]["role"])
	assert.Equal(t, "user", history.Items[1]["role"])
}

func TestSettings(t *testing.T) {
	service, _ := newTestService(t)
	userID := registerTestUser(t, service)

	t.Run("defaults", func(t *testing.T) {
		settings, err := service.GetSettings(userID)
		assert.NoError(t, err)
		assert.Equal(t, 30, asInt(settings["targetScore"]))
		assert.Equal(t, 30, asInt(settings["dailyGoal"]))
	})
	t.Run("partial-update", func(t *testing.T) {
		target := 34
		updated, err := service.UpdateSettings(userID, models.UpdateSettingsRequest{TargetScore: &target})
		assert.NoError(t, err)
		assert.Equal(t, 34, asInt(updated["targetScore"]))
		assert.Equal(t, "Ada", updated["name"]) // untouched
		assert.NotContains(t, updated, "passwordHash")
	})
	t.Run("empty-update-is-read", func(t *testing.T) {
		settings, err := service.UpdateSettings(userID, models.UpdateSettingsRequest{})
		assert.NoError(t, err)
		assert.Equal(t, 34, asInt(settings["targetScore"]))
	})
	t.Run("unknown-user", func(t *testing.T) {
		name := "X"
		_, err := service.UpdateSettings("ghost", models.UpdateSettingsRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStreakAcrossDays(t *testing.T) {
	service, reply := newTestService(t)
	userID := registerTestUser(t, service)

	*reply = "lesson one"
	lesson1, err := service.GenerateLesson(userID, models.GenerateLessonRequest{Subject: "math", Topic: "one"})
	assert.NoError(t, err)
	*reply = "lesson two"
	lesson2, err := service.GenerateLesson(userID, models.GenerateLessonRequest{Subject: "math", Topic: "two"})
	assert.NoError(t, err)

	_, err = service.CompleteLesson(userID, asString(lesson1[models.FieldID]))
	assert.NoError(t, err)

	service.now = func() time.Time { return testClock.AddDate(0, 0, 1) }
	_, err = service.CompleteLesson(userID, asString(lesson2[models.FieldID]))
	assert.NoError(t, err)

	progress, err := service.GetProgress(userID)
	assert.NoError(t, err)
	assert.Equal(t, 2, asInt(progress["streak"]))
	assert.Equal(t, "2024-03-16", progress["lastActivityDate"])
}
