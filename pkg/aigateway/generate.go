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

package aigateway

import (
	"fmt"
	"strings"
)

const tutorSystemPrompt = "You are an expert ACT tutor. Be precise and encouraging."

// Question is one generated multiple-choice question.
type Question struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

// TestSection is one generated section of a practice test.
type TestSection struct {
	Section   string     `json:"section"`
	Questions []Question `json:"questions"`
}

// EssayGrade is the model's verdict on a submitted essay.
type EssayGrade struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Flashcard is one generated front/back card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// PlanWeek is one week of a generated study plan.
type PlanWeek struct {
	Week  int      `json:"week"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// GenerateLesson returns lesson content as raw markdown text.
func (g *Gateway) GenerateLesson(subject string, topic string) (string, error) {
	return g.Chat("default", []Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Write a focused ACT %s lesson on %q. Cover the key rules, two worked examples and three common traps.",
			subject, topic)},
	})
}

// GenerateQuiz returns count multiple-choice questions for a topic.
func (g *Gateway) GenerateQuiz(subject string, topic string, count int) ([]Question, error) {
	text, err := g.Chat("default", []Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Create %d ACT %s multiple-choice questions on %q. Respond with only a JSON array of "+
				`objects: {"question", "choices" (4 strings), "answer" (choice index), "explanation"}.`,
			count, subject, topic)},
	})
	if err != nil {
		return nil, err
	}

	var questions []Question
	if err := ExtractJSON(text, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GeneratePracticeTest returns one question block per requested section.
func (g *Gateway) GeneratePracticeTest(sections []string) ([]TestSection, error) {
	text, err := g.Chat("reasoning", []Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Create a short ACT practice test with the sections: %s. Respond with only a JSON array of "+
				`objects: {"section", "questions": [{"question", "choices" (4 strings), "answer" (choice index), "explanation"}]}. `+
				"5 questions per section.",
			strings.Join(sections, ", "))},
	})
	if err != nil {
		return nil, err
	}

	var generated []TestSection
	if err := ExtractJSON(text, &generated); err != nil {
		return nil, err
	}
	return generated, nil
}

// GradeEssay scores an essay on the 2-12 ACT writing scale.
func (g *Gateway) GradeEssay(prompt string, essay string) (EssayGrade, error) {
	text, err := g.Chat("reasoning", []Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Grade this ACT essay on the 2-12 writing scale. Respond with only a JSON object "+
				`{"score" (number 2-12), "feedback" (string)}. Prompt: %s

Essay: %s`,
			prompt, essay)},
	})
	if err != nil {
		return EssayGrade{}, err
	}

	var grade EssayGrade
	if err := ExtractJSON(text, &grade); err != nil {
		return EssayGrade{}, err
	}
	return grade, nil
}

// GenerateFlashcards returns count front/back cards for a topic.
func (g *Gateway) GenerateFlashcards(topic string, count int) ([]Flashcard, error) {
	text, err := g.Chat("fast", []Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			`Create %d ACT flashcards on %q. Respond with only a JSON array of objects: {"front", "back"}.`,
			count, topic)},
	})
	if err != nil {
		return nil, err
	}

	var cards []Flashcard
	if err := ExtractJSON(text, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// GenerateStudyPlan returns a weekly plan leading up to the test date.
func (g *Gateway) GenerateStudyPlan(testDate string, hoursPerWeek int, weakSubjects []string) ([]PlanWeek, error) {
	text, err := g.Chat("default", []Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Create a weekly ACT study plan. Test date: %s. Available: %d hours per week. Weak subjects: %s. "+
				`Respond with only a JSON array of objects: {"week" (number), "focus", "tasks" (strings)}.`,
			testDate, hoursPerWeek, strings.Join(weakSubjects, ", "))},
	})
	if err != nil {
		return nil, err
	}

	var weeks []PlanWeek
	if err := ExtractJSON(text, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// ChatReply answers a student message given recent conversation history.
func (g *Gateway) ChatReply(history []Message, message string) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: tutorSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	return g.Chat("fast", messages)
}
