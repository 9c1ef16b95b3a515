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

package models

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest opens a session for an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IDRequest addresses one record by its id path parameter.
type IDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// ListRequest is the shared pagination query.
type ListRequest struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

// GenerateLessonRequest asks for a new AI-generated lesson.
type GenerateLessonRequest struct {
	Subject string `json:"subject" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
}

// GenerateQuizRequest asks for a new AI-generated quiz.
type GenerateQuizRequest struct {
	Subject string `json:"subject" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
	Count   int    `json:"count"` // defaulted to 5 when absent
}

// SubmitQuizRequest carries the chosen answer index per question.
type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// GenerateTestRequest asks for a practice test over the given sections.
type GenerateTestRequest struct {
	Sections []string `json:"sections" binding:"required,min=1"`
}

// SubmitTestRequest carries answers per section, keyed by section name.
type SubmitTestRequest struct {
	Answers map[string][]int `json:"answers" binding:"required"`
}

// SubmitEssayRequest submits an essay for AI grading.
type SubmitEssayRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// GenerateFlashcardsRequest asks for a new AI-generated deck.
type GenerateFlashcardsRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"` // defaulted to 10 when absent
}

// ReviewFlashcardsRequest records one review pass over a deck.
type ReviewFlashcardsRequest struct {
	Known int `json:"known" binding:"min=0"`
}

// GenerateStudyPlanRequest asks for a weekly plan up to the test date.
type GenerateStudyPlanRequest struct {
	TestDate     string   `json:"testDate" binding:"required"`
	HoursPerWeek int      `json:"hoursPerWeek" binding:"required,min=1"`
	WeakSubjects []string `json:"weakSubjects"`
}

// ChatRequest sends one student message to the tutor.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// UpdateSettingsRequest merges profile settings into the user record.
type UpdateSettingsRequest struct {
	Name        *string `json:"name"`
	TargetScore *int    `json:"targetScore"`
	DailyGoal   *int    `json:"dailyGoal"`
}
