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

// Collection names on disk, one JSON file each.
const (
	CollectionUsers       = "users"
	CollectionLessons     = "lessons"
	CollectionQuizzes     = "quizzes"
	CollectionTests       = "tests"
	CollectionStudyPlans  = "study_plans"
	CollectionEssays      = "essays"
	CollectionFlashcards  = "flashcards"
	CollectionChatHistory = "chat_history"
	CollectionProgress    = "progress"
)

// Record field names shared across collections.
const (
	FieldID        = "id"
	FieldUserID    = "userId"
	FieldCreatedAt = "createdAt"
)

// ACT subjects used by lessons, quizzes and test sections.
var Subjects = []string{"english", "math", "reading", "science"}

// IsSubject reports whether s is one of the ACT subjects.
func IsSubject(s string) bool {
	for _, subject := range Subjects {
		if subject == s {
			return true
		}
	}
	return false
}
