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
	"time"

	"github.com/google/uuid"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/pkg/aigateway"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

// recent conversation turns handed back to the model as context
const chatContextTurns = 10

// ChatHistory returns one page of the user's chat turns, newest first.
func (s *Service) ChatHistory(userID string, page int, limit int) docstore.Page {
	return s.Store.Paginate(models.CollectionChatHistory, byUser(userID), page, limit,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})
}

// SendChatMessage forwards the student message plus recent history to the
// gateway and appends both the question and the reply to the history.
func (s *Service) SendChatMessage(userID string, message string) (docstore.Record, error) {
	recent := s.Store.Paginate(models.CollectionChatHistory, byUser(userID), 1, chatContextTurns,
		&docstore.SortSpec{Field: models.FieldCreatedAt, Descending: true})

	// oldest first for the model
	history := make([]aigateway.Message, 0, len(recent.Items))
	for i := len(recent.Items) - 1; i >= 0; i-- {
		item := recent.Items[i]
		history = append(history, aigateway.Message{
			Role:    asString(item["role"]),
			Content: asString(item["content"]),
		})
	}

	reply, err := s.AI.ChatReply(history, message)
	if err != nil {
		return nil, err
	}

	now := s.now()
	question := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"role":                "user",
		"content":             message,
		models.FieldCreatedAt: timestamp(now),
	}
	if _, err := s.Store.Insert(models.CollectionChatHistory, question); err != nil {
		return nil, err
	}

	answer := docstore.Record{
		models.FieldID:        uuid.NewString(),
		models.FieldUserID:    userID,
		"role":                "assistant",
		"content":             reply,
		models.FieldCreatedAt: timestamp(now.Add(time.Second)), // keep reply after question when sorting
	}
	return s.Store.Insert(models.CollectionChatHistory, answer)
}
