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

package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/helpers"
	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
)

func (h *Handlers) ListFlashcardDecksHandler(c *gin.Context) {
	page, limit, err := bindList(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	helpers.RespondOK(c, h.Service.ListFlashcardDecks(helpers.UserID(c), page, limit), "")
}

func (h *Handlers) GetFlashcardDeckHandler(c *gin.Context) {
	var request models.IDRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	deck, err := h.Service.GetFlashcardDeck(helpers.UserID(c), request.ID)
	if err != nil {
		handleServiceError(c, err, "flashcard deck")
		return
	}
	helpers.RespondOK(c, deck, "")
}

func (h *Handlers) GenerateFlashcardsHandler(c *gin.Context) {
	var request models.GenerateFlashcardsRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	deck, err := h.Service.GenerateFlashcards(helpers.UserID(c), request)
	if err != nil {
		handleServiceError(c, err, "flashcard deck")
		return
	}
	helpers.RespondCreated(c, deck, "Flashcard deck generated.")
}

func (h *Handlers) ReviewFlashcardDeckHandler(c *gin.Context) {
	var request models.IDRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	var review models.ReviewFlashcardsRequest

	err = c.BindJSON(&review)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	deck, err := h.Service.ReviewFlashcardDeck(helpers.UserID(c), request.ID, review.Known)
	if err != nil {
		handleServiceError(c, err, "flashcard deck")
		return
	}
	helpers.RespondOK(c, deck, "Review recorded.")
}
