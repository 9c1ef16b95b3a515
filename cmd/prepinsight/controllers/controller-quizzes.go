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
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/helpers"
	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
)

func (h *Handlers) ListQuizzesHandler(c *gin.Context) {
	page, limit, err := bindList(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	helpers.RespondOK(c, h.Service.ListQuizzes(helpers.UserID(c), page, limit), "")
}

func (h *Handlers) GetQuizHandler(c *gin.Context) {
	var request models.IDRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	quiz, err := h.Service.GetQuiz(helpers.UserID(c), request.ID)
	if err != nil {
		handleServiceError(c, err, "quiz")
		return
	}
	helpers.RespondOK(c, quiz, "")
}

func (h *Handlers) GenerateQuizHandler(c *gin.Context) {
	var request models.GenerateQuizRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	if !models.IsSubject(request.Subject) {
		helpers.HandleInvalidInputError(c, fmt.Errorf("unknown subject %q", request.Subject))
		return
	}

	quiz, err := h.Service.GenerateQuiz(helpers.UserID(c), request)
	if err != nil {
		handleServiceError(c, err, "quiz")
		return
	}
	helpers.RespondCreated(c, quiz, "Quiz generated.")
}

func (h *Handlers) SubmitQuizHandler(c *gin.Context) {
	var idRequest models.IDRequest

	err := c.BindUri(&idRequest)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	var request models.SubmitQuizRequest
	err = c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	quiz, err := h.Service.SubmitQuiz(helpers.UserID(c), idRequest.ID, request.Answers)
	if err != nil {
		handleServiceError(c, err, "quiz")
		return
	}
	helpers.RespondOK(c, quiz, "Quiz submitted.")
}
