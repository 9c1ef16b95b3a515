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

func (h *Handlers) ListLessonsHandler(c *gin.Context) {
	page, limit, err := bindList(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	helpers.RespondOK(c, h.Service.ListLessons(helpers.UserID(c), page, limit), "")
}

func (h *Handlers) GetLessonHandler(c *gin.Context) {
	var request models.IDRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	lesson, err := h.Service.GetLesson(helpers.UserID(c), request.ID)
	if err != nil {
		handleServiceError(c, err, "lesson")
		return
	}
	helpers.RespondOK(c, lesson, "")
}

func (h *Handlers) GenerateLessonHandler(c *gin.Context) {
	var request models.GenerateLessonRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	if !models.IsSubject(request.Subject) {
		helpers.HandleInvalidInputError(c, fmt.Errorf("unknown subject %q", request.Subject))
		return
	}

	lesson, err := h.Service.GenerateLesson(helpers.UserID(c), request)
	if err != nil {
		handleServiceError(c, err, "lesson")
		return
	}
	helpers.RespondCreated(c, lesson, "Lesson generated.")
}

func (h *Handlers) CompleteLessonHandler(c *gin.Context) {
	var request models.IDRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	lesson, err := h.Service.CompleteLesson(helpers.UserID(c), request.ID)
	if err != nil {
		handleServiceError(c, err, "lesson")
		return
	}
	helpers.RespondOK(c, lesson, "Lesson completed.")
}
