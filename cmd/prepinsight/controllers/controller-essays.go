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

func (h *Handlers) ListEssaysHandler(c *gin.Context) {
	page, limit, err := bindList(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	helpers.RespondOK(c, h.Service.ListEssays(helpers.UserID(c), page, limit), "")
}

func (h *Handlers) GetEssayHandler(c *gin.Context) {
	var request models.IDRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	essay, err := h.Service.GetEssay(helpers.UserID(c), request.ID)
	if err != nil {
		handleServiceError(c, err, "essay")
		return
	}
	helpers.RespondOK(c, essay, "")
}

func (h *Handlers) SubmitEssayHandler(c *gin.Context) {
	var request models.SubmitEssayRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	essay, err := h.Service.SubmitEssay(helpers.UserID(c), request)
	if err != nil {
		handleServiceError(c, err, "essay")
		return
	}
	helpers.RespondCreated(c, essay, "Essay graded.")
}
