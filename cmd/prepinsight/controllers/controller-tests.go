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

func (h *Handlers) ListTestsHandler(c *gin.Context) {
	page, limit, err := bindList(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	helpers.RespondOK(c, h.Service.ListTests(helpers.UserID(c), page, limit), "")
}

func (h *Handlers) GetTestHandler(c *gin.Context) {
	var request models.IDRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	test, err := h.Service.GetTest(helpers.UserID(c), request.ID)
	if err != nil {
		handleServiceError(c, err, "test")
		return
	}
	helpers.RespondOK(c, test, "")
}

func (h *Handlers) GenerateTestHandler(c *gin.Context) {
	var request models.GenerateTestRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	for _, section := range request.Sections {
		if !models.IsSubject(section) {
			helpers.HandleInvalidInputError(c, fmt.Errorf("unknown section %q", section))
			return
		}
	}

	test, err := h.Service.GenerateTest(helpers.UserID(c), request)
	if err != nil {
		handleServiceError(c, err, "test")
		return
	}
	helpers.RespondCreated(c, test, "Practice test generated.")
}

func (h *Handlers) SubmitTestHandler(c *gin.Context) {
	var idRequest models.IDRequest

	err := c.BindUri(&idRequest)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	var request models.SubmitTestRequest
	err = c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	test, err := h.Service.SubmitTest(helpers.UserID(c), idRequest.ID, request.Answers)
	if err != nil {
		handleServiceError(c, err, "test")
		return
	}
	helpers.RespondOK(c, test, "Test submitted.")
}
