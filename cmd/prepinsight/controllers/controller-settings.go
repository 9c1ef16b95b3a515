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

func (h *Handlers) GetSettingsHandler(c *gin.Context) {
	settings, err := h.Service.GetSettings(helpers.UserID(c))
	if err != nil {
		handleServiceError(c, err, "settings")
		return
	}
	helpers.RespondOK(c, settings, "")
}

func (h *Handlers) UpdateSettingsHandler(c *gin.Context) {
	var request models.UpdateSettingsRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	settings, err := h.Service.UpdateSettings(helpers.UserID(c), request)
	if err != nil {
		handleServiceError(c, err, "settings")
		return
	}
	helpers.RespondOK(c, settings, "Settings updated.")
}
