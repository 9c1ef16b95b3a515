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
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/helpers"
	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/cmd/prepinsight/services"
	"github.com/prepinsight/prepinsight/internal/sessions"
)

func (h *Handlers) RegisterHandler(c *gin.Context) {
	var request models.RegisterRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	user, err := h.Service.Register(request)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			helpers.HandleInvalidInputError(c, err)
			return
		}
		helpers.HandleInternalServerError(c, err)
		return
	}

	token := h.Sessions.Create(user[models.FieldID].(string))
	helpers.RespondCreated(c, gin.H{"user": user, "token": token}, "Account created.")
}

func (h *Handlers) LoginHandler(c *gin.Context) {
	var request models.LoginRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	user, err := h.Service.Login(request)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			helpers.HandleUnauthorized(c)
			return
		}
		helpers.HandleInternalServerError(c, err)
		return
	}

	token := h.Sessions.Create(user[models.FieldID].(string))
	helpers.RespondOK(c, gin.H{"user": user, "token": token}, "Logged in.")
}

func (h *Handlers) LogoutHandler(c *gin.Context) {
	token := sessions.TokenFromHeader(c.GetHeader("Authorization"))
	if token != "" {
		h.Sessions.Destroy(token)
	}
	helpers.RespondOK(c, nil, "Logged out.")
}

func (h *Handlers) GetMeHandler(c *gin.Context) {
	user, err := h.Service.GetUser(helpers.UserID(c))
	if err != nil {
		handleServiceError(c, err, "user")
		return
	}
	helpers.RespondOK(c, user, "")
}

func (h *Handlers) DeleteMeHandler(c *gin.Context) {
	err := h.Service.DeleteAccount(helpers.UserID(c))
	if err != nil {
		handleServiceError(c, err, "user")
		return
	}

	token := sessions.TokenFromHeader(c.GetHeader("Authorization"))
	if token != "" {
		h.Sessions.Destroy(token)
	}
	helpers.RespondOK(c, nil, "Account deleted.")
}
