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

// Package controllers holds the gin handlers. Each handler binds the
// request, resolves the caller's identity and delegates to the services
// package; no storage or gateway access happens here.
package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/helpers"
	"github.com/prepinsight/prepinsight/cmd/prepinsight/models"
	"github.com/prepinsight/prepinsight/cmd/prepinsight/services"
	"github.com/prepinsight/prepinsight/internal/sessions"
)

// Handlers carries the explicit dependencies into the route handlers.
type Handlers struct {
	Service  *services.Service
	Sessions *sessions.Registry
}

// New returns the handler set.
func New(service *services.Service, registry *sessions.Registry) *Handlers {
	return &Handlers{Service: service, Sessions: registry}
}

// bindList parses the shared pagination query, defaulting to page 1 of 10.
func bindList(c *gin.Context) (page int, limit int, err error) {
	var request models.ListRequest
	if err := c.BindQuery(&request); err != nil {
		return 0, 0, err
	}
	return request.Page, request.Limit, nil
}

// handleServiceError maps a service failure onto a response. Not-found
// becomes 404, everything else (including upstream AI failures) becomes a
// 500 with the detail kept server-side.
func handleServiceError(c *gin.Context, err error, what string) {
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, what)
		return
	}
	helpers.HandleInternalServerError(c, err)
}
