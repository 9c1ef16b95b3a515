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

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/controllers"
	"github.com/prepinsight/prepinsight/internal/metrics"
	"github.com/prepinsight/prepinsight/internal/ratelimit"
	"github.com/prepinsight/prepinsight/internal/sessions"
)

// SetupRestAPI initializes the REST API and starts listening
func SetupRestAPI(handlers *controllers.Handlers, limiter *ratelimit.Limiter, port string) {
	gin.SetMode(gin.ReleaseMode)
	router := setupRouter(handlers, limiter)

	err := router.Run(":" + port)
	if err != nil {
		zap.S().Errorf("Failed to run REST API: %s", err)
	}
}

func setupRouter(handlers *controllers.Handlers, limiter *ratelimit.Limiter) *gin.Engine {
	router := gin.New()

	// Add a ginzap middleware, which:
	//   - Logs all requests, like a combined access and error log.
	//   - Logs to stdout.
	//   - RFC3339 with UTC time format.
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(countRequests())

	// Healthcheck
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "online")
	})

	const apiString = "/api/v1"

	// Registration and login are the only routes reachable without a session
	auth := router.Group(apiString + "/auth")
	{
		auth.POST("/register", handlers.RegisterHandler)
		auth.POST("/login", handlers.LoginHandler)
	}

	v1 := router.Group(apiString, sessions.Middleware(handlers.Sessions), ratelimit.Middleware(limiter))
	{
		v1.POST("/auth/logout", handlers.LogoutHandler)
		v1.GET("/auth/me", handlers.GetMeHandler)
		v1.DELETE("/auth/me", handlers.DeleteMeHandler)

		v1.GET("/lessons", handlers.ListLessonsHandler)
		v1.GET("/lessons/:id", handlers.GetLessonHandler)
		v1.POST("/lessons/generate", handlers.GenerateLessonHandler)
		v1.POST("/lessons/:id/complete", handlers.CompleteLessonHandler)

		v1.GET("/quizzes", handlers.ListQuizzesHandler)
		v1.GET("/quizzes/:id", handlers.GetQuizHandler)
		v1.POST("/quizzes/generate", handlers.GenerateQuizHandler)
		v1.POST("/quizzes/:id/submit", handlers.SubmitQuizHandler)

		v1.GET("/tests", handlers.ListTestsHandler)
		v1.GET("/tests/:id", handlers.GetTestHandler)
		v1.POST("/tests/generate", handlers.GenerateTestHandler)
		v1.POST("/tests/:id/submit", handlers.SubmitTestHandler)

		v1.GET("/essays", handlers.ListEssaysHandler)
		v1.GET("/essays/:id", handlers.GetEssayHandler)
		v1.POST("/essays/submit", handlers.SubmitEssayHandler)

		v1.GET("/flashcards", handlers.ListFlashcardDecksHandler)
		v1.GET("/flashcards/:id", handlers.GetFlashcardDeckHandler)
		v1.POST("/flashcards/generate", handlers.GenerateFlashcardsHandler)
		v1.POST("/flashcards/:id/review", handlers.ReviewFlashcardDeckHandler)

		v1.GET("/study-plan/current", handlers.CurrentStudyPlanHandler)
		v1.POST("/study-plan/generate", handlers.GenerateStudyPlanHandler)

		v1.GET("/chat/history", handlers.ChatHistoryHandler)
		v1.POST("/chat", handlers.SendChatMessageHandler)

		v1.GET("/progress", handlers.GetProgressHandler)

		v1.GET("/settings", handlers.GetSettingsHandler)
		v1.PUT("/settings", handlers.UpdateSettingsHandler)
	}

	return router
}

func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.HTTPRequests.WithLabelValues(c.FullPath(), strconv.Itoa(c.Writer.Status())).Inc()
	}
}
