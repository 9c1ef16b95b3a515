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
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/united-manufacturing-hub/umh-utils/env"
	"github.com/united-manufacturing-hub/umh-utils/logger"
	"go.uber.org/zap"

	"github.com/prepinsight/prepinsight/cmd/prepinsight/controllers"
	"github.com/prepinsight/prepinsight/cmd/prepinsight/services"
	"github.com/prepinsight/prepinsight/internal/ratelimit"
	"github.com/prepinsight/prepinsight/internal/sessions"
	"github.com/prepinsight/prepinsight/pkg/aigateway"
	"github.com/prepinsight/prepinsight/pkg/docstore"
)

var buildtime string
var shutdownEnabled bool

func main() {
	// Initialize zap logging
	logLevel, _ := env.GetAsString("LOGGING_LEVEL", false, "PRODUCTION") //nolint:errcheck
	log := logger.New(logLevel)
	defer func(logger *zap.SugaredLogger) {
		err := logger.Sync()
		if err != nil {
			panic(err)
		}
	}(log)

	zap.S().Infof("This is prepinsight build date: %s", buildtime)

	dataDir, err := env.GetAsString("DATA_DIR", false, "./data")
	if err != nil {
		zap.S().Error(err)
	}
	servePort, err := env.GetAsString("SERVE_PORT", false, "80")
	if err != nil {
		zap.S().Error(err)
	}
	healthPort, err := env.GetAsString("HEALTH_PORT", false, "8086")
	if err != nil {
		zap.S().Error(err)
	}
	rateLimitRequests, err := env.GetAsInt("RATE_LIMIT_REQUESTS", false, 100)
	if err != nil {
		zap.S().Error(err)
	}
	rateLimitWindow, err := env.GetAsInt("RATE_LIMIT_WINDOW_SECONDS", false, 60)
	if err != nil {
		zap.S().Error(err)
	}

	zap.S().Debugf("Setting up healthcheck")

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(1000000))
	health.AddReadinessCheck("shutdownEnabled", isShutdownEnabled())
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/live", health)
		mux.Handle("/ready", health)
		mux.Handle("/metrics", promhttp.Handler())
		/* #nosec G114 */
		err := http.ListenAndServe("0.0.0.0:"+healthPort, mux)
		if err != nil {
			zap.S().Errorf("Error starting healthcheck: %s", err)
		}
	}()

	zap.S().Debugf("Setting up document store at %s", dataDir)

	store, err := docstore.New(dataDir)
	if err != nil {
		zap.S().Fatalf("Failed to initialize document store: %s", err)
	}

	gateway, err := aigateway.NewFromEnv()
	if err != nil {
		zap.S().Fatalf("Failed to initialize AI gateway: %s", err)
	}

	service := services.New(store, gateway)
	registry := sessions.NewRegistry()
	limiter := ratelimit.New(rateLimitRequests, time.Duration(rateLimitWindow)*time.Second)
	handlers := controllers.New(service, registry)

	// Allow graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM)

	go func() {
		// Kubernetes sends SIGTERM 30 seconds before
		// shutting down the pod.
		sig := <-sigs

		zap.S().Infof("Received SIGTERM: %s", sig)

		ShutdownApplicationGraceful()
	}()

	zap.S().Debugf("Starting REST API on port %s", servePort)

	SetupRestAPI(handlers, limiter, servePort)
}

func isShutdownEnabled() healthcheck.Check {
	return func() error {
		if shutdownEnabled {
			return fmt.Errorf("shutdown")
		}
		return nil
	}
}

// ShutdownApplicationGraceful shuts down the entire application
func ShutdownApplicationGraceful() {
	zap.S().Infof("Shutting down application")
	shutdownEnabled = true

	time.Sleep(5 * time.Second) // Wait until remaining open requests are handled

	zap.S().Infof("Successful shutdown. Exiting.")

	// Gracefully exit.
	// (Use runtime.GoExit() if you need to call defers)
	os.Exit(0)
}
