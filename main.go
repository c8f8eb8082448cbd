// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/httpext"
	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/osext"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/api"
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/assign"
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

func main() {
	logg.ShowDebug = osext.GetenvBool("BMT_DEBUG")

	weights, err := core.LoadWeightsFile(os.Getenv("BMT_WEIGHTS_PATH"))
	if err != nil {
		logg.Fatal(err.Error())
	}
	solver := assign.NewSolver(weights)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httpapi.Compose(api.NewAPI(solver)))

	var handler http.Handler = mux
	if allowedOriginStr := os.Getenv("BMT_CORS_ALLOWED_ORIGINS"); allowedOriginStr != "" {
		handler = cors.New(cors.Options{
			AllowedOrigins: strings.Split(strings.ReplaceAll(allowedOriginStr, " ", ""), "||"),
			AllowedMethods: []string{"HEAD", "GET", "POST"},
			AllowedHeaders: []string{"Content-Type", "User-Agent"},
		}).Handler(handler)
	}

	listenAddr := ":" + osext.GetenvOrDefault("PORT", "5000")
	logg.Info("listening on " + listenAddr)
	ctx := httpext.ContextWithSIGINT(context.Background(), 10*time.Second)
	err = httpext.ListenAndServeContext(ctx, listenAddr, handler)
	if err != nil {
		logg.Fatal(err.Error())
	}
}
