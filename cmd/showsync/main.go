package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"showsync/internal/constants"
	"showsync/internal/middleware"
)

func serverPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return constants.DefaultPort
}

func main() {
	a, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.cache.StartCleanup(ctx)

	// Settle the session from the persisted credential; subscribers
	// (the bookmark synchronizer) refresh off this transition.
	go a.container.Session.Resolve()

	r := gin.Default()
	r.Use(middleware.Gzip(a.logger))
	r.Use(middleware.CORS())

	a.handler.RegisterRoutes(r)

	port := serverPort()
	a.logger.Infof("[App] starting HTTP server on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		a.logger.Fatalf("[App] server failed: %v", err)
	}
}
