// Package main implements the entry point for the atenea server, a personal
// assistant backend that routes spoken queries to AI agents over external
// task and contact stores, answering within the caller's deadline.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
