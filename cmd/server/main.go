package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "shopledger/internal/adapters/web"
	"shopledger/internal/app"
	"shopledger/internal/db"
	"shopledger/internal/feeds"
	"shopledger/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	pg := store.NewPostgres(pool)

	var sources []feeds.Source
	if dir := os.Getenv("FEEDS_DIR"); dir != "" {
		sources = feeds.FromDir(dir)
		log.Printf("attached %d transaction feeds from %s", len(sources), dir)
	}

	svc := app.NewService(pg, pg, pg, sources)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
