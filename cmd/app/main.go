package main

import (
	"context"
	"log"
	"os"

	"shopledger/internal/adapters/cli"
	"shopledger/internal/app"
	"shopledger/internal/db"
	"shopledger/internal/feeds"
	"shopledger/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	_ = godotenv.Load()

	viper.SetConfigName(".shopledger")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("config: %v", err)
		}
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	pg := store.NewPostgres(pool)

	var sources []feeds.Source
	if dir := viper.GetString("feeds_dir"); dir != "" {
		sources = feeds.FromDir(dir)
	}

	svc := app.NewService(pg, pg, pg, sources)

	if err := cli.New(svc).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
