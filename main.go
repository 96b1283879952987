package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/superhirn/mastermind/internal/httpserver"
	"github.com/superhirn/mastermind/internal/shell"
	"github.com/superhirn/mastermind/internal/store"
)

// Runs as an HTTP server by default; `mastermind play` starts the
// interactive shell instead.
func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if len(os.Args) > 1 && os.Args[1] == "play" {
		if err := shell.New(os.Stdin, os.Stdout).Run(); err != nil {
			log.Fatal().Err(err).Msg("shell exited")
		}
		return
	}

	db, err := openDB(getEnv("SQLITE_PATH", "./data/mastermind.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db)
	port := getEnv("PORT", "6175")
	log.Info().Str("port", port).Msg("starting mastermind server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
