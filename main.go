package main

import (
	"os"

	"github.com/rs/zerolog"

	"vitaldeck/app"
	"vitaldeck/config"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.LoadFromEnv()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("application exited with error")
	}
}
