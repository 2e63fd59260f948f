package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"geotag/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := parseFlags(config.Load())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := runProcess(os.Stdout, logger, cfg); err != nil {
		logger.Error().Err(err).Msg("batch failed")
		os.Exit(1)
	}
}
