package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/chainmap/internal/api"
	"github.com/skybi/chainmap/internal/config"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Create the store backing the API
	log.Info().Int("capacity", cfg.MapCapacity).Float64("load_factor", cfg.MapLoadFactor).Int("shards", cfg.MapShards).
		Dur("entry_lifetime", cfg.EntryLifetime).Msg("creating the key-value store...")
	store, release, err := api.NewStore(cfg, log.Logger.With().Str("component", "store").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the key-value store")
	}
	defer release()

	// Start up the key-value API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the key-value API...")
	service := &api.Service{
		Config: cfg,
		Store:  store,
	}
	apiErrs := make(chan error, 1)
	service.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the key-value API...")
		service.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
