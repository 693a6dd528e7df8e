package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/skybi/chainmap/internal/api/schema"
	"github.com/skybi/chainmap/internal/config"
	"github.com/skybi/chainmap/internal/hashmap"
)

// Service represents the key-value API service
type Service struct {
	Config *config.Config
	Store  hashmap.Map[string, string]

	server *http.Server
	writer *schema.Writer
}

// Startup starts up the key-value API
func (service *Service) Startup(errs chan<- error) {
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.Router(),
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Router builds the HTTP router serving the key-value API
func (service *Service) Router() http.Handler {
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the key-value API experienced an unexpected error")
		},
	}

	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(middleware.Recoverer)
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	router.Get("/v1/stats", service.EndpointGetStats)
	router.Delete("/v1/entries", service.EndpointClearEntries)
	router.Get("/v1/entries/{key}", service.EndpointGetEntry)
	router.Put("/v1/entries/{key}", service.EndpointPutEntry)
	router.Delete("/v1/entries/{key}", service.EndpointDeleteEntry)
	return router
}

// Shutdown shuts down the key-value API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}
