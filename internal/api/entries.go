package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skybi/chainmap/internal/api/schema"
)

type entryDTO struct {
	Key      string  `json:"key"`
	Value    string  `json:"value"`
	Previous *string `json:"previous,omitempty"`
	Replaced bool    `json:"replaced"`
}

type putEntryBody struct {
	Value *string `json:"value" required:"true" max_length:"65536"`
}

// EndpointGetEntry handles the 'GET /v1/entries/{key}' endpoint
func (service *Service) EndpointGetEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")
	value, ok := service.Store.Lookup(key)
	if !ok {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrEntryNotFound(key))
		return
	}
	service.writer.WriteJSON(writer, &entryDTO{Key: key, Value: value})
}

// EndpointPutEntry handles the 'PUT /v1/entries/{key}' endpoint
func (service *Service) EndpointPutEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")
	body, validationErrs, err := schema.UnmarshalBody[putEntryBody](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	response := &entryDTO{Key: key, Value: *body.Value}
	if previous, replaced := service.Store.Put(key, *body.Value); replaced {
		response.Previous = &previous
		response.Replaced = true
	}
	service.writer.WriteJSON(writer, response)
}

// EndpointDeleteEntry handles the 'DELETE /v1/entries/{key}' endpoint
func (service *Service) EndpointDeleteEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")
	value, ok := service.Store.Remove(key)
	if !ok {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrEntryNotFound(key))
		return
	}
	service.writer.WriteJSON(writer, &entryDTO{Key: key, Value: value})
}

// EndpointClearEntries handles the 'DELETE /v1/entries' endpoint
func (service *Service) EndpointClearEntries(writer http.ResponseWriter, _ *http.Request) {
	service.Store.Clear()
	writer.WriteHeader(http.StatusNoContent)
}

// EndpointGetStats handles the 'GET /v1/stats' endpoint
func (service *Service) EndpointGetStats(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteJSON(writer, map[string]any{
		"size": service.Store.Size(),
	})
}
