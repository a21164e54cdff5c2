package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/plainconf/settings-api/errors"
	"github.com/plainconf/settings-api/settings"
)

// Settings is a HTTP server for settings management.
type Settings struct {
	service *settings.Service
}

// valueJSON carries a single entry with its value converted to the
// requested type.
type valueJSON struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

type saveAsRequestJSON struct {
	Path string `json:"path"`
}

type setRequestJSON struct {
	Value string `json:"value"`
}

type statusJSON struct {
	Status string `json:"status"`
}

func NewSettings(service *settings.Service) *Settings {
	return &Settings{service}
}

// List returns every entry, ordered by key.
func (s *Settings) List() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		handleJsonResponse(rw, http.StatusOK, s.service.List())
	})
}

// Get returns a single entry. The "type" query parameter selects a
// typed accessor: string (default), int, float or bool.
func (s *Settings) Get() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["key"]

		var value interface{}
		var err error

		switch t := r.URL.Query().Get("type"); t {
		case "", "string":
			value, err = s.service.Get(key)
		case "int":
			value, err = s.service.GetInt(key)
		case "float":
			value, err = s.service.GetFloat(key)
		case "bool":
			value, err = s.service.GetBool(key)
		default:
			err = &errors.RequestError{
				StatusCode: http.StatusBadRequest,
				Err:        fmt.Errorf("unsupported type %q", t),
			}
		}

		if err != nil {
			handleError(rw, r, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, valueJSON{Key: key, Value: value})
	})
}

// Set inserts or overwrites a single entry.
func (s *Settings) Set() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		var body setRequestJSON
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		key := mux.Vars(r)["key"]
		s.service.Set(key, body.Value)

		handleJsonResponse(rw, http.StatusOK, settings.Setting{Key: key, Value: body.Value})
	})
}

// Save persists the entries to the file the store is bound to.
func (s *Settings) Save() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := s.service.Save(); err != nil {
			handleError(rw, r, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, statusJSON{Status: "saved"})
	})
}

// SaveAs persists the entries to the path given in the request body.
func (s *Settings) SaveAs() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		var body saveAsRequestJSON
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Path == "" {
			handleError(rw, r, InvalidBodyError)
			return
		}

		if err := s.service.SaveAs(body.Path); err != nil {
			handleError(rw, r, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, statusJSON{Status: "saved"})
	})
}

// Reload re-reads the file the store is bound to, discarding unsaved
// changes.
func (s *Settings) Reload() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := s.service.Reload(); err != nil {
			handleError(rw, r, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, s.service.List())
	})
}
