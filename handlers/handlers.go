// Package handlers provides HTTP handlers for different services across
// the application.
package handlers

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"net/http"

	"github.com/plainconf/settings-api/errors"
	log "github.com/sirupsen/logrus"
)

var InvalidBodyError = &errors.RequestError{
	StatusCode: http.StatusBadRequest,
	Err:        fmt.Errorf("empty or invalid request body"),
}

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, r *http.Request, err error) {
	log.
		WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).
		Warn(err)

	// Check if the error was an errors.RequestError
	var reqErr *errors.RequestError
	if goerrors.As(err, &reqErr) {
		// Send error message to client
		http.Error(rw, reqErr.Error(), reqErr.StatusCode)
		return
	}

	// Otherwise do not send data regarding the error
	http.Error(rw, "Error", http.StatusInternalServerError)
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(res) // nolint
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.ContentLength == 0 {
		return InvalidBodyError
	}
	return nil
}
