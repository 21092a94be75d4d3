package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mefengl/note-oauth2/pkg/interop"
	"golang.org/x/oauth2"
)

// MockRetrieveError fabricates the error the x/oauth2 transport produces
// for a non-2xx token endpoint response carrying the given error envelope.
func MockRetrieveError(statusCode int, env *interop.JSONError) error {
	body, err := json.Marshal(env)
	if err != nil {
		panic(err)
	}

	return &oauth2.RetrieveError{
		Response: &http.Response{
			Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
			StatusCode: statusCode,
		},
		Body: body,
	}
}

// MockOpaqueRetrieveError is MockRetrieveError for servers that respond
// with something other than the standard envelope.
func MockOpaqueRetrieveError(statusCode int, body string) error {
	return &oauth2.RetrieveError{
		Response: &http.Response{
			Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
			StatusCode: statusCode,
		},
		Body: []byte(body),
	}
}
