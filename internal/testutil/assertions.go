package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies status and the {"error": ...} payload.
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var payload struct {
		Error string `json:"error"`
	}
	AssertJSONResponse(t, resp, &payload)
	assert.Equal(t, expectedMessage, payload.Error, "error message mismatch")
}

// AssertMessage verifies a {"message": ...} payload.
func AssertMessage(t *testing.T, resp *http.Response, expected string) {
	t.Helper()

	var payload struct {
		Message string `json:"message"`
	}
	AssertJSONResponse(t, resp, &payload)
	assert.Equal(t, expected, payload.Message)
}
