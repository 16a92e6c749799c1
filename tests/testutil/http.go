package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase represents a request against an engine and its expected outcome.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Headers        map[string]string
	ExpectedStatus int
	ExpectedCode   string
	Validate       func(t *testing.T, body map[string]any)
}

// Serve performs a request against engine and returns the recorder.
func Serve(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// RunHTTPTestCases runs each case as a subtest against engine.
func RunHTTPTestCases(t *testing.T, engine *gin.Engine, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			w := Serve(engine, tc.Method, tc.Path, tc.Headers)
			if tc.ExpectedStatus != 0 {
				assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code: %s", w.Body.String())
			}
			body := DecodeJSON(t, w.Body.Bytes())
			if tc.ExpectedCode != "" {
				errMap, ok := body["error"].(map[string]any)
				require.True(t, ok, "Expected error object in response")
				assert.Equal(t, tc.ExpectedCode, errMap["code"], "Unexpected error code")
			}
			if tc.Validate != nil {
				tc.Validate(t, body)
			}
		})
	}
}

// DecodeJSON parses a JSON object.
func DecodeJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var result map[string]any
	err := json.Unmarshal(data, &result)
	require.NoError(t, err, "Failed to parse JSON response")
	return result
}

// JSONResponseAs parses the response body into T.
func JSONResponseAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err, "Failed to parse JSON response")
	return result
}

// AssertSuccessResponse asserts the response is a successful API response.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	resp := DecodeJSON(t, w.Body.Bytes())
	assert.Equal(t, true, resp["success"], "Expected success to be true")
	assert.Nil(t, resp["error"], "Expected no error")
	return resp
}

// AssertErrorResponse asserts the response is an error API response.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	resp := DecodeJSON(t, w.Body.Bytes())
	assert.Equal(t, false, resp["success"], "Expected success to be false")

	errMap, ok := resp["error"].(map[string]any)
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, expectedCode, errMap["code"], "Unexpected error code")
}
