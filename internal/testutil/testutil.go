package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewRequest creates a new HTTP request for testing. A non-nil body is
// JSON-encoded; a string body is sent as-is.
func NewRequest(method, path string, body any) *http.Request {
	switch b := body.(type) {
	case nil:
		return httptest.NewRequest(method, path, nil)
	case string:
		r := httptest.NewRequest(method, path, bytes.NewBufferString(b))
		r.Header.Set("Content-Type", "application/json")
		return r
	default:
		bodyBytes, _ := json.Marshal(b)
		r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
		return r
	}
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Raw    string
	Body   map[string]any
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Raw:    string(bodyBytes),
		Body:   bodyMap,
	}
}

// Data returns the "data" object of a success envelope, or nil.
func (r RecordResponse) Data() map[string]any {
	d, _ := r.Body["data"].(map[string]any)
	return d
}

// ErrorCode returns error.code of an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}
