package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"moviecatalog/httpserver"
	"moviecatalog/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.MaxPageSize = 100
	cfg.MinReleaseYear = 1888
	return cfg
}

func newServer() *httpserver.Server {
	return httpserver.Default(testConfig())
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder) httpserver.SuccessResponse {
	t.Helper()
	var resp httpserver.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpserver.ErrorResponse {
	t.Helper()
	var resp httpserver.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func dataAsMap(t *testing.T, resp httpserver.SuccessResponse) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data should be a JSON object")
	return data
}
