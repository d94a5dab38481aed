// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callLogLevel(t *testing.T, level *slog.LevelVar, method string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/admin/loglevel", &buf)

	router := mux.NewRouter()
	New(level).Mount(router, "/admin/loglevel")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		body      any
		wantCode  int
		wantLevel string
		wantErr   string
	}{
		{
			name:      "get current level",
			method:    http.MethodGet,
			wantCode:  http.StatusOK,
			wantLevel: "INFO",
		},
		{
			name:      "set level to debug",
			method:    http.MethodPost,
			body:      Request{Level: "debug"},
			wantCode:  http.StatusOK,
			wantLevel: "DEBUG",
		},
		{
			name:      "set level to trace",
			method:    http.MethodPost,
			body:      Request{Level: "trace"},
			wantCode:  http.StatusOK,
			wantLevel: "DEBUG-4",
		},
		{
			name:     "reject unknown level",
			method:   http.MethodPost,
			body:     Request{Level: "shouting"},
			wantCode: http.StatusBadRequest,
			wantErr:  "Invalid verbosity level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var level slog.LevelVar
			level.Set(slog.LevelInfo)

			rec := callLogLevel(t, &level, tt.method, tt.body)
			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, strings.TrimRight(rec.Body.String(), "\n"))
				return
			}
			var res Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
			assert.Equal(t, tt.wantLevel, res.CurrentLevel)
		})
	}
}
