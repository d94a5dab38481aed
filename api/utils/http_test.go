// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no error", nil, http.StatusOK},
		{"bad request", BadRequest(errors.New("body")), http.StatusBadRequest},
		{"forbidden", Forbidden(errors.New("limit")), http.StatusForbidden},
		{"not found", NotFound(errors.New("phase")), http.StatusNotFound},
		{"custom status", HTTPError(errors.New("teapot"), http.StatusTeapot), http.StatusTeapot},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Amount string `json:"amount"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"amount":"1"}`), &v))
	assert.Equal(t, "1", v.Amount)

	assert.Error(t, ParseJSON(strings.NewReader(`{"amount":"1","bogus":true}`), &v))
}
