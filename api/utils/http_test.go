// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/api/utils"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", utils.BadRequest(errors.New("bad")), http.StatusBadRequest, "bad\n"},
		{"forbidden", utils.Forbidden(errors.New("no")), http.StatusForbidden, "no\n"},
		{"not found", utils.NotFound(errors.New("none")), http.StatusNotFound, "none\n"},
		{"no cause", utils.HTTPError(nil, http.StatusTeapot), http.StatusTeapot, ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := utils.WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, utils.ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, utils.ParseJSON(strings.NewReader(`{"b":1}`), &v))
}

func TestParseParams(t *testing.T) {
	n, err := utils.ParseUint("limit", "", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), n)

	n, err = utils.ParseUint("limit", "25", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), n)

	_, err = utils.ParseUint("limit", "x", 10)
	assert.Error(t, err)

	_, err = utils.ParseAddress("address", "0x01")
	assert.Error(t, err)
}
