package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("://bad")
	assert.Error(t, err)
}

func TestDo_SendsBearerQueryAndBody(t *testing.T) {
	var gotAuth, gotQuery, gotPath, gotRequestID string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/dashboard/v1/", WithTokenSource(staticToken("tkn")))
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.Do(context.Background(), http.MethodPost, "/things", url.Values{"page": {"2"}}, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)

	assert.True(t, out.OK)
	assert.Equal(t, "Bearer tkn", gotAuth)
	assert.Equal(t, "page=2", gotQuery)
	assert.Equal(t, "/dashboard/v1/things", gotPath)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, map[string]string{"a": "b"}, gotBody)
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenSource(staticToken("")))
	require.NoError(t, err)

	require.NoError(t, c.Do(context.Background(), http.MethodPut, "/x", nil, nil, nil))
	assert.False(t, hasAuth)
}

func TestDo_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credential"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "Invalid credential", se.Message)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestDo_StatusErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.Contains(t, err.Error(), "500")
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c, err := New(addr)
	require.NoError(t, err)

	err = c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestDo_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	var out map[string]any
	err = c.Do(context.Background(), http.MethodGet, "/x", nil, nil, &out)
	assert.ErrorContains(t, err, "decode response")
}

func TestDo_Metrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c, err := New(srv.URL, WithMetrics(reg))
	require.NoError(t, err)

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "dashboard_api_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), total)
}
