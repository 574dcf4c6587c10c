package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseEndpoint("")
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, u.String())

	u, err = parseEndpoint("example.com:9000/api/companies#frag")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "/api/companies", u.Path)
	assert.Empty(t, u.Fragment)

	_, err = parseEndpoint("http://")
	assert.Error(t, err)
}

func TestHTTP_FetchDecodesCollection(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		if r.URL.Path != "/companies" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":1,"nome":"Acme Ltda","setor":"Varejo","localizacao":"São Paulo","ramo":"moda"},{"id":2,"nome":"Beta SA"}]`)
	}))
	t.Cleanup(server.Close)

	src, err := NewHTTP(server.URL+"/companies", HTTPOptions{UserAgent: "registro/test"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	companies, err := src.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme Ltda", companies[0].Name)
	assert.Equal(t, "moda", companies[0].Attributes["ramo"])
	assert.Equal(t, "registro/test", gotUserAgent)
	assert.Equal(t, "application/json", gotAccept)
	assert.NoError(t, src.Close())
}

func TestHTTP_FetchNon2xxReturnsStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	src, err := NewHTTP(server.URL+"/companies", HTTPOptions{})
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "error = %v, want *StatusError", err)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTP_FetchMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"not a list"}`)
	}))
	t.Cleanup(server.Close)

	src, err := NewHTTP(server.URL, HTTPOptions{})
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestHTTP_FetchNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	src, err := NewHTTP(url, HTTPOptions{Timeout: time.Second})
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")
}
