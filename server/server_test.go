package server

import (
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := OpenStore("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(New(nil, store, log.New(io.Discard, "", 0)))
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T, ts *httptest.Server) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := ts.Client()
	client.Jar = jar
	return client
}

func TestIndexForm(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<textarea")
	assert.NotContains(t, string(body), `id="preview"`)
}

func TestConvertAndRaw(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t, ts)

	resp, err := client.PostForm(ts.URL+"/", url.Values{"md": {"# Hi"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// The preview tab embeds the render as-is; the raw tab shows it escaped.
	assert.Contains(t, string(body), "<h1>Hi</h1>")
	assert.Contains(t, string(body), "&lt;h1&gt;Hi&lt;/h1&gt;")

	resp, err = client.Get(ts.URL + "/raw")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<h1>Hi</h1>")
	assert.Contains(t, string(raw), "<!doctype html>")
}

func TestRawWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/raw")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionsAreIsolated(t *testing.T) {
	ts := newTestServer(t)

	first := newClient(t, ts)
	resp, err := first.PostForm(ts.URL+"/", url.Values{"md": {"# Mine"}})
	require.NoError(t, err)
	resp.Body.Close()

	// A different session sees no render, not the first session's document.
	second := newClient(t, ts)
	resp, err = second.Get(ts.URL + "/raw")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownPath(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
