package scpsl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerInfoSendsExpectedParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "acc1", q.Get("id"))
		assert.Equal(t, "key1", q.Get("key"))
		for _, p := range []string{"lo", "players", "list", "info", "version", "flags"} {
			assert.Equal(t, "true", q.Get(p), p)
		}

		_, _ = w.Write([]byte(`{"Success":true,"Servers":[{"ID":12345,"Port":"7777","Online":true}]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	resp, err := client.ServerInfo(context.Background(), "key1", "acc1")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Servers, 1)

	srv, ok := DecodeServer(resp.Servers[0])
	require.True(t, ok)
	assert.Equal(t, "12345", srv.ID.String())
	assert.Equal(t, "7777", srv.Port.String())
	assert.True(t, srv.Online)
}

func TestServerInfoNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	_, err := client.ServerInfo(context.Background(), "key1", "acc1")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestServerInfoMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	_, err := client.ServerInfo(context.Background(), "key1", "acc1")

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestServerInfoTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"Success":true}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, 50*time.Millisecond)
	_, err := client.ServerInfo(context.Background(), "key1", "acc1")
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || isTimeout(err))
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func TestDecodeServerSkipsNonObjects(t *testing.T) {
	for _, raw := range []string{`"surprise"`, `42`, `[1,2]`, `null`} {
		_, ok := DecodeServer(json.RawMessage(raw))
		assert.False(t, ok, raw)
	}
}

func TestValueToleratesStringAndNumber(t *testing.T) {
	var srv Server
	require.NoError(t, json.Unmarshal([]byte(`{"ID":"abc","Port":7777}`), &srv))
	assert.Equal(t, "abc", srv.ID.String())
	assert.Equal(t, "7777", srv.Port.String())

	require.NoError(t, json.Unmarshal([]byte(`{"ID":null}`), &srv))
	assert.Equal(t, "", srv.ID.String())
}
