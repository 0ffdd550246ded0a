package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sergds/addrfeed/internal/feed"
	"github.com/sergds/addrfeed/internal/resolver"
	"github.com/sergds/addrfeed/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	ipv4 map[string][]resolver.Record
}

func (s *staticResolver) Resolve(ctx context.Context, fqdn string, family resolver.Family) ([]resolver.Record, error) {
	if family == resolver.FamilyIPv4 {
		return s.ipv4[fqdn], nil
	}
	return nil, nil
}

func newTestServer(t *testing.T) (*AddrFeedServer, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Secret = "hunter2"
	st := store.NewMemStore()
	rs := &staticResolver{ipv4: map[string][]resolver.Record{
		"example.com": {{Addr: "93.184.216.34", TTL: 300}},
	}}
	cl := clock.NewMock()
	cl.Set(time.Unix(1700000000, 0))
	svc := feed.NewService(st, rs, cl)
	svc.ReplaceConfig(map[string]interface{}{"A": map[string]interface{}{"fqdn": "example.com"}})
	s := NewAddrFeedServer(cfg, st, svc)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestFeedTree(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/feed")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, map[string]interface{}{
		"A": map[string]interface{}{"ipv4": []interface{}{"93.184.216.34"}},
	}, doc)
}

func TestFeedFlatIPv4(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/feed?format=ipv4&span=86400")
	require.NoError(t, err)
	defer resp.Body.Close()

	body := new(strings.Builder)
	_, err = io.Copy(body, resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "93.184.216.34\n", body.String())
}

func TestFeedFlatIPv6Empty(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/feed?format=ipv6")
	require.NoError(t, err)
	defer resp.Body.Close()

	body := new(strings.Builder)
	_, err = io.Copy(body, resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "", body.String())
}

func TestConfigReplaceNeedsKey(t *testing.T) {
	_, ts := newTestServer(t)
	doc := `{"config":{"B":{"fqdn":"other.example.com"}}}`

	resp, err := http.Post(ts.URL+"/config/default", "application/json", strings.NewReader(doc))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestConfigReplaceAndFetch(t *testing.T) {
	_, ts := newTestServer(t)
	doc := `{"config":{"B":{"fqdn":"other.example.com"}}}`

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/config/default", strings.NewReader(doc))
	req.Header.Set("X-Addrfeed-Key", "hunter2")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := http.Get(ts.URL + "/config/default")
	require.NoError(t, err)
	defer got.Body.Close()
	var echoed map[string]interface{}
	require.NoError(t, json.NewDecoder(got.Body).Decode(&echoed))
	assert.Equal(t, map[string]interface{}{
		"config": map[string]interface{}{"B": map[string]interface{}{"fqdn": "other.example.com"}},
	}, echoed)
}

func TestConfigReplaceRejectsGarbage(t *testing.T) {
	_, ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/config/default", strings.NewReader("{not json"))
	req.Header.Set("X-Addrfeed-Key", "hunter2")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// nothing was stored
	got, err := http.Get(ts.URL + "/config/default")
	require.NoError(t, err)
	got.Body.Close()
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
}

func TestConfigMissingIs404(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/config/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
