package store

import (
	"path/filepath"
	"testing"

	"github.com/sergds/addrfeed/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "addrfeed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltEntryRoundtrip(t *testing.T) {
	s := openTestBolt(t)

	entry := ledger.NewEntry()
	entry.IPv4["93.184.216.34"] = 1700000300
	entry.IPv6["2606:2800:220:1:248:1893:25c8:1946"] = 1700000200
	require.NoError(t, s.PutEntry("example.com", entry))

	got, err := s.GetEntry("example.com")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestBoltEntryMissIsEmptyPair(t *testing.T) {
	s := openTestBolt(t)
	got, err := s.GetEntry("never.seen.example")
	require.NoError(t, err)
	assert.Empty(t, got.IPv4)
	assert.Empty(t, got.IPv6)
}

func TestBoltConfigRoundtrip(t *testing.T) {
	s := openTestBolt(t)

	doc := map[string]interface{}{
		"config": map[string]interface{}{
			"A": map[string]interface{}{"fqdn": "example.com"},
		},
	}
	echoed, err := s.PutConfig("default", doc)
	require.NoError(t, err)
	assert.Equal(t, doc, echoed)

	got, err := s.GetConfig("default")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestBoltConfigMissing(t *testing.T) {
	s := openTestBolt(t)
	_, err := s.GetConfig("nope")
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestBoltConfigShapeRejected(t *testing.T) {
	s := openTestBolt(t)
	_, err := s.PutConfig("default", map[string]interface{}{"config": "not an object"})
	assert.ErrorIs(t, err, ErrBadConfig)

	// nothing got stored by the failed put
	_, err = s.GetConfig("default")
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestMemStoreBehavesLikeBolt(t *testing.T) {
	s := NewMemStore()

	entry := ledger.NewEntry()
	entry.IPv4["10.0.0.1"] = 42
	require.NoError(t, s.PutEntry("host.example", entry))
	got, err := s.GetEntry("host.example")
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	_, err = s.GetConfig("nope")
	assert.ErrorIs(t, err, ErrNoConfig)
}
