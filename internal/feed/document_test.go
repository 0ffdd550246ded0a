package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFQDN(t *testing.T) {
	cases := []struct {
		name string
		node map[string]interface{}
		want bool
	}{
		{"plain domain", map[string]interface{}{"fqdn": "example.com"}, true},
		{"subdomains and underscores", map[string]interface{}{"fqdn": "_dmarc.Mail-1.example.com"}, true},
		{"single label", map[string]interface{}{"fqdn": "localhost"}, false},
		{"not a string", map[string]interface{}{"fqdn": 42}, false},
		{"extra keys", map[string]interface{}{"fqdn": "example.com", "ttl": 60}, false},
		{"wrong key", map[string]interface{}{"note": "static"}, false},
		{"illegal chars", map[string]interface{}{"fqdn": "exa mple.com"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := requestFQDN(tc.node)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestDeepCopyIsIndependent(t *testing.T) {
	orig := map[string]interface{}{
		"list": []interface{}{map[string]interface{}{"fqdn": "example.com"}, "keep"},
		"n":    1.5,
	}
	cp := deepCopy(orig).(map[string]interface{})
	cp["list"].([]interface{})[1] = "changed"
	cp["n"] = 2.0

	assert.Equal(t, "keep", orig["list"].([]interface{})[1])
	assert.Equal(t, 1.5, orig["n"])
}

func TestWalkWithoutRequestsIsIdentity(t *testing.T) {
	rs := newFakeResolver()
	svc := NewService(newCountingStore(), rs, testClock())
	template := map[string]interface{}{
		"static": []interface{}{"a", true, nil, 3.0},
		"nested": map[string]interface{}{"deep": map[string]interface{}{"note": "hi"}},
	}
	svc.ReplaceConfig(template)

	res, err := svc.Process(context.Background(), 86400)
	require.NoError(t, err)
	assert.Equal(t, template, res.Document)
}

func TestWalkRewritesNestedAndArrayLeaves(t *testing.T) {
	rs := newFakeResolver() // resolves nothing
	svc := NewService(newCountingStore(), rs, testClock())
	svc.ReplaceConfig(map[string]interface{}{
		"group": []interface{}{
			map[string]interface{}{"fqdn": "one.example.com"},
			"untouched",
		},
	})

	res, err := svc.Process(context.Background(), 86400)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"group": []interface{}{map[string]interface{}{}, "untouched"},
	}, res.Document)
}
