// Package feed implements the resolution engine: a span-windowed freshness
// cache over per-FQDN address ledgers, and a concurrent walk that expands
// {"fqdn": ...} leaves of a configuration tree into resolved address sets.
package feed

import "regexp"

// Permissive on purpose: labels may carry underscores and hyphens, case
// doesn't matter. One or more "label." groups plus a final label.
var fqdnPattern = regexp.MustCompile(`^(?i)([0-9a-z_-]+\.)+[0-9a-z_-]+$`)

type nodeKind int

const (
	kindScalar nodeKind = iota
	kindObject
	kindArray
	kindRequest
)

// requestFQDN reports whether obj is a request leaf: exactly one key, "fqdn",
// holding a string that looks like a domain name. Anything else passes
// through the walk untouched.
func requestFQDN(obj map[string]interface{}) (string, bool) {
	if len(obj) != 1 {
		return "", false
	}
	s, ok := obj["fqdn"].(string)
	if !ok || !fqdnPattern.MatchString(s) {
		return "", false
	}
	return s, true
}

func classify(node interface{}) nodeKind {
	switch v := node.(type) {
	case map[string]interface{}:
		if _, ok := requestFQDN(v); ok {
			return kindRequest
		}
		return kindObject
	case []interface{}:
		return kindArray
	default:
		return kindScalar
	}
}

// deepCopy clones the containers of a decoded JSON tree. Scalars are immutable
// in Go, sharing them is fine.
func deepCopy(node interface{}) interface{} {
	switch v := node.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = deepCopy(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
