// Package ledger keeps, per FQDN and address family, every address we have
// ever seen together with the epoch second until which it was last considered
// valid. Nothing is ever evicted -- stale addresses just stop being selected.
package ledger

import "sort"

const (
	// DefaultTTL is used when a resolver hands us a zero or unusable TTL.
	DefaultTTL = 60
	// DefaultSpan is the trailing freshness window when a request doesn't carry one.
	DefaultSpan = 86400
)

// AddressLedger maps address -> validUntil (absolute epoch seconds).
type AddressLedger map[string]int64

// UpdateWorthy decides whether observing addr as valid until validUntil should
// trigger a persistence write. True (and the ledger gets the new validUntil)
// when the address was never seen, or when its stored validUntil has fallen
// behind the trailing span window. False leaves the ledger untouched.
//
// This is purely a write trigger, not a check on the observed value: an
// address that is already inside the window keeps its old validUntil even if
// the new observation would extend it.
func (l AddressLedger) UpdateWorthy(addr string, validUntil int64, span int64, now int64) bool {
	prev, seen := l[addr]
	if seen && prev >= now-span {
		return false
	}
	l[addr] = validUntil
	return true
}

// SelectValid returns every address with validUntil strictly inside the
// trailing window (validUntil > now-span), sorted so the same ledger always
// produces the same list.
func (l AddressLedger) SelectValid(span int64, now int64) []string {
	var addrs []string
	for addr, validUntil := range l {
		if validUntil > now-span {
			addrs = append(addrs, addr)
		}
	}
	sort.Strings(addrs)
	return addrs
}

// Clone returns an independent copy of the ledger.
func (l AddressLedger) Clone() AddressLedger {
	out := make(AddressLedger, len(l))
	for addr, validUntil := range l {
		out[addr] = validUntil
	}
	return out
}

// Entry is the ledger pair for one FQDN, as cached in-process and persisted.
type Entry struct {
	IPv4 AddressLedger `json:"ipv4"`
	IPv6 AddressLedger `json:"ipv6"`
}

func NewEntry() *Entry {
	return &Entry{IPv4: make(AddressLedger), IPv6: make(AddressLedger)}
}

func (e *Entry) Clone() *Entry {
	return &Entry{IPv4: e.IPv4.Clone(), IPv6: e.IPv6.Clone()}
}
