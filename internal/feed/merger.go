package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/sergds/addrfeed/internal/ledger"
	"github.com/sergds/addrfeed/internal/resolver"
	"github.com/sergds/addrfeed/internal/store"
)

// Addresses is what a request leaf becomes: per family, the addresses valid
// inside the span window. A family with nothing valid stays absent from the
// rewritten tree, not present-but-empty.
type Addresses struct {
	IPv4 []string
	IPv6 []string
}

func (a *Addresses) asNode() interface{} {
	node := make(map[string]interface{})
	if len(a.IPv4) > 0 {
		node["ipv4"] = a.IPv4
	}
	if len(a.IPv6) > 0 {
		node["ipv6"] = a.IPv6
	}
	return node
}

type fqdnState struct {
	mu    sync.Mutex
	entry *ledger.Entry // nil until first resolution fetches it
}

// Merger owns the process-wide ledger cache and folds fresh resolutions into
// it. One Merger lives as long as the process; its cache only grows.
type Merger struct {
	store    store.Store
	resolver resolver.Resolver

	mu    sync.Mutex
	fqdns map[string]*fqdnState
}

func NewMerger(st store.Store, rs resolver.Resolver) *Merger {
	return &Merger{store: st, resolver: rs, fqdns: make(map[string]*fqdnState)}
}

func (m *Merger) state(fqdn string) *fqdnState {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.fqdns[fqdn]
	if !ok {
		st = &fqdnState{}
		m.fqdns[fqdn] = st
	}
	return st
}

// Resolve runs one full merge for fqdn: lazy store fetch (once per process),
// both families looked up concurrently, ledgers updated, a store write only
// when something update-worthy appeared, and finally the span-valid selection.
// Per-FQDN locking keeps the fetch-once invariant and makes the write-back
// decision atomic even with many requests in flight.
func (m *Merger) Resolve(ctx context.Context, fqdn string, span int64, now int64) (*Addresses, error) {
	st := m.state(fqdn)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.entry == nil {
		entry, err := m.store.GetEntry(fqdn)
		if err != nil || entry == nil {
			entry = ledger.NewEntry() // read failed, treat as first time seen
		}
		st.entry = entry
	}

	// Families are independent: either may fail or come back empty without
	// affecting the other. A failure is just zero records.
	var records [2][]resolver.Record
	var wg sync.WaitGroup
	for i, family := range []resolver.Family{resolver.FamilyIPv4, resolver.FamilyIPv6} {
		wg.Add(1)
		go func(i int, family resolver.Family) {
			defer wg.Done()
			recs, err := m.resolver.Resolve(ctx, fqdn, family)
			if err != nil {
				return
			}
			records[i] = recs
		}(i, family)
	}
	wg.Wait()

	// Merge into a staged copy first: the cached ledger must never keep an
	// update the store never saw, or a later pass would consider the address
	// fresh and skip the write forever.
	staged := st.entry.Clone()
	updated := 0
	for i, l := range []ledger.AddressLedger{staged.IPv4, staged.IPv6} {
		for _, rec := range records[i] {
			ttl := rec.TTL
			if ttl <= 0 {
				ttl = ledger.DefaultTTL
			}
			if l.UpdateWorthy(rec.Addr, now+ttl, span, now) {
				updated++
			}
		}
	}

	// Skip the write entirely when nothing changed worth persisting. When it
	// did, the whole pair goes out, not a delta, and a failure here fails the
	// pass with the staged merge thrown away -- all or nothing per FQDN.
	if updated > 0 {
		if err := m.store.PutEntry(fqdn, staged); err != nil {
			return nil, fmt.Errorf("persisting ledger for %s: %w", fqdn, err)
		}
	}
	st.entry = staged

	return &Addresses{
		IPv4: staged.IPv4.SelectValid(span, now),
		IPv6: staged.IPv6.SelectValid(span, now),
	}, nil
}
