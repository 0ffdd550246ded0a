package feed

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/sergds/addrfeed/internal/ledger"
	"github.com/sergds/addrfeed/internal/resolver"
	"github.com/sergds/addrfeed/internal/store"
)

// Service ties a pristine configuration template to the resolution engine.
// One Service per hosted template; the ledger cache inside the merger lives as
// long as the Service does.
type Service struct {
	mu       sync.RWMutex
	template interface{}

	merger *Merger
	clock  clock.Clock
}

// Result of one resolution pass: the rewritten tree plus the flat feed its
// request leaves accumulated. Each pass gets its own; concurrent passes never
// see each other's lists.
type Result struct {
	Document interface{}
	IPv4     []string
	IPv6     []string
}

func NewService(st store.Store, rs resolver.Resolver, cl clock.Clock) *Service {
	return &Service{
		template: map[string]interface{}{},
		merger:   NewMerger(st, rs),
		clock:    cl,
	}
}

// ReplaceConfig swaps the template wholesale. The ledger cache is deliberately
// left alone: addresses already learned stay learned.
func (s *Service) ReplaceConfig(template interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = deepCopy(template)
}

// Config returns a copy of the current template.
func (s *Service) Config() interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.template)
}

// Process runs one resolution pass: snapshot the template, walk it into a
// fresh buffer. "now" is read exactly once so every freshness decision inside
// the pass agrees on the time. A failed pass exposes nothing, not even the
// leaves that had already resolved.
func (s *Service) Process(ctx context.Context, span int64) (*Result, error) {
	if span <= 0 {
		span = ledger.DefaultSpan
	}
	now := s.clock.Now().Unix()

	s.mu.RLock()
	template := deepCopy(s.template)
	s.mu.RUnlock()

	buffer := NewBuffer()
	w := &Walker{merger: s.merger, buffer: buffer}
	doc, err := w.Walk(ctx, template, span, now)
	if err != nil {
		return nil, err
	}
	return &Result{Document: doc, IPv4: buffer.IPv4(), IPv6: buffer.IPv6()}, nil
}
