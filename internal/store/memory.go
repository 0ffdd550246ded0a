package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sergds/addrfeed/internal/ledger"
)

// MemStore keeps everything in the process. Handy for tests and for running a
// throwaway server without a db file. Values are kept JSON-encoded so it
// behaves byte-for-byte like the bolt store.
type MemStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	configs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string][]byte), configs: make(map[string][]byte)}
}

func (s *MemStore) GetEntry(fqdn string) (*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := ledger.NewEntry()
	raw, ok := s.entries[fqdn]
	if !ok {
		return entry, nil
	}
	if err := json.Unmarshal(raw, entry); err != nil {
		return nil, err
	}
	if entry.IPv4 == nil {
		entry.IPv4 = make(ledger.AddressLedger)
	}
	if entry.IPv6 == nil {
		entry.IPv6 = make(ledger.AddressLedger)
	}
	return entry, nil
}

func (s *MemStore) PutEntry(fqdn string, entry *ledger.Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[fqdn] = raw
	return nil
}

func (s *MemStore) GetConfig(id string) (map[string]interface{}, error) {
	s.mu.Lock()
	raw, ok := s.configs[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoConfig
	}
	if err := validateConfigDoc(raw); err != nil {
		return nil, fmt.Errorf("config %s: %w", id, err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *MemStore) PutConfig(id string, doc map[string]interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := validateConfigDoc(raw); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.configs[id] = raw
	s.mu.Unlock()
	return s.GetConfig(id)
}

func (s *MemStore) Close() error {
	return nil
}
