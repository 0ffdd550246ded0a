package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sergds/addrfeed/internal/ledger"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketEntries = []byte("entries")
	bucketConfigs = []byte("configs")
)

type BoltStore struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketEntries); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketConfigs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) GetEntry(fqdn string) (*ledger.Entry, error) {
	entry := ledger.NewEntry()
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketEntries).Get([]byte(fqdn))
		if raw == nil {
			return nil // never seen, empty pair
		}
		return json.Unmarshal(raw, entry)
	})
	if err != nil {
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

func (s *BoltStore) PutEntry(fqdn string, entry *ledger.Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).Put([]byte(fqdn), raw)
	})
}

func (s *BoltStore) GetConfig(id string) (map[string]interface{}, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketConfigs).Get([]byte(id))
		if v == nil {
			return ErrNoConfig
		}
		raw = append(raw, v...) // copy out of the tx
		return nil
	})
	if err != nil {
		return nil, err
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

func (s *BoltStore) PutConfig(id string, doc map[string]interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := validateConfigDoc(raw); err != nil {
		return nil, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketConfigs).Put([]byte(id), raw)
	})
	if err != nil {
		return nil, err
	}
	return s.GetConfig(id)
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
