// Package store persists per-FQDN address ledgers and configuration documents.
package store

import (
	"errors"

	"github.com/antonholmquist/jason"
	"github.com/sergds/addrfeed/internal/ledger"
)

var (
	ErrNoConfig  = errors.New("no such config document")
	ErrBadConfig = errors.New("config document has no nested config object")
)

type Store interface {
	// GetEntry returns the persisted ledger pair for fqdn, or a fresh empty
	// pair when the key was never written. Read failures are errors; callers
	// decide whether to degrade.
	GetEntry(fqdn string) (*ledger.Entry, error)
	// PutEntry persists the whole ledger pair for fqdn.
	PutEntry(fqdn string, entry *ledger.Entry) error
	// GetConfig returns the stored configuration document for id. Missing or
	// shapeless documents are errors, never synthesized.
	GetConfig(id string) (map[string]interface{}, error)
	// PutConfig validates, stores and echoes back the document.
	PutConfig(id string, doc map[string]interface{}) (map[string]interface{}, error)
	Close() error
}

// A stored configuration document must carry the actual template under a
// nested "config" object, so there's room for metadata next to it.
func validateConfigDoc(raw []byte) error {
	obj, err := jason.NewObjectFromBytes(raw)
	if err != nil {
		return ErrBadConfig
	}
	if _, err := obj.GetObject("config"); err != nil {
		return ErrBadConfig
	}
	return nil
}
