package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/sergds/addrfeed/internal/store"
)

// parseSpan turns the span query param into seconds. Absent, junk or zero all
// mean "use the default window".
func parseSpan(raw string) int64 {
	if raw == "" {
		return 0
	}
	span, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || span <= 0 {
		return 0
	}
	return span
}

func (s *AddrFeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	span := parseSpan(r.URL.Query().Get("span"))
	res, err := s.svc.Process(r.Context(), span)
	if err != nil {
		log.Println("Resolution pass failed:", err.Error())
		http.Error(w, "resolution failed", http.StatusInternalServerError)
		return
	}
	switch r.URL.Query().Get("format") {
	case "ipv4":
		writePlain(w, res.IPv4)
	case "ipv6":
		writePlain(w, res.IPv6)
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res.Document)
	}
}

// One address per line, the way allow-list consumers want it.
func writePlain(w http.ResponseWriter, addrs []string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, a := range addrs {
		io.WriteString(w, a+"\n")
	}
}

func (s *AddrFeedServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/config/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		doc, err := s.store.GetConfig(id)
		if err != nil {
			if errors.Is(err, store.ErrNoConfig) {
				http.NotFound(w, r)
			} else {
				log.Println("Config fetch failed:", err.Error())
				http.Error(w, "config fetch failed", http.StatusInternalServerError)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)

	case http.MethodPost:
		key := r.Header.Get("X-Addrfeed-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.Secret)) != 1 {
			http.Error(w, "bad key", http.StatusForbidden)
			return
		}
		var doc map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "malformed body", http.StatusBadRequest)
			return
		}
		stored, err := s.store.PutConfig(id, doc)
		if err != nil {
			if errors.Is(err, store.ErrBadConfig) {
				http.Error(w, "document needs a nested config object", http.StatusBadRequest)
			} else {
				log.Println("Config store failed:", err.Error())
				http.Error(w, "config store failed", http.StatusInternalServerError)
			}
			return
		}
		if id == s.cfg.ConfigID {
			s.svc.ReplaceConfig(stored["config"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stored)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
