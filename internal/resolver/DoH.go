package resolver

import (
	"context"
	"time"

	"github.com/likexian/doh"
	"github.com/likexian/doh/dns"
)

// rrtypes as they come back in DoH JSON answers. 1 -- A, 28 -- AAAA.
const (
	rrtypeA    = 1
	rrtypeAAAA = 28
)

// DoHResolver resolves over DNS-over-HTTPS (Cloudflare), so answers come with
// real TTLs and we don't depend on whatever the host's stub resolver does.
type DoHResolver struct{}

func newDoHResolver() *DoHResolver {
	return &DoHResolver{}
}

func (d *DoHResolver) Resolve(ctx context.Context, fqdn string, family Family) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	c := doh.Use(doh.CloudflareProvider)
	qtype := dns.TypeA
	want := rrtypeA
	if family == FamilyIPv6 {
		qtype = dns.TypeAAAA
		want = rrtypeAAAA
	}
	resp, err := c.Query(ctx, dns.Domain(fqdn), qtype)
	if err != nil {
		return nil, err
	}
	var recs []Record
	for _, a := range resp.Answer {
		if a.Type != want {
			continue
		}
		recs = append(recs, Record{Addr: a.Data, TTL: int64(a.TTL)})
	}
	return recs, nil
}
