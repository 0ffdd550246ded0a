package resolver

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

// PlainResolver asks a classic UDP nameserver directly. Useful when the feed
// should see the view of a specific resolver (e.g. an internal one) instead of
// public DoH.
type PlainResolver struct {
	server string // host:port
	client *dns.Client
}

func newPlainResolver(server string) *PlainResolver {
	if server == "" {
		server = "127.0.0.1:53"
	}
	return &PlainResolver{server: server, client: &dns.Client{Timeout: 10 * time.Second}}
}

func (p *PlainResolver) Resolve(ctx context.Context, fqdn string, family Family) ([]Record, error) {
	qtype := dns.TypeA
	if family == FamilyIPv6 {
		qtype = dns.TypeAAAA
	}
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(fqdn), qtype)
	in, _, err := p.client.ExchangeContext(ctx, m, p.server)
	if err != nil {
		return nil, err
	}
	var recs []Record
	for _, rr := range in.Answer {
		switch a := rr.(type) {
		case *dns.A:
			recs = append(recs, Record{Addr: a.A.String(), TTL: int64(a.Hdr.Ttl)})
		case *dns.AAAA:
			recs = append(recs, Record{Addr: a.AAAA.String(), TTL: int64(a.Hdr.Ttl)})
		}
	}
	return recs, nil
}
