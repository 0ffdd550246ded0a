package resolver

import "context"

type Family int

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

func (f Family) String() string {
	if f == FamilyIPv6 {
		return "ipv6"
	}
	return "ipv4"
}

// Record is one resolved address with the TTL the upstream attributed to it.
type Record struct {
	Addr string
	TTL  int64
}

// Resolver turns an FQDN into address records for one family. Implementations
// are expected to bound their own lookups; a failed or empty lookup for one
// family never concerns the other.
type Resolver interface {
	Resolve(ctx context.Context, fqdn string, family Family) ([]Record, error)
}
