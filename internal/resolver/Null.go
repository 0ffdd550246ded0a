package resolver

import "context"

// Null resolver (no-op). Usable as a skeleton for new resolver backends, or to
// run a server that only replays what's already in the store.
type NullResolver struct {
}

func newNullResolver() *NullResolver {
	return &NullResolver{}
}

func (n *NullResolver) Resolve(ctx context.Context, fqdn string, family Family) ([]Record, error) {
	return []Record{}, nil
}
