package feed

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Buffer accumulates the flattened address feed over one resolution pass. A
// leaf's ipv4/ipv6 contribution always lands as one unit. One Buffer belongs
// to exactly one pass.
type Buffer struct {
	mu   sync.Mutex
	ipv4 []string
	ipv6 []string
}

func NewBuffer() *Buffer {
	return &Buffer{ipv4: []string{}, ipv6: []string{}}
}

func (b *Buffer) Append(a *Addresses) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ipv4 = append(b.ipv4, a.IPv4...)
	b.ipv6 = append(b.ipv6, a.IPv6...)
}

func (b *Buffer) IPv4() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.ipv4...)
}

func (b *Buffer) IPv6() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.ipv6...)
}

// Walker rewrites a configuration tree: request leaves become resolved
// address sets, everything else is rebuilt as-is. Sibling keys (and array
// slots) at each level resolve concurrently; a level returns only once every
// sibling has finished.
type Walker struct {
	merger *Merger
	buffer *Buffer
}

func (w *Walker) Walk(ctx context.Context, node interface{}, span int64, now int64) (interface{}, error) {
	switch classify(node) {
	case kindRequest:
		fqdn, _ := requestFQDN(node.(map[string]interface{}))
		addrs, err := w.merger.Resolve(ctx, fqdn, span, now)
		if err != nil {
			return nil, err
		}
		w.buffer.Append(addrs)
		return addrs.asNode(), nil

	case kindObject:
		obj := node.(map[string]interface{})
		out := make(map[string]interface{}, len(obj))
		var mu sync.Mutex
		var wg sync.WaitGroup
		var errs *multierror.Error
		for key, val := range obj {
			wg.Add(1)
			go func(key string, val interface{}) {
				defer wg.Done()
				res, err := w.Walk(ctx, val, span, now)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = multierror.Append(errs, err)
					return
				}
				out[key] = res
			}(key, val)
		}
		wg.Wait()
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
		return out, nil

	case kindArray:
		arr := node.([]interface{})
		out := make([]interface{}, len(arr))
		var mu sync.Mutex
		var wg sync.WaitGroup
		var errs *multierror.Error
		for i, val := range arr {
			wg.Add(1)
			go func(i int, val interface{}) {
				defer wg.Done()
				res, err := w.Walk(ctx, val, span, now)
				if err != nil {
					mu.Lock()
					errs = multierror.Append(errs, err)
					mu.Unlock()
					return
				}
				out[i] = res
			}(i, val)
		}
		wg.Wait()
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
		return out, nil

	default:
		return node, nil
	}
}
