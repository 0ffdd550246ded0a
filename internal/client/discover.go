package client

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/sergds/addrfeed/internal/fastansi"
)

// DiscoverServer browses mDNS for a running addrfeed server and returns its
// base URL, or "" when nothing announced itself in time.
func DiscoverServer() string {
	sp := fastansi.NewStatusPrinter()
	sp.Status(1, "Resolving AddrFeed host(s) via mDNS...")
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		log.Fatalln(err.Error())
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*1)
	defer cancel()

	servers := make([]*zeroconf.ServiceEntry, 0)
	entries := make(chan *zeroconf.ServiceEntry)
	go func(results <-chan *zeroconf.ServiceEntry) {
		for entry := range results {
			servers = append(servers, entry)
			sp.Status(0, "Found so far: "+fmt.Sprint(len(servers)))
		}
	}(entries)

	err = resolver.Browse(ctx, "_addrfeed._tcp", "local.", entries)
	if err != nil {
		sp.Status(0, "Failed to browse:", err.Error())
	}

	<-ctx.Done()
	sp.PushLines()

	for _, entry := range servers {
		if len(entry.AddrIPv4) > 0 {
			return "http://" + entry.AddrIPv4[0].String() + ":" + strconv.Itoa(entry.Port)
		}
	}
	return ""
}

// serverOrDiscover: an explicitly given server always wins over mDNS.
func serverOrDiscover(server string) string {
	if server != "" {
		return server
	}
	base := DiscoverServer()
	if base == "" {
		fmt.Println("Failed to detect AddrFeed servers through mDNS!")
	}
	return base
}
