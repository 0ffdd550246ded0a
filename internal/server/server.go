package server

import (
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/grandcat/zeroconf"
	"github.com/sergds/addrfeed/internal/feed"
	"github.com/sergds/addrfeed/internal/resolver"
	"github.com/sergds/addrfeed/internal/store"
)

type AddrFeedServer struct {
	cfg   *Config
	store store.Store
	svc   *feed.Service
}

func NewAddrFeedServer(cfg *Config, st store.Store, svc *feed.Service) *AddrFeedServer {
	return &AddrFeedServer{cfg: cfg, store: st, svc: svc}
}

func (s *AddrFeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", s.handleFeed)
	mux.HandleFunc("/config/", s.handleConfig)
	return mux
}

func ServerMain(cfgpath string) {
	cfg, err := LoadConfig(cfgpath)
	if err != nil {
		log.Fatalln("Bad server config:", err.Error())
	}
	st, err := store.NewStore(cfg.Store, cfg.DBPath)
	if err != nil {
		log.Fatalln("Failed to open store:", err.Error())
	}
	defer st.Close()

	svc := feed.NewService(st, resolver.NewResolver(cfg.Resolver, cfg.DNSServer), clock.New())
	// Pick up the template left over from the previous run, if any.
	if doc, err := st.GetConfig(cfg.ConfigID); err == nil {
		svc.ReplaceConfig(doc["config"])
	} else {
		log.Println("No stored config yet (" + err.Error() + "), starting with an empty template")
	}

	s := NewAddrFeedServer(cfg, st, svc)

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Fatalln(err.Error())
	}
	host, _ := os.Hostname()
	_, portstr, _ := net.SplitHostPort(lis.Addr().String())
	port, _ := strconv.Atoi(portstr)
	mdns, err := zeroconf.Register("AddrFeed Server @ "+host, "_addrfeed._tcp", "local.", port, []string{"txtv=0", "host=" + host}, nil)
	if err != nil {
		log.Fatalln("Failed to initialize mDNS:", err.Error())
	}
	defer mdns.Shutdown()

	log.Printf("addrfeed server running @ %s", lis.Addr().String())
	if err := http.Serve(lis, s.Handler()); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
