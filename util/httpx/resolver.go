package httpx

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/dnscache"
)

var (
	dnsCacheResolverOnce sync.Once
	dnsCacheResolver     *dnscache.Resolver
)

// getDNSCacheResolver returns the process-wide cached resolver,
// creating it and its refresh goroutine on first use.
func getDNSCacheResolver() *dnscache.Resolver {
	dnsCacheResolverOnce.Do(func() {
		dnsCacheResolver = &dnscache.Resolver{}
		go func() {
			t := time.NewTicker(5 * time.Minute)
			defer t.Stop()
			for range t.C {
				dnsCacheResolver.Refresh(true)
			}
		}()
	})
	return dnsCacheResolver
}

// DNSCacheDialContext wraps the given dialer with the shared cached resolver,
// repeated lookups of the same host skip the resolver round-trip.
// Nothing is spawned until the first dial.
func DNSCacheDialContext(dialer *net.Dialer) func(context.Context, string, string) (net.Conn, error) {
	return func(ctx context.Context, nw, addr string) (conn net.Conn, err error) {
		h, p, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ips, err := getDNSCacheResolver().LookupHost(ctx, h)
		if err != nil {
			return nil, err
		}
		// Try to connect to each IP address in order.
		for _, ip := range ips {
			conn, err = dialer.DialContext(ctx, nw, net.JoinHostPort(ip, p))
			if err == nil {
				break
			}
		}
		return conn, err
	}
}
