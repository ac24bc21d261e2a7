package httpx

import (
	"net/http"
)

// DefaultTransport backs clients that do not customize their transport,
// shared so idle connections are pooled across them.
var DefaultTransport = Transport()

// Transport returns a new http.Transport with the given options.
func Transport(opts ...*TransportOption) *http.Transport {
	var o *TransportOption
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	} else {
		o = TransportOptions()
	}

	if o.dnsCache {
		o.transport.DialContext = DNSCacheDialContext(o.dialer)
	} else {
		o.transport.DialContext = o.dialer.DialContext
	}

	return o.transport
}
