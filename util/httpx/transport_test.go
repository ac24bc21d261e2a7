package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientOption_roundTripper(t *testing.T) {
	// Uncustomized clients share the pooled default transport.
	assert.Same(t, DefaultTransport, ClientOptions().roundTripper())
	assert.Same(t, DefaultTransport, ClientOptions().WithTimeout(0).roundTripper())

	// A customized transport gets its own instance.
	custom := ClientOptions().WithTransport(TransportOptions().WithoutKeepalive()).roundTripper()
	assert.NotSame(t, DefaultTransport, custom)
}

func TestGetDNSCacheResolver(t *testing.T) {
	// Every dialer shares one resolver, and with it one refresh goroutine.
	assert.Same(t, getDNSCacheResolver(), getDNSCacheResolver())
}
