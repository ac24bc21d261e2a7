package httpx

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

type TransportOption struct {
	dialer    *net.Dialer
	transport *http.Transport
	dnsCache  bool
}

func TransportOptions() *TransportOption {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &TransportOption{
		dialer:    dialer,
		transport: transport,
		dnsCache:  true,
	}
}

// WithoutKeepalive disables the keepalive.
func (o *TransportOption) WithoutKeepalive() *TransportOption {
	if o == nil || o.transport == nil {
		return o
	}

	o.dialer.KeepAlive = -1
	o.transport.DisableKeepAlives = true

	return o
}

// WithoutProxy disables the proxy.
func (o *TransportOption) WithoutProxy() *TransportOption {
	if o == nil || o.transport == nil {
		return o
	}

	o.transport.Proxy = nil

	return o
}

// WithoutInsecureVerify disables the insecure verify.
func (o *TransportOption) WithoutInsecureVerify() *TransportOption {
	if o == nil || o.transport == nil {
		return o
	}

	if o.transport.TLSClientConfig == nil {
		o.transport.TLSClientConfig = &tls.Config{}
	}
	o.transport.TLSClientConfig.InsecureSkipVerify = true

	return o
}

// WithoutDNSCache disables the DNS cache.
func (o *TransportOption) WithoutDNSCache() *TransportOption {
	if o == nil {
		return o
	}

	o.dnsCache = false

	return o
}

// TimeoutForDial sets the timeout for network dial.
func (o *TransportOption) TimeoutForDial(timeout time.Duration) *TransportOption {
	if o == nil || o.dialer == nil {
		return o
	}

	o.dialer.Timeout = timeout

	return o
}

// TimeoutForTLSHandshake sets the timeout for TLS handshake.
func (o *TransportOption) TimeoutForTLSHandshake(timeout time.Duration) *TransportOption {
	if o == nil || o.transport == nil {
		return o
	}

	o.transport.TLSHandshakeTimeout = timeout

	return o
}

// TimeoutForResponseHeader sets the timeout for response header.
func (o *TransportOption) TimeoutForResponseHeader(timeout time.Duration) *TransportOption {
	if o == nil || o.transport == nil {
		return o
	}

	o.transport.ResponseHeaderTimeout = timeout

	return o
}

// If applies the given function if the condition is true.
func (o *TransportOption) If(condition bool, then func(*TransportOption) *TransportOption) *TransportOption {
	if condition {
		return then(o)
	}

	return o
}
