package membudget

import (
	"time"
)

type (
	_DescriptorReadOptions struct {
		// Remote.
		BearerAuthToken     string
		SkipProxy           bool
		SkipTLSVerification bool
		SkipDNSCache        bool
		Debug               bool
		// Cache.
		CachePath       string
		CacheExpiration time.Duration
	}
	DescriptorReadOption func(*_DescriptorReadOptions)
)

// UseDebug uses debugging,
// dumps the remote request/response to stderr.
func UseDebug() DescriptorReadOption {
	return func(o *_DescriptorReadOptions) {
		o.Debug = true
	}
}

// UseBearerAuth uses the given token as a bearer auth when fetching remote properties.
func UseBearerAuth(token string) DescriptorReadOption {
	return func(o *_DescriptorReadOptions) {
		o.BearerAuthToken = token
	}
}

// SkipProxy skips the proxy settings from the environment when fetching remote properties.
func SkipProxy() DescriptorReadOption {
	return func(o *_DescriptorReadOptions) {
		o.SkipProxy = true
	}
}

// SkipTLSVerification skips the TLS verification when fetching remote properties.
func SkipTLSVerification() DescriptorReadOption {
	return func(o *_DescriptorReadOptions) {
		o.SkipTLSVerification = true
	}
}

// SkipDNSCache skips the DNS cache when fetching remote properties.
func SkipDNSCache() DescriptorReadOption {
	return func(o *_DescriptorReadOptions) {
		o.SkipDNSCache = true
	}
}

// UseCachePath caches the fetched descriptor under the given path.
func UseCachePath(path string) DescriptorReadOption {
	return func(o *_DescriptorReadOptions) {
		o.CachePath = path
	}
}

// UseCacheExpiration sets how long a cached descriptor stays valid,
// default is 24 hours, a negative duration never expires.
func UseCacheExpiration(exp time.Duration) DescriptorReadOption {
	return func(o *_DescriptorReadOptions) {
		o.CacheExpiration = exp
	}
}
