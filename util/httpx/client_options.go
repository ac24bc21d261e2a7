package httpx

import (
	"net/http"
	"time"
)

type ClientOption struct {
	timeout         time.Duration
	debug           bool
	userAgent       string
	bearerAuthToken string
	transportOption *TransportOption
}

func ClientOptions() *ClientOption {
	return &ClientOption{
		timeout:   30 * time.Second,
		userAgent: "llama-membudget",
	}
}

// WithTimeout sets the request timeout,
// a zero timeout means no timeout.
func (o *ClientOption) WithTimeout(timeout time.Duration) *ClientOption {
	if o == nil {
		return o
	}

	o.timeout = timeout

	return o
}

// WithDebug enables the request/response dump.
func (o *ClientOption) WithDebug() *ClientOption {
	if o == nil {
		return o
	}

	o.debug = true

	return o
}

// WithUserAgent sets the user agent header.
func (o *ClientOption) WithUserAgent(userAgent string) *ClientOption {
	if o == nil {
		return o
	}

	o.userAgent = userAgent

	return o
}

// WithBearerAuth sets the bearer token header.
func (o *ClientOption) WithBearerAuth(token string) *ClientOption {
	if o == nil {
		return o
	}

	o.bearerAuthToken = token

	return o
}

// WithTransport sets the transport options.
func (o *ClientOption) WithTransport(topt *TransportOption) *ClientOption {
	if o == nil || topt == nil {
		return o
	}

	o.transportOption = topt

	return o
}

// If applies the given function if the condition is true.
func (o *ClientOption) If(condition bool, then func(*ClientOption) *ClientOption) *ClientOption {
	if condition {
		return then(o)
	}

	return o
}

func (o *ClientOption) roundTripper() http.RoundTripper {
	if o.transportOption == nil {
		return DefaultTransport
	}
	return Transport(o.transportOption)
}
