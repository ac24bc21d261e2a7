package httpx

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/henvic/httpretty"

	"github.com/AgustinJimenez/llama-membudget/util/osx"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (fn roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}

// Client returns a new http.Client with the given options.
func Client(opts ...*ClientOption) *http.Client {
	var o *ClientOption
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	} else {
		o = ClientOptions()
	}

	rt := o.roundTripper()

	if o.debug {
		pretty := &httpretty.Logger{
			Time:            true,
			TLS:             true,
			RequestHeader:   true,
			RequestBody:     true,
			ResponseHeader:  true,
			ResponseBody:    true,
			Colors:          true,
			Formatters:      []httpretty.Formatter{&httpretty.JSONFormatter{}},
			MaxResponseBody: 10240,
		}
		pretty.SetOutput(os.Stderr)
		rt = pretty.RoundTripper(rt)
	}

	if o.userAgent != "" || o.bearerAuthToken != "" {
		ua, tk, next := o.userAgent, o.bearerAuthToken, rt
		rt = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if ua != "" && r.Header.Get("User-Agent") == "" {
				r.Header.Set("User-Agent", ua)
			}
			if tk != "" && r.Header.Get("Authorization") == "" {
				r.Header.Set("Authorization", "Bearer "+tk)
			}
			return next.RoundTrip(r)
		})
	}

	return &http.Client{
		Timeout:   o.timeout,
		Transport: rt,
	}
}

// NewGetRequestWithContext returns a new http.MethodGet request with the given context.
func NewGetRequestWithContext(ctx context.Context, uri string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
}

// Do sends the given request with the given client,
// and processes the response with the given function.
func Do(cli *http.Client, req *http.Request, respFunc func(*http.Response) error) error {
	resp, err := cli.Do(req)
	if err != nil {
		return fmt.Errorf("do request %s %s: %w", req.Method, req.URL.String(), err)
	}
	defer Close(resp)

	return respFunc(resp)
}

// Close closes the given response body without error.
func Close(resp *http.Response) {
	if resp == nil {
		return
	}
	osx.Close(resp.Body)
}
