package membudget

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AgustinJimenez/llama-membudget/util/httpx"
	"github.com/AgustinJimenez/llama-membudget/util/json"
)

// DescriptorFromRemoteProps fetches the properties endpoint of a running
// llama.cpp style server, e.g. "http://127.0.0.1:8080/props",
// and builds a descriptor from the model metadata it reports.
//
// The metadata is taken from "default_generation_settings.model_meta" when present,
// falling back to a top-level "model_meta" object.
func DescriptorFromRemoteProps(ctx context.Context, uri string, opts ...DescriptorReadOption) (*ModelArchitectureDescriptor, error) {
	var o _DescriptorReadOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.CachePath != "" && o.CacheExpiration == 0 {
		o.CacheExpiration = 24 * time.Hour
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse url %s: %w", uri, err)
	}

	c := DescriptorCache(o.CachePath)
	if d, err := c.Get(u.String(), o.CacheExpiration); err == nil {
		return d, nil
	}

	cli := httpx.Client(httpx.ClientOptions().
		WithTimeout(0).
		If(o.Debug, func(x *httpx.ClientOption) *httpx.ClientOption {
			return x.WithDebug()
		}).
		If(o.BearerAuthToken != "", func(x *httpx.ClientOption) *httpx.ClientOption {
			return x.WithBearerAuth(o.BearerAuthToken)
		}).
		WithTransport(httpx.TransportOptions().
			WithoutKeepalive().
			TimeoutForDial(5*time.Second).
			TimeoutForTLSHandshake(5*time.Second).
			TimeoutForResponseHeader(5*time.Second).
			If(o.SkipProxy, func(x *httpx.TransportOption) *httpx.TransportOption {
				return x.WithoutProxy()
			}).
			If(o.SkipTLSVerification, func(x *httpx.TransportOption) *httpx.TransportOption {
				return x.WithoutInsecureVerify()
			}).
			If(o.SkipDNSCache, func(x *httpx.TransportOption) *httpx.TransportOption {
				return x.WithoutDNSCache()
			})))

	req, err := httpx.NewGetRequestWithContext(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	var props struct {
		DefaultGenerationSettings struct {
			ModelMeta map[string]any `json:"model_meta"`
		} `json:"default_generation_settings"`
		ModelMeta map[string]any `json:"model_meta"`
	}
	err = httpx.Do(cli, req, func(resp *http.Response) error {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status code %d %s", resp.StatusCode, resp.Status)
		}
		return json.NewDecoder(resp.Body).Decode(&props)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch properties %s: %w", u.String(), err)
	}

	md := props.DefaultGenerationSettings.ModelMeta
	if len(md) == 0 {
		md = props.ModelMeta
	}
	if len(md) == 0 {
		return nil, fmt.Errorf("no model metadata in properties %s", u.String())
	}

	d := DescriptorFromMetadata(md)

	// Best effort.
	_ = c.Put(u.String(), d)

	return d, nil
}
