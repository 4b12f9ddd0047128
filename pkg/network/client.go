// Package network builds the HTTP clients and raw connections used to reach
// the feed server, honouring the configured proxy and IP stack preference.
package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// ProxyProvider provides proxy configuration.
type ProxyProvider interface {
	GetProxyURL(ctx context.Context) string
}

// IPStackProvider provides the preferred IP stack: "default", "ipv4" or "ipv6".
type IPStackProvider interface {
	GetIPStack(ctx context.Context) string
}

// Static serves a fixed proxy and IP stack, typically straight from config.
type Static struct {
	ProxyURL string
	IPStack  string
}

func (s Static) GetProxyURL(context.Context) string { return s.ProxyURL }

func (s Static) GetIPStack(context.Context) string {
	if s.IPStack == "" {
		return "default"
	}
	return s.IPStack
}

// ClientFactory creates HTTP clients and dialers with proxy configuration.
type ClientFactory struct {
	proxyProvider   ProxyProvider
	ipStackProvider IPStackProvider
	testHTTPClient  *http.Client // For testing only
}

// NewClientFactory creates a new client factory.
func NewClientFactory(proxyProvider ProxyProvider, ipStackProvider IPStackProvider) *ClientFactory {
	if proxyProvider == nil {
		proxyProvider = &noopProvider{}
	}
	if ipStackProvider == nil {
		ipStackProvider = &noopProvider{}
	}
	return &ClientFactory{proxyProvider: proxyProvider, ipStackProvider: ipStackProvider}
}

// NewClientFactoryForTest creates a client factory that uses the given http.Client for testing.
// This is only for use in tests.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{
		proxyProvider:   &noopProvider{},
		ipStackProvider: &noopProvider{},
		testHTTPClient:  client,
	}
}

type noopProvider struct{}

func (p *noopProvider) GetProxyURL(ctx context.Context) string { return "" }

func (p *noopProvider) GetIPStack(ctx context.Context) string { return "default" }

// NewHTTPClient creates a standard http.Client with proxy configuration.
func (f *ClientFactory) NewHTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: f.NewHTTPTransport(ctx),
	}
}

// NewHTTPTransport creates an http.Transport with proxy configuration.
// HTTP(S) proxies go through Transport.Proxy; SOCKS5 proxies replace the dialer.
func (f *ClientFactory) NewHTTPTransport(ctx context.Context) *http.Transport {
	transport := &http.Transport{
		DialContext:         f.makeDialFunc(f.ipStackProvider.GetIPStack(ctx)),
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        32,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	parsed, ok := f.parsedProxy(ctx)
	if !ok {
		return transport
	}
	switch parsed.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(parsed)
	case "socks5", "socks5h":
		if dial := f.socksDialFunc(ctx, parsed); dial != nil {
			transport.DialContext = dial
		}
	}
	return transport
}

// DialContext opens a raw connection to addr. SOCKS5 proxies are honoured;
// HTTP proxies only apply to HTTP requests and are bypassed here.
func (f *ClientFactory) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	if parsed, ok := f.parsedProxy(ctx); ok && (parsed.Scheme == "socks5" || parsed.Scheme == "socks5h") {
		if dial := f.socksDialFunc(ctx, parsed); dial != nil {
			return dial(ctx, network, addr)
		}
	}
	return f.makeDialFunc(f.ipStackProvider.GetIPStack(ctx))(ctx, network, addr)
}

// GetProxyURL returns the current proxy URL.
func (f *ClientFactory) GetProxyURL(ctx context.Context) string {
	return f.proxyProvider.GetProxyURL(ctx)
}

// TestProxy tests if the proxy is working by making a request to the given URL.
// Errors name the proxy by host only so credentials never reach the logs.
func (f *ClientFactory) TestProxy(ctx context.Context, testURL string) error {
	client := f.NewHTTPClient(ctx, 10*time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, testURL, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("via proxy %s: %w", ExtractHost(f.GetProxyURL(ctx)), err)
	}
	defer resp.Body.Close()

	return nil
}

func (f *ClientFactory) parsedProxy(ctx context.Context) (*url.URL, bool) {
	raw := f.proxyProvider.GetProxyURL(ctx)
	if raw == "" {
		return nil, false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return nil, false
	}
	return parsed, true
}

func (f *ClientFactory) socksDialFunc(ctx context.Context, proxyURL *url.URL) func(context.Context, string, string) (net.Conn, error) {
	dialer, err := proxy.FromURL(proxyURL, &ipStackDialer{ipStack: f.ipStackProvider.GetIPStack(ctx)})
	if err != nil {
		return nil
	}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(network, addr)
	}
}

// ExtractHost returns host[:port] of rawURL, or "" when it has none.
func ExtractHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
