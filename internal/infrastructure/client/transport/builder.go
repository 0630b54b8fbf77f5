// Package transport builds the outbound HTTP clients shared by the JSON and
// SOAP partner clients and classifies their failures.
package transport

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/bibbank/leapneo/pkg/tlsutil"
)

const defaultConnectTimeout = 10 * time.Second

// SecurityConfig describes the trust store and proxy for one partner.
type SecurityConfig struct {
	TrustStorePath     string
	TrustStorePassword string
	ProxyHost          string
	ProxyPort          int
}

// Plain reports whether neither a trust store nor a proxy is configured.
func (s SecurityConfig) Plain() bool {
	return s.TrustStorePath == "" && s.ProxyHost == ""
}

// ProxyURL returns the proxy address, or nil when no proxy host is set.
func (s SecurityConfig) ProxyURL() *url.URL {
	if s.ProxyHost == "" {
		return nil
	}
	host := s.ProxyHost
	if s.ProxyPort > 0 {
		host = net.JoinHostPort(s.ProxyHost, strconv.Itoa(s.ProxyPort))
	}
	return &url.URL{Scheme: "http", Host: host}
}

// Builder constructs an *http.Client from a SecurityConfig.
type Builder struct {
	Security       SecurityConfig
	ConnectTimeout time.Duration
}

// Build returns a plain client when Security is plain, otherwise a client
// whose transport carries the proxy and the trust store roots.
func (b Builder) Build() (*http.Client, error) {
	connectTimeout := b.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	dialer := &net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}

	tr := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: connectTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}
	if b.Security.Plain() {
		return &http.Client{Transport: tr}, nil
	}

	if proxy := b.Security.ProxyURL(); proxy != nil {
		tr.Proxy = http.ProxyURL(proxy)
	}
	if b.Security.TrustStorePath != "" {
		pool, err := tlsutil.LoadTrustStore(b.Security.TrustStorePath, b.Security.TrustStorePassword)
		if err != nil {
			return nil, fmt.Errorf("load trust store: %w", err)
		}
		tr.TLSClientConfig = tlsutil.ClientTLSConfig(pool)
	}
	return &http.Client{Transport: tr}, nil
}

// LazyClient builds its client on first use. A construction failure is kept
// and returned on every later call.
type LazyClient struct {
	build  func() (*http.Client, error)
	client *http.Client
	err    error
	once   sync.Once
}

// NewLazyClient returns a LazyClient backed by b.
func NewLazyClient(b Builder) *LazyClient {
	return &LazyClient{build: b.Build}
}

// Init forces construction and reports its error.
func (l *LazyClient) Init() error {
	_, err := l.Get()
	return err
}

// Get returns the shared client or a KindConstruction error.
func (l *LazyClient) Get() (*http.Client, error) {
	l.once.Do(func() {
		l.client, l.err = l.build()
	})
	if l.err != nil {
		return nil, &Error{Kind: KindConstruction, Op: "build client", Err: l.err}
	}
	return l.client, nil
}
