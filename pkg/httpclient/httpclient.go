// Package httpclient builds HTTP clients for calls to other services.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client with explicit dial, handshake and overall timeouts.
// http.DefaultClient has no timeout and must not be used for outbound calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
