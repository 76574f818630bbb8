package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/playerdash/gateway/internal/core/domain"
)

const defaultForwardTimeout = 10 * time.Second

// hopByHopHeaders are connection-scoped and must not be relayed upstream.
// The routing header is stripped by the handler before the request reaches
// the forwarder.
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// HTTPForwarder forwards a request to an arbitrary upstream exactly once.
// The client timeout bounds the whole exchange, response body included; it
// also prevents a late upstream from writing into an already-failed request.
type HTTPForwarder struct {
	client  *http.Client
	allowed map[string]struct{}
}

// NewHTTPForwarder builds a forwarder with a bounded per-request timeout.
// allowedHosts restricts permitted target hosts; an empty list allows any
// target, which preserves the reference behaviour but should be a conscious
// deployment decision.
func NewHTTPForwarder(timeout time.Duration, allowedHosts []string) *HTTPForwarder {
	if timeout <= 0 {
		timeout = defaultForwardTimeout
	}

	var allowed map[string]struct{}
	if len(allowedHosts) > 0 {
		allowed = make(map[string]struct{}, len(allowedHosts))
		for _, h := range allowedHosts {
			allowed[h] = struct{}{}
		}
	}

	return &HTTPForwarder{
		client:  &http.Client{Timeout: timeout},
		allowed: allowed,
	}
}

// Forward performs the single upstream attempt. The upstream's status, body
// and headers are returned verbatim — an upstream error status is a valid
// response, not a forwarding failure. Connection failures and timeouts wrap
// domain.ErrUpstreamUnavailable.
func (f *HTTPForwarder) Forward(ctx context.Context, req *domain.ProxyRequest) (*domain.ProxyResponse, error) {
	target, err := f.resolveTarget(req)
	if err != nil {
		return nil, err
	}

	body := req.Body
	if body == nil {
		body = http.NoBody
	}

	upReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid target url", domain.ErrBadRequest)
	}
	copyInboundHeaders(upReq.Header, req.Header)

	res, err := f.client.Do(upReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	return &domain.ProxyResponse{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       res.Body,
	}, nil
}

// resolveTarget validates the target URL, enforces the host allow-list and
// merges inbound query parameters into the target's own query string.
func (f *HTTPForwarder) resolveTarget(req *domain.ProxyRequest) (string, error) {
	u, err := url.Parse(req.TargetURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: invalid target url", domain.ErrBadRequest)
	}

	if f.allowed != nil {
		if _, ok := f.allowed[u.Hostname()]; !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrTargetNotAllowed, u.Hostname())
		}
	}

	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func copyInboundHeaders(dst, src http.Header) {
	for k, vs := range src {
		if isHopByHop(k) || http.CanonicalHeaderKey(k) == "Content-Length" {
			continue
		}
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

func isHopByHop(key string) bool {
	canonical := http.CanonicalHeaderKey(key)
	for _, h := range hopByHopHeaders {
		if canonical == h {
			return true
		}
	}
	return false
}

// RelayResponseHeaders copies upstream response headers onto an outbound
// header map, skipping hop-by-hop entries.
func RelayResponseHeaders(dst, src http.Header) {
	for k, vs := range src {
		if isHopByHop(k) {
			continue
		}
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// DrainAndClose discards any unread remainder of an upstream body so the
// underlying connection can be reused, then closes it.
func DrainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
