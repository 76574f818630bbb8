package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/playerdash/gateway/internal/api/metrics"
	"github.com/playerdash/gateway/internal/core/domain"
	"github.com/playerdash/gateway/internal/core/ports"
	"github.com/playerdash/gateway/internal/core/service"
)

// ProxyHandler exposes the two proxy policies: the path-prefix proxy under
// /api that forwards to one fixed upstream, and the header-directed proxy
// under /proxy whose target comes from the routing header.
type ProxyHandler struct {
	forwarder     ports.Forwarder
	upstreamBase  *url.URL
	routingHeader string
}

func NewProxyHandler(forwarder ports.Forwarder, upstreamBaseURL, routingHeader string) (*ProxyHandler, error) {
	base, err := url.Parse(upstreamBaseURL)
	if err != nil {
		return nil, err
	}
	if routingHeader == "" {
		routingHeader = "X-Target-Url"
	}
	return &ProxyHandler{
		forwarder:     forwarder,
		upstreamBase:  base,
		routingHeader: routingHeader,
	}, nil
}

// API forwards /api/* to the fixed upstream base, replacing the /api prefix
// with the base URL's path.
//
// @Summary      Forward to the backend API
// @Tags         proxy
// @Router       /api/{path} [get]
func (h *ProxyHandler) API(c echo.Context) error {
	target := *h.upstreamBase
	suffix := strings.TrimPrefix(c.Request().URL.Path, "/api")
	target.Path = strings.TrimSuffix(target.Path, "/") + suffix

	return h.forward(c, "api", target.String())
}

// Target forwards the request to the URL named by the routing header.
// A request without the header fails with 400.
//
// @Summary      Forward to an arbitrary target
// @Tags         proxy
// @Param        X-Target-Url  header  string  true  "Absolute target URL"
// @Router       /proxy [get]
func (h *ProxyHandler) Target(c echo.Context) error {
	target := c.Request().Header.Get(h.routingHeader)
	if target == "" {
		return domain.ErrMissingTarget
	}

	return h.forward(c, "header", target)
}

func (h *ProxyHandler) forward(c echo.Context, route, target string) error {
	req := c.Request()

	header := req.Header.Clone()
	header.Del(h.routingHeader)
	header.Del("Host")

	proxyReq := &domain.ProxyRequest{
		Method:    req.Method,
		TargetURL: target,
		Header:    header,
	}
	// Safe methods carry their query string; everything else carries the
	// raw body unmodified, Content-Type included.
	if req.Method == http.MethodGet || req.Method == http.MethodHead {
		proxyReq.Query = c.QueryParams()
	} else {
		proxyReq.Body = req.Body
	}

	start := time.Now()
	res, err := h.forwarder.Forward(req.Context(), proxyReq)
	metrics.ProxyUpstreamDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProxyForwardsTotal.WithLabelValues(route, forwardOutcome(err)).Inc()
		return err
	}
	defer service.DrainAndClose(res.Body)
	metrics.ProxyForwardsTotal.WithLabelValues(route, "relayed").Inc()

	// Relay the upstream response verbatim: status, headers, body stream.
	// No re-serialization — the proxy is content-type agnostic.
	service.RelayResponseHeaders(c.Response().Header(), res.Header)
	c.Response().WriteHeader(res.StatusCode)
	_, err = io.Copy(c.Response(), res.Body)
	return err
}

func forwardOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream_error"
	default:
		return "rejected"
	}
}
