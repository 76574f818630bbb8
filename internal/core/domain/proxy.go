package domain

import (
	"io"
	"net/http"
	"net/url"
)

// ProxyRequest describes one forwarding attempt. It is built per inbound
// request and discarded once the upstream response has been relayed.
//
// Header must already have the routing header stripped; the forwarder strips
// hop-by-hop headers itself.
type ProxyRequest struct {
	Method    string
	TargetURL string
	Header    http.Header
	Query     url.Values
	Body      io.Reader
}

// ProxyResponse carries the upstream's answer back verbatim. Body is the
// upstream body stream; the caller owns closing it.
type ProxyResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}
