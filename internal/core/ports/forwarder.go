package ports

import (
	"context"

	"github.com/playerdash/gateway/internal/core/domain"
)

// Forwarder performs exactly one upstream attempt per inbound request;
// retry policy belongs to the caller, never to the gateway.
type Forwarder interface {
	Forward(ctx context.Context, req *domain.ProxyRequest) (*domain.ProxyResponse, error)
}
