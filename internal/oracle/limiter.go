package oracle

import (
	"context"

	"golang.org/x/time/rate"
)

// limitedClient throttles outbound oracle calls. Waiting respects the
// request context, so a caller's timeout still bounds the whole call.
type limitedClient struct {
	client  Client
	limiter *rate.Limiter
}

func newLimitedClient(client Client, requestsPerSecond float64, burst int) *limitedClient {
	if burst <= 0 {
		burst = 1
	}
	return &limitedClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped provider's name.
func (l *limitedClient) Name() string {
	return l.client.Name()
}

// Complete implements Client.
func (l *limitedClient) Complete(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.client.Complete(ctx, req)
}
