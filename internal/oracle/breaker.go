package oracle

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sony/gobreaker"
)

// breakerClient wraps a Client with circuit breaking. When the oracle
// keeps failing the breaker opens and calls fail immediately, so the
// pipeline drops into its local fallbacks without burning the request
// timeout on a dead upstream.
type breakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker
}

func newBreakerClient(client Client) *breakerClient {
	st := gobreaker.Settings{
		Name:    client.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			fmt.Fprintf(os.Stderr, "oracle circuit breaker %q: %s -> %s\n", name, from, to)
		},
	}

	return &breakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(st),
	}
}

// Name returns the wrapped provider's name.
func (b *breakerClient) Name() string {
	return b.client.Name()
}

// Complete implements Client.
func (b *breakerClient) Complete(ctx context.Context, req Request) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.client.Complete(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
