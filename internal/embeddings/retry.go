package embeddings

import (
	"context"
	"time"
)

// RetryPolicy bounds how often and how patiently a transient embedding
// failure is retried.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy matches the ingestion defaults: five attempts with a
// fixed two second pause between them.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, Delay: 2 * time.Second}

// RetryEmbedder decorates an Embedder with bounded retry on transient
// failures. Permanent failures propagate immediately. The sleep function is
// injectable so tests can run against a fake clock.
type RetryEmbedder struct {
	inner  Embedder
	policy RetryPolicy
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryEmbedder wraps inner with the given policy. A zero-value policy
// falls back to DefaultRetryPolicy.
func NewRetryEmbedder(inner Embedder, policy RetryPolicy) *RetryEmbedder {
	if policy.MaxAttempts < 1 {
		policy = DefaultRetryPolicy
	}
	return &RetryEmbedder{
		inner:  inner,
		policy: policy,
		sleep:  sleepContext,
	}
}

func (r *RetryEmbedder) Name() string {
	return r.inner.Name()
}

func (r *RetryEmbedder) Dimensions() int {
	return r.inner.Dimensions()
}

func (r *RetryEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		vectors, err := r.inner.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err
		if attempt == r.policy.MaxAttempts {
			break
		}
		if err := r.sleep(ctx, r.policy.Delay); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
