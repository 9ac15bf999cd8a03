package llm

import (
	"context"
	"time"
)

// CallObserver records the outcome of each provider call.
type CallObserver interface {
	ObserveLLMCall(model, operation string, err error, elapsed time.Duration)
}

// ObservedClient reports every call of the wrapped Client to an observer.
type ObservedClient struct {
	inner    Client
	observer CallObserver
}

// NewObservedClient wraps inner.
func NewObservedClient(inner Client, observer CallObserver) *ObservedClient {
	return &ObservedClient{inner: inner, observer: observer}
}

func (o *ObservedClient) observe(tier ModelTier, op string, fn func() (string, error)) (string, error) {
	start := time.Now()
	out, err := fn()
	o.observer.ObserveLLMCall(o.inner.GetModel(tier), op, err, time.Since(start))
	return out, err
}

// GenerateContent implements Client
func (o *ObservedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return o.observe(tier, "content", func() (string, error) { return o.inner.GenerateContent(ctx, prompt, tier) })
}

// GenerateJSON implements Client
func (o *ObservedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return o.observe(tier, "json", func() (string, error) { return o.inner.GenerateJSON(ctx, prompt, tier) })
}

// GetModel implements Client
func (o *ObservedClient) GetModel(tier ModelTier) string { return o.inner.GetModel(tier) }

// Close implements Client
func (o *ObservedClient) Close() error { return o.inner.Close() }
