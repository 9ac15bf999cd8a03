package llm

import (
	"context"
	"sync"
)

type fakeClient struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }
