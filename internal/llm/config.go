// Package llm wraps the language-model providers used by the course advisor,
// the timeline planner and the study-materials service behind one Client
// interface with model tiers.
package llm

// ModelTier selects a model by capability instead of by name.
type ModelTier string

const (
	// TierLite covers extraction tasks such as prerequisite parsing
	TierLite ModelTier = "lite"
	// TierStandard covers chat replies and structured timeline generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for long multi-path planning prompts
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Config holds the model table and sampling settings for one provider.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns the Gemini configuration used for chat and planning.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini model table.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.1,
	}
}

// DefaultOpenAIConfig returns the OpenAI configuration used for study materials.
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
		Temperature: 0.5,
		MaxTokens:   2000,
	}
}

// ConfigFor returns the default configuration for provider.
func ConfigFor(provider Provider) *Config {
	if provider == ProviderOpenAI {
		return DefaultOpenAIConfig()
	}
	return DefaultGeminiConfig()
}

// GetModel returns the model name for a tier, falling back to standard then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := c.clone()
	out.Models[tier] = model
	return out
}

// WithTemperature returns a copy of c using temperature t.
func (c *Config) WithTemperature(t float32) *Config {
	out := c.clone()
	out.Temperature = t
	return out
}

func (c *Config) clone() *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		out.Models[k] = v
	}
	return &out
}
