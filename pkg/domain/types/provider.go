package types

// ProviderName identifies a generation backend
type ProviderName string

const (
	ProviderDeepSeek ProviderName = "deepseek"
	ProviderGemini   ProviderName = "gemini"
	ProviderOpenAI   ProviderName = "openai"
	ProviderClaude   ProviderName = "claude"

	// ProviderAuto requests free-tier auto-selection by the gateway
	ProviderAuto ProviderName = "auto"
)

// AllProviderNames returns all concrete provider names (excluding auto)
func AllProviderNames() []ProviderName {
	return []ProviderName{
		ProviderDeepSeek,
		ProviderGemini,
		ProviderOpenAI,
		ProviderClaude,
	}
}

// IsValid checks if the provider name is a concrete backend or auto
func (p ProviderName) IsValid() bool {
	if p == ProviderAuto {
		return true
	}
	for _, v := range AllProviderNames() {
		if p == v {
			return true
		}
	}
	return false
}

// IsAuto reports whether the name requests auto-selection
func (p ProviderName) IsAuto() bool {
	return p == ProviderAuto || p == ""
}

func (p ProviderName) String() string {
	return string(p)
}
