package config

// LLMConfig 画廊文案生成，为空则关闭
type LLMConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Model   string `json:"model" yaml:"model"`
}

func ProvideLLMConfig(cfg *Config) *LLMConfig {
	return cfg.LLM
}
