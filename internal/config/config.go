package config

import "github.com/spf13/viper"

// Config is the runtime configuration surface. Everything is env-driven with
// sensible defaults; there is no config file to deploy.
type Config struct {
	Port string

	// Generator settings
	AnthropicModel    string
	ValidationModel   string
	QuestionLanguage  string
	MockGenerator     bool
	UseCLIGenerator   bool
	CLIPath           string
	ValidationEnabled bool

	// Optional leaderboard cache. Empty disables caching.
	RedisAddr string
}

// Load reads configuration from environment variables.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929")
	v.SetDefault("VALIDATION_MODEL", "")
	v.SetDefault("QUESTION_LANGUAGE", "Arabic")
	v.SetDefault("MOCK_GENERATOR", false)
	v.SetDefault("USE_CLI_GENERATOR", false)
	v.SetDefault("CLAUDE_CLI_PATH", "claude")
	v.SetDefault("VALIDATION_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "")

	cfg := &Config{
		Port:              v.GetString("PORT"),
		AnthropicModel:    v.GetString("ANTHROPIC_MODEL"),
		ValidationModel:   v.GetString("VALIDATION_MODEL"),
		QuestionLanguage:  v.GetString("QUESTION_LANGUAGE"),
		MockGenerator:     v.GetBool("MOCK_GENERATOR"),
		UseCLIGenerator:   v.GetBool("USE_CLI_GENERATOR"),
		CLIPath:           v.GetString("CLAUDE_CLI_PATH"),
		ValidationEnabled: v.GetBool("VALIDATION_ENABLED"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
	}

	// The verification pass defaults to the generation model.
	if cfg.ValidationModel == "" {
		cfg.ValidationModel = cfg.AnthropicModel
	}

	return cfg
}
