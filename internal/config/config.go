package config

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	AI      AIConfig
	Chat    ChatConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port        int
	BearerToken string
}

type StorageConfig struct {
	DataDir string
}

// AIConfig describes the remote completion chain: a primary provider and an
// optional fallback tried when the primary fails.
type AIConfig struct {
	Provider         string
	APIKey           string
	Model            string
	FallbackProvider string
	FallbackAPIKey   string
	FallbackModel    string
}

type ChatConfig struct {
	// Mode is rules, hybrid, or ai.
	Mode string
	// Priority optionally reorders the keyword categories as a
	// comma-separated list, e.g. "videos,website,articles,certifications".
	Priority string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4000,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		AI: AIConfig{
			Provider: "openai",
		},
		Chat: ChatConfig{
			Mode: "rules",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/resumebot/config.json with RESUMEBOT_* environment
// variables overriding backend values. Secrets (API keys, bearer token) are
// never stored in the file and come from the environment only.
//
// A missing API key is not an error: without one the service still answers
// from the rule table and returns the local fallback for remote completions.
func Load() (Config, error) {
	return loadWith(newPlatformBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}
