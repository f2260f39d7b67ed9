package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "RESUMEBOT_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.bearer_token", typ: kString, env: "RESUMEBOT_SERVER_BEARER_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.BearerToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.BearerToken },
	},
	{
		key: "storage.data_dir", typ: kString, env: "RESUMEBOT_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "ai.provider", typ: kString, env: "RESUMEBOT_AI_PROVIDER",
		apply:   func(cfg *Config, v any) { cfg.AI.Provider = v.(string) },
		extract: func(cfg Config) any { return cfg.AI.Provider },
	},
	{
		key: "ai.api_key", typ: kString, env: "RESUMEBOT_AI_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.AI.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.AI.APIKey },
	},
	{
		key: "ai.model", typ: kString, env: "RESUMEBOT_AI_MODEL",
		apply:   func(cfg *Config, v any) { cfg.AI.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.AI.Model },
	},
	{
		key: "ai.fallback_provider", typ: kString, env: "RESUMEBOT_AI_FALLBACK_PROVIDER",
		apply:   func(cfg *Config, v any) { cfg.AI.FallbackProvider = v.(string) },
		extract: func(cfg Config) any { return cfg.AI.FallbackProvider },
	},
	{
		key: "ai.fallback_api_key", typ: kString, env: "RESUMEBOT_AI_FALLBACK_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.AI.FallbackAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.AI.FallbackAPIKey },
	},
	{
		key: "ai.fallback_model", typ: kString, env: "RESUMEBOT_AI_FALLBACK_MODEL",
		apply:   func(cfg *Config, v any) { cfg.AI.FallbackModel = v.(string) },
		extract: func(cfg Config) any { return cfg.AI.FallbackModel },
	},
	{
		key: "chat.mode", typ: kString, env: "RESUMEBOT_CHAT_MODE",
		apply:   func(cfg *Config, v any) { cfg.Chat.Mode = v.(string) },
		extract: func(cfg Config) any { return cfg.Chat.Mode },
	},
	{
		key: "chat.priority", typ: kString, env: "RESUMEBOT_CHAT_PRIORITY",
		apply:   func(cfg *Config, v any) { cfg.Chat.Priority = v.(string) },
		extract: func(cfg Config) any { return cfg.Chat.Priority },
	},
	{
		key: "log.level", typ: kString, env: "RESUMEBOT_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
