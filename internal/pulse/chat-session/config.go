// internal/pulse/chat-session/config.go
package chatsession

import (
	"time"

	"deal-pulse/internal/common/config"
)

type Config struct {
	ThinkingDelay time.Duration
	Greeting      string
}

func LoadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		ThinkingDelay: time.Duration(config.DefaultThinkingDelayMs) * time.Millisecond,
		Greeting:      config.DefaultGreeting,
	}
	if appCfg == nil {
		return cfg
	}
	if appCfg.Session.ThinkingDelay > 0 {
		cfg.ThinkingDelay = appCfg.Session.ThinkingDelayDuration()
	}
	if appCfg.Session.Greeting != "" {
		cfg.Greeting = appCfg.Session.Greeting
	}
	return cfg
}
