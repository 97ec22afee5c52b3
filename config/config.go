package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"chess-rules/chessmg"
)

const envPrefix = "CHESSRULES"

type Config struct {
	StartPosition   string
	Rules           chessmg.RuleSet
	StrictPlacement bool
	LogLevel        zerolog.Level
	HistoryFile     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("start-position", chessmg.StartPlacement)
	v.SetDefault("rules", "standard")
	v.SetDefault("strict-placement", false)
	v.SetDefault("log-level", "info")
	v.SetDefault("history-file", "/tmp/chessrules.history")
}

// Load reads configuration from the optional file at path, then from
// CHESSRULES_* environment variables (e.g. CHESSRULES_LOG_LEVEL=debug).
// An empty path skips the file; a path that cannot be read is an error.
func (c *Config) Load(path string) error {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	rules, err := chessmg.ParseRuleSet(v.GetString("rules"))
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("log-level: %w", err)
	}

	c.StartPosition = v.GetString("start-position")
	c.Rules = rules
	c.StrictPlacement = v.GetBool("strict-placement")
	c.LogLevel = level
	c.HistoryFile = v.GetString("history-file")
	return nil
}
