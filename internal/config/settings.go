package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings are the runtime knobs of the binaries, separate from game content.
type Settings struct {
	App  AppSettings  `mapstructure:"app"`
	NATS NATSSettings `mapstructure:"nats"`
}

type AppSettings struct {
	LogLevel  string `mapstructure:"log_level"`
	AssetsDir string `mapstructure:"assets_dir"`
	Seed      int64  `mapstructure:"seed"`
}

type NATSSettings struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	Subject       string        `mapstructure:"subject"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

// LoadSettings reads path (optional when empty) and MATCH3_* environment
// overrides, e.g. MATCH3_APP_SEED or MATCH3_NATS_URL.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.assets_dir", "assets")
	v.SetDefault("app.seed", 0)
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.subject", "match3.battle.outcome")
	v.SetDefault("nats.max_reconnects", 5)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)

	v.SetEnvPrefix("MATCH3")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
