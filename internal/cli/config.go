package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/artwork/pkg/pipeline"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgCacheBackend      = "cache.backend"
	cfgCacheRedisURL     = "cache.redis_url"
	cfgRenderBackground  = "render.background"
	cfgRenderScale       = "render.scale"
	cfgRenderSupersample = "render.supersample"
	cfgServerAddr        = "server.addr"
	cfgLogFormat         = "log.format"
)

// newConfig returns a viper instance with defaults and ARTWORK_* environment
// overrides. Nested keys map to underscores: ARTWORK_CACHE_BACKEND.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgCacheBackend, "file")
	v.SetDefault(cfgCacheRedisURL, "redis://localhost:6379/0")
	v.SetDefault(cfgRenderBackground, "")
	v.SetDefault(cfgRenderScale, 1.0)
	v.SetDefault(cfgRenderSupersample, pipeline.DefaultSupersample)
	v.SetDefault(cfgServerAddr, ":8080")
	v.SetDefault(cfgLogFormat, "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file. With an empty path it looks for
// config.yaml in the config directory, and a missing file is not an error.
func (c *CLI) loadConfig(path string) error {
	if path != "" {
		c.Config.SetConfigFile(path)
	} else {
		c.Config.SetConfigName(configFileName)
		c.Config.SetConfigType(configFileType)
		if dir, err := configDir(); err == nil {
			c.Config.AddConfigPath(dir)
		}
	}

	if err := c.Config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	c.Logger.Debug("loaded config", "file", c.Config.ConfigFileUsed())
	return nil
}
