// Package config wraps Viper so components read their own section of the
// storefront configuration without touching the global instance.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// ViperConfig is a scoped view over a Viper instance.
type ViperConfig struct {
	v *viper.Viper
}

// New creates a ViperConfig backed by v. A nil v yields an empty config, so
// components always receive a usable value even when their section is absent.
func New(v *viper.Viper) *ViperConfig {
	if v == nil {
		v = viper.New()
	}
	return &ViperConfig{v: v}
}

// Unmarshal decodes the whole section into target using mapstructure tags.
func (c *ViperConfig) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

func (c *ViperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *ViperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *ViperConfig) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *ViperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// Sub returns the named section. Missing sections come back empty rather
// than nil.
func (c *ViperConfig) Sub(key string) *ViperConfig {
	return New(c.v.Sub(key))
}

// Viper returns the underlying Viper instance for top-level keys such as
// server.port.
func (c *ViperConfig) Viper() *viper.Viper {
	return c.v
}
