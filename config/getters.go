package config

import "time"

// GetString returns the string at key, or the optional default when unset.
func (c *Config) GetString(key string, defaultVal ...string) string {
	if c.k == nil || !c.k.Exists(key) {
		return optionalDefault("", defaultVal...)
	}
	return c.k.String(key)
}

// GetInt returns the integer at key, or the optional default when unset.
func (c *Config) GetInt(key string, defaultVal ...int) int {
	if c.k == nil || !c.k.Exists(key) {
		return optionalDefault(0, defaultVal...)
	}
	return c.k.Int(key)
}

// GetBool returns the boolean at key, or the optional default when unset.
func (c *Config) GetBool(key string, defaultVal ...bool) bool {
	if c.k == nil || !c.k.Exists(key) {
		return optionalDefault(false, defaultVal...)
	}
	return c.k.Bool(key)
}

// GetDuration returns the duration at key, or the optional default when unset.
func (c *Config) GetDuration(key string, defaultVal ...time.Duration) time.Duration {
	if c.k == nil || !c.k.Exists(key) {
		return optionalDefault(time.Duration(0), defaultVal...)
	}
	return c.k.Duration(key)
}

// GetRequiredString returns the string at key or a *ConfigError when it is unset or empty.
func (c *Config) GetRequiredString(key string) (string, error) {
	v := c.GetString(key)
	if v == "" {
		return "", NewMissingFieldError(key)
	}
	return v, nil
}

// Exists reports whether key is set by any source.
func (c *Config) Exists(key string) bool {
	return c.k != nil && c.k.Exists(key)
}

// All returns every loaded key flattened to dotted paths.
func (c *Config) All() map[string]any {
	if c.k == nil {
		return map[string]any{}
	}
	return c.k.All()
}

func optionalDefault[T any](zero T, overrides ...T) T {
	if len(overrides) > 0 {
		return overrides[0]
	}
	return zero
}
