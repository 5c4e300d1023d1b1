package config

import (
	"math"
	"strconv"
	"time"
)

// Config wraps a decoded configuration document for typed value extraction.
// Accessors return the default when the key is missing or the value has an
// unusable type. YAML yields int, JSON and HCL yield float64; both are accepted
// wherever a number is expected.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Duration returns the duration value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - string: parsed with time.ParseDuration ("50ms", "1s"); a bare number
//     ("50") is milliseconds, as env and dotenv values are always strings
//   - int, int64, float64: interpreted as milliseconds
//   - time.Duration: used directly
//
// Negative durations are rejected.
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	var d time.Duration
	switch val := c.data[key].(type) {
	case string:
		if parsed, err := time.ParseDuration(val); err == nil {
			d = parsed
			break
		}
		ms, err := strconv.ParseFloat(val, 64)
		if err != nil || math.IsNaN(ms) {
			return defaultVal
		}
		d = time.Duration(ms * float64(time.Millisecond))
	case int:
		d = time.Duration(val) * time.Millisecond
	case int64:
		d = time.Duration(val) * time.Millisecond
	case float64:
		d = time.Duration(val * float64(time.Millisecond))
	case time.Duration:
		d = val
	default:
		return defaultVal
	}
	if d < 0 {
		return defaultVal
	}
	return d
}

// Bool returns the boolean value for key, or defaultVal if missing.
// The strings accepted by strconv.ParseBool are honoured so that values read
// from dotenv files behave like their YAML counterparts.
func (c Config) Bool(key string, defaultVal bool) bool {
	switch val := c.data[key].(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
// float64 values convert only when they have no fractional part.
func (c Config) Int(key string, defaultVal int) int {
	switch val := c.data[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == math.Trunc(val) {
			return int(val)
		}
	}
	return defaultVal
}

// Number reports the numeric value of v and whether v is a number at all.
// Strings are never numbers here, even when they parse as one.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	}
	return 0, false
}

// Float returns the float64 value for key, or defaultVal if missing or not numeric.
func (c Config) Float(key string, defaultVal float64) float64 {
	if f, ok := Number(c.data[key]); ok {
		return f
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal if missing or
// if any element is not a string.
func (c Config) StringSlice(key string, defaultVal []string) []string {
	switch val := c.data[key].(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	}
	return defaultVal
}

// Slice returns the list value for key without converting its elements.
// It returns nil if the key is missing or is not a list.
func (c Config) Slice(key string) []any {
	switch val := c.data[key].(type) {
	case []any:
		return val
	case []map[string]any:
		out := make([]any, len(val))
		for i, m := range val {
			out[i] = m
		}
		return out
	}
	return nil
}

// Map returns the object value for key as a map.
// It returns nil if the key is missing or is not an object.
func (c Config) Map(key string) map[string]any {
	if m, ok := c.data[key].(map[string]any); ok {
		return m
	}
	return nil
}

// Sub returns the object at key as its own Config.
// Missing or non-object values yield an empty Config.
func (c Config) Sub(key string) Config {
	return New(c.Map(key))
}

// Any returns the raw value for key, or defaultVal if missing.
func (c Config) Any(key string, defaultVal any) any {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	return v
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Merge returns a new Config holding c's keys overlaid by other's.
// Neither input is modified. The overlay is shallow.
func (c Config) Merge(other Config) Config {
	out := make(map[string]any, len(c.data)+len(other.data))
	for k, v := range c.data {
		out[k] = v
	}
	for k, v := range other.data {
		out[k] = v
	}
	return Config{data: out}
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}
