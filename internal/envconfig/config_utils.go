package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// BoolWithDefault returns a getter for a boolean variable with a default.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a getter for a boolean variable that defaults to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// StringWithDefault returns a getter for a string variable with a default.
func StringWithDefault(k, defaultValue string) func() string {
	return func() string {
		if s := Var(k); s != "" {
			return s
		}
		return defaultValue
	}
}

// Uint returns a getter for an unsigned variable with a default. Values that
// do not parse are logged and ignored.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar describes one environment variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every variable with its current value and description.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"TOKTOK_DEBUG":        {"TOKTOK_DEBUG", LogLevel(), "Show additional debug information (e.g. TOKTOK_DEBUG=1)"},
		"TOKTOK_HOST":         {"TOKTOK_HOST", Host(), "IP Address for the toktok server (default 127.0.0.1:7411)"},
		"TOKTOK_ORIGINS":      {"TOKTOK_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
		"TOKTOK_VOCAB_SIZE":   {"TOKTOK_VOCAB_SIZE", VocabSize(), "Vocabulary size to train (default 500)"},
		"TOKTOK_VOCAB_FILE":   {"TOKTOK_VOCAB_FILE", VocabFile(), "Vocabulary listing path (default vocab.model)"},
		"TOKTOK_MERGES_FILE":  {"TOKTOK_MERGES_FILE", MergesFile(), "Merges file path (default merges.txt)"},
		"TOKTOK_NUM_PARALLEL": {"TOKTOK_NUM_PARALLEL", NumParallel(), "Workers used to encode batches"},
	}
}

// Values returns every variable's current value formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
