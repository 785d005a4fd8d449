// Package envconfig reads toktok settings from TOKTOK_* environment variables.
package envconfig

import (
	"log/slog"
	"net"
	"os"
	"runtime"
	"strconv"
	"strings"
)

const (
	defaultPort       = "7411"
	defaultVocabSize  = 500
	defaultVocabFile  = "vocab.model"
	defaultMergesFile = "merges.txt"
)

// Host returns the host:port the server listens on.
// Configurable via TOKTOK_HOST. Default: 127.0.0.1:7411.
func Host() string {
	s := strings.TrimSpace(Var("TOKTOK_HOST"))
	s = strings.TrimPrefix(s, "http://")

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(s, "[]")); ip != nil {
			host = ip.String()
		} else if s != "" {
			host = s
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return net.JoinHostPort(host, port)
}

// AllowedOrigins returns the CORS origins accepted by the server.
// TOKTOK_ORIGINS adds a comma separated list to the localhost defaults.
func AllowedOrigins() (origins []string) {
	if s := Var("TOKTOK_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			"http://"+origin,
			"https://"+origin,
			"http://"+net.JoinHostPort(origin, "*"),
			"https://"+net.JoinHostPort(origin, "*"),
		)
	}

	return origins
}

// LogLevel returns the log level.
// Configurable via TOKTOK_DEBUG: 0/false = INFO (default), 1/true = DEBUG.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("TOKTOK_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// NumParallel returns the number of workers used for batch encoding.
func NumParallel() uint {
	return Uint("TOKTOK_NUM_PARALLEL", uint(runtime.NumCPU()))() //nolint:gosec // G115: CPU count is positive.
}

var (
	// VocabSize is the default training vocabulary size.
	VocabSize = Uint("TOKTOK_VOCAB_SIZE", defaultVocabSize)
	// VocabFile is the default vocabulary listing path.
	VocabFile = StringWithDefault("TOKTOK_VOCAB_FILE", defaultVocabFile)
	// MergesFile is the default merges path used for saving and loading.
	MergesFile = StringWithDefault("TOKTOK_MERGES_FILE", defaultMergesFile)
)

// Var returns an environment variable stripped of leading and trailing
// quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
