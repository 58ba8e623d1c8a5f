// Package config loads the small amount of ambient configuration
// cmd/mvccsh and embedders need: which isolation level new connections
// default to, how verbose logging should be, and the REPL prompt.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/mukeshjc/mvcc-isolation/v2/mvcc"
)

// Config is the target struct Load unmarshals into.
type Config struct {
	DefaultIsolation string `mapstructure:"default_isolation"`
	Debug            bool   `mapstructure:"debug"`
	Prompt           string `mapstructure:"prompt"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		DefaultIsolation: "snapshot",
		Debug:            false,
		Prompt:           "mvcc> ",
	}
}

// Load reads an optional ".env" file, overlays any environment
// variables prefixed with prefix (e.g. "MVCC_DEBUG=true" ->
// target.Debug), and unmarshals the result into target. A missing
// config file is not an error; it's optional.
func Load(prefix string, target *Config) error {
	*target = Default()

	v := viper.New()
	v.SetConfigFile(".env")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return errors.Wrap(err, "reading .env")
		}
	}

	prefixUpper := strings.ToUpper(prefix)
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) != 2 {
			continue
		}
		key, value := pair[0], pair[1]
		if !strings.HasPrefix(key, prefixUpper) {
			continue
		}
		propKey := strings.TrimPrefix(key, prefixUpper)
		propKey = strings.ToLower(propKey)
		propKey = strings.TrimPrefix(propKey, "_")
		v.Set(propKey, value)
	}

	if err := v.Unmarshal(target); err != nil {
		return errors.Wrap(err, "unmarshaling config")
	}

	return nil
}

// ParseIsolation maps a config string to an mvcc.IsolationLevel.
func ParseIsolation(s string) (mvcc.IsolationLevel, error) {
	switch strings.ToLower(s) {
	case "read-uncommitted", "readuncommitted":
		return mvcc.ReadUncommittedIsolation, nil
	case "read-committed", "readcommitted":
		return mvcc.ReadCommittedIsolation, nil
	case "repeatable-read", "repeatableread":
		return mvcc.RepeatableReadIsolation, nil
	case "snapshot":
		return mvcc.SnapshotIsolation, nil
	case "serializable":
		return mvcc.SerializableIsolation, nil
	default:
		return 0, errors.Errorf("unknown isolation level: %s", s)
	}
}
