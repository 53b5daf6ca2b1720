// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	globalMu  sync.Mutex
	globalCfg *Config

	// configFilePathOverride forces Load to read a specific config file.
	// Set from the --config flag before the first Load call.
	configFilePathOverride string

	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the process-wide configuration, loading it on first use.
// The result is cached; subsequent calls return the cached value until Reset.
// Failed loads are not cached, so a later call retries.
func Load() (*Config, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalCfg != nil {
		return globalCfg, nil
	}

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	globalCfg = cfg
	return cfg, nil
}

// Reset clears the cached config and all overrides. Call from test cleanup
// to restore defaults.
func Reset() {
	globalMu.Lock()
	globalCfg = nil
	globalMu.Unlock()
	configFilePathOverride = ""
	configDirOverride = ""
}

// SetConfigFilePathOverride forces the global Load to read the given config
// file. Must be called before the first Load.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
