// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/usagegen/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/usagegen/config.cue on macOS, %APPDATA%\usagegen\config.cue
// on Windows). The package covers UI settings and generated-file output settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
