// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers.
//
// It centralizes runtime.GOOS string literals so platform-specific branches
// (config directory resolution, home handling in tests) compare against
// named constants instead of scattered magic strings.
package platform
