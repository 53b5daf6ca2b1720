// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for usagegen.
//
// This package implements the Cobra command hierarchy for the usagegen CLI:
// the root command, the generate command with its three input modes
// (invocation text, directive scanning, CUE manifest), diagnostic explain
// pages, and configuration management.
package cmd
