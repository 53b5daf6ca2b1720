// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-facing guidance.
//
// It has two layers: ActionableError, an error type carrying the failed
// operation, the resource involved, and remediation suggestions; and a
// registry of Markdown explain pages, one per diagnostic code, rendered
// on demand by 'usagegen explain'.
package issue
