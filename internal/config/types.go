// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultOutputSuffix is the filename suffix appended to the base name of
	// each scanned source file when writing its generated counterpart.
	DefaultOutputSuffix OutputSuffix = "_usagegen.go"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputSuffix is returned when an OutputSuffix value is malformed.
	ErrInvalidOutputSuffix = errors.New("invalid output suffix")
	// ErrInvalidHeaderNote is returned when a HeaderNote value spans multiple lines.
	ErrInvalidHeaderNote = errors.New("invalid header note")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidGenerateConfig is the sentinel error wrapped by InvalidGenerateConfigError.
	ErrInvalidGenerateConfig = errors.New("invalid generate config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputSuffix is the suffix for generated file names in scan mode.
	// A valid suffix is non-empty, ends in ".go", and contains no path separator.
	OutputSuffix string

	// InvalidOutputSuffixError is returned when an OutputSuffix value is
	// empty, lacks the ".go" extension, or contains a path separator.
	// It wraps ErrInvalidOutputSuffix for errors.Is() compatibility.
	InvalidOutputSuffixError struct {
		Value OutputSuffix
	}

	// HeaderNote is an extra comment line placed under the generated-file
	// header. The zero value ("") is valid and means "no extra line".
	// Non-zero values must be a single line.
	HeaderNote string

	// InvalidHeaderNoteError is returned when a HeaderNote value contains a
	// newline. It wraps ErrInvalidHeaderNote for errors.Is() compatibility.
	InvalidHeaderNoteError struct {
		Value HeaderNote
	}

	// InvalidUIConfigError aggregates field errors from UIConfig validation.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidGenerateConfigError aggregates field errors from GenerateConfig
	// validation. It wraps ErrInvalidGenerateConfig for errors.Is() compatibility.
	InvalidGenerateConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError aggregates section errors from Config validation.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the root configuration structure.
	Config struct {
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Generate configures generated-file output.
		Generate GenerateConfig `json:"generate" mapstructure:"generate"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// GenerateConfig configures how generated files are named and stamped.
	GenerateConfig struct {
		// Suffix is appended to the source base name in scan mode.
		Suffix OutputSuffix `json:"suffix" mapstructure:"suffix"`
		// HeaderNote is an extra comment line under the generated header.
		HeaderNote HeaderNote `json:"header_note" mapstructure:"header_note"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidOutputSuffixError.
func (e *InvalidOutputSuffixError) Error() string {
	return fmt.Sprintf("invalid output suffix %q (must be a bare file name ending in .go)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputSuffixError) Unwrap() error {
	return ErrInvalidOutputSuffix
}

// String returns the string representation of the OutputSuffix.
func (s OutputSuffix) String() string { return string(s) }

// IsValid returns whether the OutputSuffix names a usable generated-file
// suffix, and a list of validation errors if it does not.
func (s OutputSuffix) IsValid() (bool, []error) {
	v := string(s)
	if strings.TrimSpace(v) == "" || !strings.HasSuffix(v, ".go") ||
		strings.ContainsAny(v, `/\`) {
		return false, []error{&InvalidOutputSuffixError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHeaderNoteError.
func (e *InvalidHeaderNoteError) Error() string {
	return fmt.Sprintf("invalid header note %q (must be a single line)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidHeaderNoteError) Unwrap() error {
	return ErrInvalidHeaderNote
}

// String returns the string representation of the HeaderNote.
func (n HeaderNote) String() string { return string(n) }

// IsValid returns whether the HeaderNote fits on one comment line, and a
// list of validation errors if it does not. The zero value is valid.
func (n HeaderNote) IsValid() (bool, []error) {
	if strings.ContainsAny(string(n), "\n\r") {
		return false, []error{&InvalidHeaderNoteError{Value: n}}
	}
	return true, nil
}

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the GenerateConfig has valid fields.
// It delegates to Suffix.IsValid() and HeaderNote.IsValid().
func (c GenerateConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Suffix.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.HeaderNote.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidGenerateConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidGenerateConfigError.
func (e *InvalidGenerateConfigError) Error() string {
	return fmt.Sprintf("invalid generate config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidGenerateConfig for errors.Is() compatibility.
func (e *InvalidGenerateConfigError) Unwrap() error { return ErrInvalidGenerateConfig }

// IsValid returns whether every Config section has valid fields.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Generate.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Generate: GenerateConfig{
			Suffix:     DefaultOutputSuffix,
			HeaderNote: "",
		},
	}
}
