// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/zerosign/usagegen/internal/issue"
	"github.com/zerosign/usagegen/internal/testutil"
	"github.com/zerosign/usagegen/pkg/platform"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if cfg.Generate.Suffix != DefaultOutputSuffix {
		t.Errorf("expected default suffix to be %q, got %q", DefaultOutputSuffix, cfg.Generate.Suffix)
	}

	if cfg.Generate.HeaderNote != "" {
		t.Errorf("expected default header note to be empty, got %q", cfg.Generate.HeaderNote)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != platform.Linux {
		t.Skip("XDG resolution is only exercised on Linux")
	}

	testXDGPath := "/tmp/test-xdg-config"
	restoreXDG := testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath)
	defer restoreXDG()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join(testXDGPath, AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	// With XDG_CONFIG_HOME unset, the directory falls back to ~/.config.
	restoreUnset := testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
	defer restoreUnset()

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected = filepath.Join(home, ".config", AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestConfigDirOverride(t *testing.T) {
	t.Cleanup(Reset)

	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != tmpDir {
		t.Errorf("ConfigDir() = %s, want override %s", dir, tmpDir)
	}
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	// An empty config dir means no config file, which falls back to defaults.
	cfg, resolvedPath, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if resolvedPath != "" {
		t.Errorf("resolvedPath = %q, want empty for defaults-only load", resolvedPath)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %s, want auto", cfg.UI.ColorScheme)
	}
	if cfg.Generate.Suffix != DefaultOutputSuffix {
		t.Errorf("Suffix = %q, want %q", cfg.Generate.Suffix, DefaultOutputSuffix)
	}
}

func TestLoadWithOptions_FromFile(t *testing.T) {
	cfgDir := t.TempDir()
	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	content := `
ui: {
	color_scheme: "dark"
	verbose:      true
}

generate: {
	suffix:      "_args.go"
	header_note: "maintained by the build team"
}
`
	testutil.MustWriteFile(t, cfgPath, []byte(content), 0o644)

	cfg, resolvedPath, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: cfgDir,
	})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if resolvedPath != cfgPath {
		t.Errorf("resolvedPath = %q, want %q", resolvedPath, cfgPath)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %s, want dark", cfg.UI.ColorScheme)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.Generate.Suffix != "_args.go" {
		t.Errorf("Suffix = %q, want _args.go", cfg.Generate.Suffix)
	}
	if cfg.Generate.HeaderNote != "maintained by the build team" {
		t.Errorf("HeaderNote = %q", cfg.Generate.HeaderNote)
	}
}

func TestLoadWithOptions_PartialFileKeepsDefaults(t *testing.T) {
	cfgDir := t.TempDir()
	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, cfgPath, []byte("ui: verbose: true\n"), 0o644)

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: cfgDir,
	})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if !cfg.UI.Verbose {
		t.Error("Verbose = false, want true from file")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %s, want default auto", cfg.UI.ColorScheme)
	}
	if cfg.Generate.Suffix != DefaultOutputSuffix {
		t.Errorf("Suffix = %q, want default %q", cfg.Generate.Suffix, DefaultOutputSuffix)
	}
}

func TestLoadWithOptions_ExplicitFileNotFound(t *testing.T) {
	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue"),
	})
	if err == nil {
		t.Fatal("loadWithOptions() = nil error for missing explicit config file")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error %T is not an ActionableError", err)
	}
	if !actionable.HasSuggestions() {
		t.Error("expected suggestions on the not-found error")
	}
}

func TestLoadWithOptions_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "unknown color scheme",
			content:  `ui: color_scheme: "neon"` + "\n",
			contains: "color_scheme",
		},
		{
			name:     "suffix without go extension",
			content:  `generate: suffix: "_args.txt"` + "\n",
			contains: "suffix",
		},
		{
			name:     "unknown top-level field",
			content:  "frobnicate: true\n",
			contains: "frobnicate",
		},
		{
			name:     "cue syntax error",
			content:  "ui: {\n",
			contains: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgDir := t.TempDir()
			cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
			testutil.MustWriteFile(t, cfgPath, []byte(tt.content), 0o644)

			_, _, err := loadWithOptions(context.Background(), LoadOptions{
				ConfigDirPath: cfgDir,
			})
			if err == nil {
				t.Fatal("loadWithOptions() = nil error for invalid config")
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should mention %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestLoadWithOptions_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("loadWithOptions() = nil error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want wrapped context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	want := &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeLight,
			Verbose:     true,
		},
		Generate: GenerateConfig{
			Suffix:     "_cli.go",
			HeaderNote: "regenerate with make gen",
		},
	}

	cfgDir := t.TempDir()
	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, cfgPath, []byte(GenerateCUE(want)), 0o644)

	got, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: cfgDir,
	})
	if err != nil {
		t.Fatalf("loadWithOptions() rejected generated CUE: %v", err)
	}

	if *got != *want {
		t.Errorf("round-tripped config = %+v, want %+v", got, want)
	}
}

func TestGenerateCUE_OmitsEmptyHeaderNote(t *testing.T) {
	out := GenerateCUE(DefaultConfig())

	if strings.Contains(out, "header_note") {
		t.Error("GenerateCUE() should omit empty header_note")
	}
	if !strings.Contains(out, `color_scheme: "auto"`) {
		t.Error("GenerateCUE() should render the default color scheme")
	}
	if !strings.Contains(out, `suffix: "_usagegen.go"`) {
		t.Error("GenerateCUE() should render the default suffix")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Cleanup(Reset)

	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}

	cfgPath := filepath.Join(tmpDir, ConfigFileName+"."+ConfigFileExt)
	if !fileExists(cfgPath) {
		t.Fatalf("CreateDefaultConfig() did not write %s", cfgPath)
	}

	// A second call must keep the existing file untouched.
	testutil.MustWriteFile(t, cfgPath, []byte("ui: verbose: true\n"), 0o644)
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second call returned error: %v", err)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if string(data) != "ui: verbose: true\n" {
		t.Error("CreateDefaultConfig() overwrote an existing config file")
	}
}

func TestSave(t *testing.T) {
	t.Cleanup(Reset)

	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)

	cfg := DefaultConfig()
	cfg.UI.Verbose = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, ConfigFileName+"."+ConfigFileExt))
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), "verbose: true") {
		t.Errorf("saved config missing verbose override:\n%s", data)
	}
}

func TestGlobalLoad_Caching(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	cfgDir := t.TempDir()
	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, cfgPath, []byte("ui: verbose: true\n"), 0o644)
	SetConfigFilePathOverride(cfgPath)

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !first.UI.Verbose {
		t.Error("Load() did not pick up the override file")
	}

	// Changing the file after the first Load must not change the cached value.
	testutil.MustWriteFile(t, cfgPath, []byte("ui: verbose: false\n"), 0o644)
	second, err := Load()
	if err != nil {
		t.Fatalf("Load() second call returned error: %v", err)
	}
	if first != second {
		t.Error("Load() should return the cached *Config on subsequent calls")
	}
}

func TestGlobalLoad_ErrorNotCached(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	missing := filepath.Join(t.TempDir(), "missing.cue")
	SetConfigFilePathOverride(missing)

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error for missing override file")
	}

	// After writing the file, a retry must succeed.
	testutil.MustWriteFile(t, missing, []byte("ui: verbose: true\n"), 0o644)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() retry returned error: %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("Load() retry did not read the new file")
	}
}
