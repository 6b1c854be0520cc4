package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/spf13/viper"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	setupHome(t)
	Load()

	got := Options()
	if got.TailwindVersion != options.DefaultTailwindVersion {
		t.Errorf("TailwindVersion = %q, want %q", got.TailwindVersion, options.DefaultTailwindVersion)
	}
	if got.PackageManager != options.DefaultPackageManager {
		t.Errorf("PackageManager = %q, want %q", got.PackageManager, options.DefaultPackageManager)
	}
	if got.SkipInstall {
		t.Error("SkipInstall should default to false")
	}
}

func TestSet_PersistsAndReloads(t *testing.T) {
	home := setupHome(t)
	Load()

	if err := Set(KeyPackageManager, "pnpm"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Set(KeySkipInstall, "true"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".ngtw", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	Load()
	got := Options()
	if got.PackageManager != "pnpm" {
		t.Errorf("PackageManager = %q, want pnpm", got.PackageManager)
	}
	if !got.SkipInstall {
		t.Error("SkipInstall = false, want true")
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupHome(t)
	Load()

	if err := Set("mirror_url", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	setupHome(t)
	t.Setenv("NGTW_TAILWIND_VERSION", "^1.9.0")
	Load()

	if got := Get(KeyTailwindVersion); got != "^1.9.0" {
		t.Errorf("Get() = %q, want ^1.9.0", got)
	}
}
