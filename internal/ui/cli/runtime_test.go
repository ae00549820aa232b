package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coreapp "littlelemon/internal/core/app"
	"littlelemon/internal/core/config"
)

func TestApplyModeOptions_RejectsListWithUI(t *testing.T) {
	opts := &cliOptions{list: true, ui: true}

	err := applyModeOptions(opts)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cannot be combined") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_FilterFlagsRequireList(t *testing.T) {
	opts := &cliOptions{serve: true, query: "Greek"}

	err := applyModeOptions(opts)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "require --list") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_DefaultsToUI(t *testing.T) {
	opts := &cliOptions{}
	if err := applyModeOptions(opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.ui {
		t.Fatal("expected UI mode when no mode flag is given")
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"--list", "--category", "Starters, Drinks,", "--q", "Greek"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.list || opts.query != "Greek" {
		t.Fatalf("unexpected options: %+v", opts)
	}
	cats := splitCategories(opts.category)
	if len(cats) != 2 || cats[0] != "Starters" || cats[1] != "Drinks" {
		t.Fatalf("unexpected categories: %v", cats)
	}
}

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	cwd := t.TempDir()

	cfg, path, err := loadConfig(defaultConfigPath, cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no watch path for defaults, got %q", path)
	}
	if cfg.DB.Path != "little_lemon.db" {
		t.Fatalf("unexpected default db path %q", cfg.DB.Path)
	}
}

func TestLoadConfig_ExplicitMissingPathFails(t *testing.T) {
	if _, _, err := loadConfig("./missing.toml", t.TempDir()); err == nil {
		t.Fatal("expected error for explicit missing config")
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	cwd := t.TempDir()
	content := "version = 1\n[menu]\nsearch_mode = \"insensitive\"\n"
	if err := os.WriteFile(filepath.Join(cwd, "littlelemon.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := loadConfig(defaultConfigPath, cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(cwd, "littlelemon.toml") {
		t.Fatalf("unexpected config path %q", path)
	}
	if cfg.Menu.SearchMode != "insensitive" {
		t.Fatalf("expected search mode from file, got %q", cfg.Menu.SearchMode)
	}
}

func TestRunListCommand(t *testing.T) {
	cwd := t.TempDir()
	cfg := config.DefaultConfig()
	app, err := coreapp.New(cfg, cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer app.Close(context.Background())

	if _, err := app.Seed(context.Background()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var out bytes.Buffer
	code := runListCommand(context.Background(), app, cliOptions{list: true, category: "Desserts"}, &out)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Lemon Dessert") {
		t.Fatalf("expected dessert in output, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Greek Salad") {
		t.Fatalf("expected starters filtered out, got:\n%s", out.String())
	}
}
