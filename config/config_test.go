package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"

	"github.com/ByLCY/zitie/layout"
	"github.com/ByLCY/zitie/renderer"
	"github.com/ByLCY/zitie/worksheet"
)

// unsetEnv clears key for the duration of the test and restores it after.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaultsMatchDefaultRequest(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Out != DefaultOutput || cfg.Page != "A4" || cfg.Guides != "mi" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	req, err := cfg.Request()
	if err != nil {
		t.Fatalf("Request error: %v", err)
	}
	want := worksheet.DefaultRequest()
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("request = %+v\nwant %+v", req, want)
	}
}

func TestLoadFileEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	file := filepath.Join(dir, "zitie.yaml")
	body := "cell-size: 100px\nguides: tian\npage: A5\nlandscape: true\nglyph-color: \"#333\"\n"
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ZITIE_CELL_SIZE", "60px")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.CellSize != "60px" {
		t.Fatalf("env should override file, got %q", cfg.CellSize)
	}
	req, err := cfg.Request()
	if err != nil {
		t.Fatal(err)
	}
	if req.Cell.Size != layout.PX(60) {
		t.Fatalf("cell size = %v", req.Cell.Size)
	}
	if !reflect.DeepEqual(req.Cell.Guides, layout.GuidesTian) {
		t.Fatalf("guides = %v", req.Cell.Guides)
	}
	if req.Page.Width != layout.MM(210) || req.Page.Height != layout.MM(148) {
		t.Fatalf("page = %+v", req.Page)
	}
	if req.Style.GlyphColor != (renderer.Color{R: 0x33, G: 0x33, B: 0x33}) {
		t.Fatalf("glyph color = %+v", req.Style.GlyphColor)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	file := filepath.Join(t.TempDir(), "practice.toml")
	if err := os.WriteFile(file, []byte("padding = \"10mm\"\nhide-glyphs = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(viper.New(), file)
	if err != nil {
		t.Fatal(err)
	}
	req, err := cfg.Request()
	if err != nil {
		t.Fatal(err)
	}
	if req.Page.Padding != layout.MM(10) || !req.Style.HideGlyphs {
		t.Fatalf("unexpected request: %+v", req)
	}

	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing explicit file should fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	unsetEnv(t, "ZITIE_GUIDES")
	t.Setenv("ZITIE_PAGE", "B5")
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("ZITIE_GUIDES=tian\nZITIE_PAGE=A3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(filepath.Join(dir, "absent.env"), envFile); err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	t.Chdir(dir)
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Guides != "tian" {
		t.Fatalf(".env value not applied: %q", cfg.Guides)
	}
	if cfg.Page != "B5" {
		t.Fatalf(".env must not override the environment, got %q", cfg.Page)
	}
}

func TestRequestErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load(viper.New(), "")
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]func(*Config){
		"page":         func(c *Config) { c.Page = "A0" },
		"cell-size":    func(c *Config) { c.CellSize = "big" },
		"guides":       func(c *Config) { c.Guides = "hex" },
		"border-color": func(c *Config) { c.BorderColor = "blue-ish" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			if _, err := cfg.Request(); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestApplyOnlyNamedKeys(t *testing.T) {
	cfg := Config{CellSize: "60px", Guides: "tian", Page: "A5", Landscape: true, Padding: "bad"}
	req := worksheet.DefaultRequest()
	req.Page.Padding = layout.MM(10)
	if err := cfg.Apply(&req, "cell-size", "page"); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if req.Cell.Size != layout.PX(60) {
		t.Fatalf("cell size = %v", req.Cell.Size)
	}
	if !reflect.DeepEqual(req.Cell.Guides, layout.GuidesMi) {
		t.Fatalf("guides were not named and must stay unchanged: %v", req.Cell.Guides)
	}
	if req.Page.Width != layout.MM(210) || req.Page.Height != layout.MM(148) || req.Page.Padding != layout.MM(10) {
		t.Fatalf("page = %+v", req.Page)
	}
	if err := cfg.Apply(&req, "padding"); err == nil {
		t.Fatalf("invalid padding should fail once named")
	}
}
