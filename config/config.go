// Package config loads worksheet settings from defaults, an optional
// config file, a .env file, ZITIE_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ByLCY/zitie/layout"
	"github.com/ByLCY/zitie/ocr"
	"github.com/ByLCY/zitie/renderer"
	"github.com/ByLCY/zitie/worksheet"
)

// EnvPrefix is prepended to every environment variable, eg ZITIE_CELL_SIZE.
const EnvPrefix = "ZITIE"

// DefaultOutput 为默认的 PDF 输出文件名。
const DefaultOutput = "练字帖.pdf"

// Config mirrors the flat keys accepted in files, env and flags.
type Config struct {
	CellSize    string `mapstructure:"cell-size"`
	CellMargin  string `mapstructure:"cell-margin"`
	Guides      string `mapstructure:"guides"`
	Page        string `mapstructure:"page"`
	Landscape   bool   `mapstructure:"landscape"`
	Padding     string `mapstructure:"padding"`
	Font        string `mapstructure:"font"`
	Lang        string `mapstructure:"lang"`
	HideGlyphs  bool   `mapstructure:"hide-glyphs"`
	BorderColor string `mapstructure:"border-color"`
	GuideColor  string `mapstructure:"guide-color"`
	GlyphColor  string `mapstructure:"glyph-color"`
	GlyphSize   string `mapstructure:"glyph-size"`
	Title       string `mapstructure:"title"`
	Author      string `mapstructure:"author"`
	Out         string `mapstructure:"out"`
	Verbose     bool   `mapstructure:"verbose"`
}

// SetDefaults registers every key with its default so that env lookups
// and Unmarshal see them.
func SetDefaults(v *viper.Viper) {
	style := renderer.DefaultStyle()
	v.SetDefault("cell-size", layout.DefaultCellSize.String())
	v.SetDefault("cell-margin", layout.DefaultMargin.String())
	v.SetDefault("guides", "mi")
	v.SetDefault("page", "A4")
	v.SetDefault("landscape", false)
	v.SetDefault("padding", layout.DefaultPadding.String())
	v.SetDefault("font", "")
	v.SetDefault("lang", ocr.DefaultLanguage)
	v.SetDefault("hide-glyphs", false)
	v.SetDefault("border-color", style.BorderColor.Hex())
	v.SetDefault("guide-color", style.GuideColor.Hex())
	v.SetDefault("glyph-color", style.GlyphColor.Hex())
	v.SetDefault("glyph-size", style.GlyphSize.String())
	v.SetDefault("title", "練字帖")
	v.SetDefault("author", "")
	v.SetDefault("out", DefaultOutput)
	v.SetDefault("verbose", false)
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("读取 %s 失败: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration into v and decodes it. file may be empty, in
// which case zitie.{yaml,toml,json} is looked up in the working directory
// and silently skipped when absent. Flags must be bound to v by the caller
// before Load.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("读取配置文件 %s 失败: %w", file, err)
		}
	} else {
		v.SetConfigName("zitie")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}

// SettingKeys lists the keys that shape a worksheet.Request, in the order
// Apply handles them.
var SettingKeys = []string{
	"lang", "title", "author",
	"page", "landscape", "padding",
	"cell-size", "cell-margin", "guides",
	"border-color", "guide-color", "glyph-color", "glyph-size",
	"font", "hide-glyphs",
}

// Request converts the flat settings into a worksheet.Request with no
// text. Range checks on cell size are left to the layout stage.
func (c Config) Request() (worksheet.Request, error) {
	req := worksheet.DefaultRequest()
	err := c.Apply(&req, SettingKeys...)
	return req, err
}

// Apply copies only the named settings onto req, eg the flags a user set
// explicitly, so they can win over values loaded from a script. Changing
// page or landscape keeps the padding already in req.
func (c Config) Apply(req *worksheet.Request, keys ...string) error {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}

	if set["lang"] && c.Lang != "" {
		req.Language = c.Lang
	}
	if set["title"] && c.Title != "" {
		req.Meta.Title = c.Title
	}
	if set["author"] {
		req.Meta.Author = c.Author
	}

	if set["page"] || set["landscape"] {
		page, err := layout.PagePreset(c.Page, c.Landscape)
		if err != nil {
			return keyErr("page", err)
		}
		page.Padding = req.Page.Padding
		req.Page = page
	}

	lengths := []struct {
		key string
		raw string
		dst *layout.Length
	}{
		{"cell-size", c.CellSize, &req.Cell.Size},
		{"cell-margin", c.CellMargin, &req.Cell.Margin},
		{"padding", c.Padding, &req.Page.Padding},
		{"glyph-size", c.GlyphSize, &req.Style.GlyphSize},
	}
	for _, l := range lengths {
		if !set[l.key] || l.raw == "" {
			continue
		}
		v, err := layout.ParseLength(l.raw)
		if err != nil {
			return keyErr(l.key, err)
		}
		*l.dst = v
	}

	if set["guides"] {
		guides, ok := layout.GuidePreset(c.Guides)
		if !ok {
			return keyErr("guides", fmt.Errorf("未知的格子类型 %q", c.Guides))
		}
		req.Cell.Guides = guides
	}

	colors := []struct {
		key string
		raw string
		dst *renderer.Color
	}{
		{"border-color", c.BorderColor, &req.Style.BorderColor},
		{"guide-color", c.GuideColor, &req.Style.GuideColor},
		{"glyph-color", c.GlyphColor, &req.Style.GlyphColor},
	}
	for _, col := range colors {
		if !set[col.key] || col.raw == "" {
			continue
		}
		v, err := renderer.ParseColor(col.raw)
		if err != nil {
			return keyErr(col.key, err)
		}
		*col.dst = v
	}

	if set["font"] {
		req.Style.Font = c.Font
	}
	if set["hide-glyphs"] {
		req.Style.HideGlyphs = c.HideGlyphs
	}
	return nil
}

func keyErr(key string, err error) error {
	return fmt.Errorf("配置项 %s: %w", key, err)
}
