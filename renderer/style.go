package renderer

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ByLCY/zitie/layout"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ParseColor 解析 #rgb 或 #rrggbb 形式的颜色，# 可省略。
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(strings.ToLower(v))
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	r, g, b := c.RGB255()
	return Color{R: int(r), G: int(g), B: int(b)}, nil
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Style 控制格子、辅助线与字的外观。长度在绘制时换算为毫米。
type Style struct {
	BorderColor Color         `json:"borderColor"`
	BorderWidth layout.Length `json:"borderWidth"`
	GuideColor  Color         `json:"guideColor"`
	GuideWidth  layout.Length `json:"guideWidth"`
	GuideDash   layout.Length `json:"guideDash"` // 虚线段长，<=0 时绘制实线
	GlyphColor  Color         `json:"glyphColor"`
	GlyphSize   layout.Length `json:"glyphSize"`
	// Font 为字体来源，见 fonts.Parse；为空时依次尝试常见的繁体中文系统字体。
	Font string `json:"font"`
	// HideGlyphs 为 true 时只绘制空白格子。
	HideGlyphs bool `json:"hideGlyphs"`
}

// DefaultStyle 返回 1px #ccc 实线边框、1px #ddd 虚线辅助线、24px #999 的字。
func DefaultStyle() Style {
	return Style{
		BorderColor: Color{R: 0xcc, G: 0xcc, B: 0xcc},
		BorderWidth: layout.PX(1),
		GuideColor:  Color{R: 0xdd, G: 0xdd, B: 0xdd},
		GuideWidth:  layout.PX(1),
		GuideDash:   layout.PX(3),
		GlyphColor:  Color{R: 0x99, G: 0x99, B: 0x99},
		GlyphSize:   layout.PX(24),
	}
}
