package worksheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/zitie/dsl"
	"github.com/ByLCY/zitie/layout"
	"github.com/ByLCY/zitie/renderer"
)

// FromScript builds a Request from a parsed .zitie script. Unset keys keep
// the values from base; the worksheet name becomes the title unless the
// meta section sets one.
func FromScript(s *dsl.Script, base Request) (Request, error) {
	req := base
	if s == nil {
		return req, fmt.Errorf("脚本为空")
	}
	if s.Name != "" {
		req.Meta.Title = string(s.Name)
	}
	for _, sec := range s.Sections {
		var err error
		switch {
		case sec.Meta != nil:
			applyMeta(&req.Meta, sec.Meta)
		case sec.Page != nil:
			err = applyPage(&req.Page, sec.Page)
		case sec.Cell != nil:
			err = applyCell(&req.Cell, sec.Cell)
		case sec.Style != nil:
			err = applyStyle(&req.Style, sec.Style)
		}
		if err != nil {
			return req, fmt.Errorf("%s 段（第 %d 行）: %w", sec.Kind(), sec.Pos.Line, err)
		}
	}
	if text := s.Text(); text != "" {
		req.Text = text
	}
	return req, nil
}

func applyMeta(m *renderer.Meta, b *dsl.Block) {
	if v := b.Lookup("title"); v != nil {
		m.Title = v.Text()
	}
	if v := b.Lookup("author"); v != nil {
		m.Author = v.Text()
	}
	if v := b.Lookup("subject"); v != nil {
		m.Subject = v.Text()
	}
	if v := b.Lookup("keywords"); v != nil {
		m.Keywords = v.Strings()
	}
}

// applyPage 解析 `page <size> [landscape|portrait] [padding <len>]`。
func applyPage(p *layout.PageGeometry, spec *dsl.PageSpec) error {
	landscape := false
	padding := p.Padding
	for i := 0; i < len(spec.Params); i++ {
		switch param := spec.Params[i]; param {
		case "landscape", "横向":
			landscape = true
		case "portrait", "纵向":
			landscape = false
		case "padding":
			if i+1 >= len(spec.Params) {
				return fmt.Errorf("padding 缺少长度")
			}
			i++
			l, err := layout.ParseLength(spec.Params[i])
			if err != nil {
				return err
			}
			padding = l
		default:
			return fmt.Errorf("未知的页面参数 %q", param)
		}
	}
	geo, err := layout.PagePreset(spec.Size, landscape)
	if err != nil {
		return err
	}
	geo.Padding = padding
	*p = geo
	return nil
}

func applyCell(c *layout.CellConfig, b *dsl.Block) error {
	for _, a := range b.Assignments {
		switch a.Key {
		case "size", "margin":
			l, err := layout.ParseLength(a.Value.Text())
			if err != nil {
				return fmt.Errorf("%s: %w", a.Key, err)
			}
			if a.Key == "size" {
				c.Size = l
			} else {
				c.Margin = l
			}
		case "guides":
			set, ok := layout.GuidePreset(a.Value.Text())
			if !ok {
				return fmt.Errorf("未知的格子类型 %q", a.Value.Text())
			}
			c.Guides = set
		default:
			return fmt.Errorf("未知的格子属性 %q", a.Key)
		}
	}
	return nil
}

func applyStyle(st *renderer.Style, b *dsl.Block) error {
	for _, a := range b.Assignments {
		raw := a.Value.Text()
		var err error
		switch a.Key {
		case "border":
			st.BorderColor, err = renderer.ParseColor(raw)
		case "guide":
			st.GuideColor, err = renderer.ParseColor(raw)
		case "glyph":
			st.GlyphColor, err = renderer.ParseColor(raw)
		case "border-width":
			st.BorderWidth, err = layout.ParseLength(raw)
		case "guide-width":
			st.GuideWidth, err = layout.ParseLength(raw)
		case "guide-dash":
			st.GuideDash, err = layout.ParseLength(raw)
		case "glyph-size":
			st.GlyphSize, err = layout.ParseLength(raw)
		case "font":
			st.Font = raw
		case "hide-glyphs":
			st.HideGlyphs, err = strconv.ParseBool(strings.ToLower(raw))
		default:
			err = fmt.Errorf("未知的样式属性")
		}
		if err != nil {
			return fmt.Errorf("%s: %w", a.Key, err)
		}
	}
	return nil
}
