package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/zitie/fonts"
	"github.com/ByLCY/zitie/layout"
	"github.com/ByLCY/zitie/renderer"
)

// Renderer draws worksheet layouts via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir string
	style   renderer.Style

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string // 相对字体路径的基准目录
	Style   renderer.Style
}

// NewRenderer creates a renderer with the default style.
func NewRenderer(baseDir string) *Renderer {
	return NewRendererWithOptions(Options{BaseDir: baseDir, Style: renderer.DefaultStyle()})
}

// NewRendererWithOptions creates a renderer with an explicit style.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{baseDir: opts.BaseDir, style: opts.Style}
}

// Render renders the worksheet into a PDF byte slice. 所有坐标均为毫米，
// 原点在页面左上角。
func (r *Renderer) Render(ws *layout.WorksheetLayout, meta renderer.Meta) ([]byte, error) {
	if ws == nil || len(ws.Pages) == 0 {
		return nil, &renderer.RenderError{Page: -1, Err: renderer.ErrNoPages}
	}

	var face *canvas.FontFace
	if !r.style.HideGlyphs {
		family, err := r.fontFamily()
		if err != nil {
			return nil, &renderer.RenderError{Page: -1, Err: err}
		}
		face = family.Face(r.style.GlyphSize.ToPT(), colorFromStyle(r.style.GlyphColor), canvas.FontRegular, canvas.FontNormal)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, ws.Page.Width, ws.Page.Height, nil)
	applyMeta(writer, meta)
	for i, page := range ws.Pages {
		if i > 0 {
			writer.NewPage(ws.Page.Width, ws.Page.Height)
		}
		c := canvas.New(ws.Page.Width, ws.Page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page, face); err != nil {
			return nil, &renderer.RenderError{Page: i, Err: err}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, &renderer.RenderError{Page: -1, Err: fmt.Errorf("写入 PDF 失败: %w", err)}
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta renderer.Meta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawPage 依次绘制边框、辅助线与字，后画的覆盖先画的。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.PageLayout, face *canvas.FontFace) error {
	for _, cell := range page.Cells {
		r.drawBorder(ctx, cell)
		r.drawGuides(ctx, cell.Guides)
		if face != nil {
			if err := drawGlyph(ctx, cell, face); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) drawBorder(ctx *canvas.Context, cell layout.CellPlacement) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(colorFromStyle(r.style.BorderColor))
	ctx.SetStrokeWidth(r.style.BorderWidth.ToMM())
	ctx.SetDashes(0)
	ctx.DrawPath(cell.X, cell.Y, canvas.Rectangle(cell.Size, cell.Size))
}

// drawGuides 以虚线绘制辅助线（毫米单位）。
func (r *Renderer) drawGuides(ctx *canvas.Context, guides []layout.GuideLine) {
	ctx.SetStrokeColor(colorFromStyle(r.style.GuideColor))
	ctx.SetStrokeWidth(r.style.GuideWidth.ToMM())
	if dash := r.style.GuideDash.ToMM(); dash > 0 {
		ctx.SetDashes(0, dash, dash)
	} else {
		ctx.SetDashes(0)
	}
	for _, ln := range guides {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
	ctx.SetDashes(0)
}

// drawGlyph 将字水平、垂直居中于格子内。
func drawGlyph(ctx *canvas.Context, cell layout.CellPlacement, face *canvas.FontFace) error {
	if cell.Unit.Value == "" {
		return errors.New("格子缺少字")
	}
	line := canvas.NewTextLine(face, cell.Unit.Value, canvas.Center)
	cx, baseline := glyphOrigin(cell, face.Metrics())
	ctx.DrawText(cx, baseline, line)
	return nil
}

// glyphOrigin 返回水平居中文字行的锚点：x 为格子中线，y 为基线，
// 使 [基线-Ascent, 基线+Descent] 的中点落在格子中心（y 轴向下）。
func glyphOrigin(cell layout.CellPlacement, m canvas.FontMetrics) (x, baseline float64) {
	return cell.X + cell.Size/2, cell.Y + cell.Size/2 + (m.Ascent-m.Descent)/2
}

// fontFamily 按 Style.Font 加载字体，未指定时依次尝试常见系统字体。
func (r *Renderer) fontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}

	family := canvas.NewFontFamily("zitie")
	if src, ok := fonts.Parse(r.style.Font); ok {
		if err := loadSource(family, src, r.baseDir); err != nil {
			return nil, err
		}
		r.family = family
		return family, nil
	}
	var errs []error
	for _, name := range fonts.DefaultSystemFonts {
		err := family.LoadSystemFont(name, canvas.FontRegular)
		if err == nil {
			r.family = family
			return family, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("未找到可用的中文字体，请通过 font 指定: %w", errors.Join(errs...))
}

func loadSource(family *canvas.FontFamily, src fonts.Source, baseDir string) error {
	switch src.Kind {
	case fonts.KindSystem:
		if err := family.LoadSystemFont(src.Name, canvas.FontRegular); err != nil {
			return fmt.Errorf("加载系统字体 %s 失败: %w", src.Name, err)
		}
		return nil
	default:
		data, err := src.Read(baseDir)
		if err != nil {
			return err
		}
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return fmt.Errorf("解析字体 %s 失败: %w", src, err)
		}
		return nil
	}
}

func colorFromStyle(c renderer.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
