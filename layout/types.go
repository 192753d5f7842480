package layout

import "github.com/ByLCY/zitie/glyph"

// 该文件定义字帖布局的输入配置与输出结果，供布局计算、渲染与调试 JSON 共用。
// 输出结果中的坐标与尺寸统一为毫米（mm），原点在页面左上角。

// GuideKind 标识格子内的一条辅助线。
type GuideKind string

const (
	GuideHorizontalMid GuideKind = "horizontal-mid" // 横中线
	GuideVerticalMid   GuideKind = "vertical-mid"   // 竖中线
	GuideTop           GuideKind = "top"            // 上边线
	GuideLeft          GuideKind = "left"           // 左边线
	GuideDiagonal      GuideKind = "diagonal"       // 左下到右上（+45°）
	GuideAntiDiagonal  GuideKind = "anti-diagonal"  // 左上到右下（-45°）
)

// GuideSet 是每个格子要绘制的辅助线集合，按绘制顺序排列。
type GuideSet []GuideKind

var (
	// GuidesMi 米字格：两条中线、上边线、左边线与两条对角线。
	GuidesMi = GuideSet{GuideHorizontalMid, GuideVerticalMid, GuideTop, GuideLeft, GuideDiagonal, GuideAntiDiagonal}
	// GuidesTian 田字格：不含对角线。
	GuidesTian = GuideSet{GuideHorizontalMid, GuideVerticalMid, GuideTop, GuideLeft}
)

// GuidePreset 按名称返回辅助线集合，支持 mi/tian（以及中文名）。
func GuidePreset(name string) (GuideSet, bool) {
	switch name {
	case "", "mi", "米", "米字格":
		return GuidesMi, true
	case "tian", "田", "田字格":
		return GuidesTian, true
	default:
		return nil, false
	}
}

// CellConfig 描述格子尺寸与间距。
type CellConfig struct {
	Size   Length   `json:"size"`   // 正方形边长，允许范围 [40px, 120px]
	Margin Length   `json:"margin"` // 每侧外边距，相邻格子间距为 2*Margin
	Guides GuideSet `json:"guides"`
}

// PageGeometry 描述纸张尺寸与内容区四周统一的留白。
type PageGeometry struct {
	Width   Length `json:"width"`
	Height  Length `json:"height"`
	Padding Length `json:"padding"`
}

// Defaults.
var (
	DefaultCellSize = PX(80)
	MinCellSize     = PX(40)
	MaxCellSize     = PX(120)
	DefaultMargin   = PX(5)
	DefaultPadding  = PX(20)
)

// DefaultCellConfig 返回 80px 米字格，外边距 5px。
func DefaultCellConfig() CellConfig {
	return CellConfig{Size: DefaultCellSize, Margin: DefaultMargin, Guides: GuidesMi}
}

// A4 返回竖版 A4 纸张，留白 20px。
func A4() PageGeometry {
	return PageGeometry{Width: MM(210), Height: MM(297), Padding: DefaultPadding}
}

// ResolvedPage 为换算成毫米后的页面几何。
type ResolvedPage struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// ContentWidth 返回去掉左右留白后的内容宽度。
func (p ResolvedPage) ContentWidth() float64 { return p.Width - 2*p.Padding }

// ContentHeight 返回去掉上下留白后的内容高度。
func (p ResolvedPage) ContentHeight() float64 { return p.Height - 2*p.Padding }

// ResolvedCell 为换算成毫米后的格子几何。
type ResolvedCell struct {
	Size   float64  `json:"size"`
	Margin float64  `json:"margin"`
	Guides GuideSet `json:"guides"`
}

// Pitch 是相邻格子左上角之间的距离。
func (c ResolvedCell) Pitch() float64 { return c.Size + 2*c.Margin }

// GuideLine 是一条已定位到页面坐标的辅助线段。
type GuideLine struct {
	Kind GuideKind `json:"kind"`
	X1   float64   `json:"x1"`
	Y1   float64   `json:"y1"`
	X2   float64   `json:"x2"`
	Y2   float64   `json:"y2"`
}

// CellPlacement 记录一个字在页面上的格子位置。
type CellPlacement struct {
	Unit   glyph.Unit  `json:"unit"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Size   float64     `json:"size"`
	Row    int         `json:"row"`
	Column int         `json:"column"`
	Guides []GuideLine `json:"guides"`
}

// PageLayout 为一页内按阅读顺序排列的格子。
type PageLayout struct {
	Index int             `json:"index"`
	Cells []CellPlacement `json:"cells"`
}

// WorksheetLayout 是一次生成请求的完整分页结果。
type WorksheetLayout struct {
	Page        ResolvedPage `json:"page"`
	Cell        ResolvedCell `json:"cell"`
	CellsPerRow int          `json:"cellsPerRow"`
	RowsPerPage int          `json:"rowsPerPage"`
	Pages       []PageLayout `json:"pages"`
}

// Units 按页序、格序拼接所有格子中的字。
func (w *WorksheetLayout) Units() []glyph.Unit {
	if w == nil {
		return nil
	}
	var out []glyph.Unit
	for _, p := range w.Pages {
		for _, c := range p.Cells {
			out = append(out, c.Unit)
		}
	}
	return out
}

// CellCount 返回所有页面上的格子总数。
func (w *WorksheetLayout) CellCount() int {
	if w == nil {
		return 0
	}
	n := 0
	for _, p := range w.Pages {
		n += len(p.Cells)
	}
	return n
}
