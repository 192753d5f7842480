package layout

import (
	"math"

	"github.com/ByLCY/zitie/glyph"
)

// floorEps absorbs rounding left over from px→mm conversion so that a
// content width of exactly N pitches still yields N cells.
const floorEps = 1e-9

// Layout 将字序列按格子尺寸排入页面：先行后列，一页排满再开新页。
// 空序列返回零页且不报错；配置无效时返回 *ConfigurationError 且不返回部分结果。
func Layout(units []glyph.Unit, cell CellConfig, page PageGeometry) (*WorksheetLayout, error) {
	rc, rp, err := resolve(cell, page)
	if err != nil {
		return nil, err
	}
	perRow, rows := capacity(rc, rp)
	result := &WorksheetLayout{
		Page:        rp,
		Cell:        rc,
		CellsPerRow: perRow,
		RowsPerPage: rows,
		Pages:       []PageLayout{},
	}
	if len(units) == 0 {
		return result, nil
	}

	perPage := perRow * rows
	pitch := rc.Pitch()
	var current *PageLayout
	for i, u := range units {
		pageIdx := i / perPage
		local := i % perPage
		if current == nil || current.Index != pageIdx {
			result.Pages = append(result.Pages, PageLayout{
				Index: pageIdx,
				Cells: make([]CellPlacement, 0, min(perPage, len(units)-i)),
			})
			current = &result.Pages[len(result.Pages)-1]
		}
		row := local / perRow
		col := local % perRow
		x := float64(col)*pitch + rp.Padding
		y := float64(row)*pitch + rp.Padding
		current.Cells = append(current.Cells, CellPlacement{
			Unit:   u,
			X:      x,
			Y:      y,
			Size:   rc.Size,
			Row:    row,
			Column: col,
			Guides: guideLines(x, y, rc.Size, rc.Guides),
		})
	}
	return result, nil
}

// Capacity 返回给定配置下每行格数与每页行数，便于界面预估。
func Capacity(cell CellConfig, page PageGeometry) (cellsPerRow, rowsPerPage int, err error) {
	rc, rp, err := resolve(cell, page)
	if err != nil {
		return 0, 0, err
	}
	cellsPerRow, rowsPerPage = capacity(rc, rp)
	return cellsPerRow, rowsPerPage, nil
}

func capacity(c ResolvedCell, p ResolvedPage) (int, int) {
	pitch := c.Pitch()
	perRow := int(math.Floor(p.ContentWidth()/pitch + floorEps))
	rows := int(math.Floor(p.ContentHeight()/pitch + floorEps))
	return max(perRow, 1), max(rows, 1)
}

// resolve 校验配置并统一换算为毫米。
func resolve(cell CellConfig, page PageGeometry) (ResolvedCell, ResolvedPage, error) {
	if !cell.Size.IsFinite() || cell.Size.Value <= 0 {
		return ResolvedCell{}, ResolvedPage{}, configErr("cell.size", cell.Size, "格子尺寸必须为正数")
	}
	size := cell.Size.ToMM()
	if size < MinCellSize.ToMM()-floorEps || size > MaxCellSize.ToMM()+floorEps {
		return ResolvedCell{}, ResolvedPage{}, configErr("cell.size", cell.Size, "格子尺寸超出范围 [%s, %s]", MinCellSize, MaxCellSize)
	}
	if !cell.Margin.IsFinite() || cell.Margin.Value < 0 {
		return ResolvedCell{}, ResolvedPage{}, configErr("cell.margin", cell.Margin, "外边距不能为负数")
	}
	guides := cell.Guides
	if guides == nil {
		guides = GuidesMi
	}
	for _, g := range guides {
		if !knownGuide(g) {
			return ResolvedCell{}, ResolvedPage{}, configErr("cell.guides", Length{}, "未知的辅助线 %q", g)
		}
	}

	for _, f := range []struct {
		name string
		v    Length
	}{{"page.width", page.Width}, {"page.height", page.Height}} {
		if !f.v.IsFinite() || f.v.Value <= 0 {
			return ResolvedCell{}, ResolvedPage{}, configErr(f.name, f.v, "纸张尺寸必须为正数")
		}
	}
	if !page.Padding.IsFinite() || page.Padding.Value < 0 {
		return ResolvedCell{}, ResolvedPage{}, configErr("page.padding", page.Padding, "留白不能为负数")
	}

	rp := ResolvedPage{Width: page.Width.ToMM(), Height: page.Height.ToMM(), Padding: page.Padding.ToMM()}
	if rp.ContentWidth() <= 0 {
		return ResolvedCell{}, ResolvedPage{}, configErr("page.padding", page.Padding, "留白超过纸张宽度")
	}
	if rp.ContentHeight() <= 0 {
		return ResolvedCell{}, ResolvedPage{}, configErr("page.padding", page.Padding, "留白超过纸张高度")
	}
	// 每行/每页至少排一格，因此内容区必须放得下一个格子（外边距可溢出）。
	if size > rp.ContentWidth()+floorEps {
		return ResolvedCell{}, ResolvedPage{}, configErr("page.width", page.Width, "内容区宽度放不下一个格子")
	}
	if size > rp.ContentHeight()+floorEps {
		return ResolvedCell{}, ResolvedPage{}, configErr("page.height", page.Height, "内容区高度放不下一个格子")
	}
	rc := ResolvedCell{
		Size:   size,
		Margin: cell.Margin.ToMM(),
		Guides: append(GuideSet(nil), guides...),
	}
	return rc, rp, nil
}

func knownGuide(g GuideKind) bool {
	switch g {
	case GuideHorizontalMid, GuideVerticalMid, GuideTop, GuideLeft, GuideDiagonal, GuideAntiDiagonal:
		return true
	}
	return false
}

// guideLines 计算左上角位于 (x, y)、边长为 s 的格子内的辅助线。
func guideLines(x, y, s float64, set GuideSet) []GuideLine {
	lines := make([]GuideLine, 0, len(set))
	for _, kind := range set {
		ln := GuideLine{Kind: kind}
		switch kind {
		case GuideHorizontalMid:
			ln.X1, ln.Y1, ln.X2, ln.Y2 = x, y+s/2, x+s, y+s/2
		case GuideVerticalMid:
			ln.X1, ln.Y1, ln.X2, ln.Y2 = x+s/2, y, x+s/2, y+s
		case GuideTop:
			ln.X1, ln.Y1, ln.X2, ln.Y2 = x, y, x+s, y
		case GuideLeft:
			ln.X1, ln.Y1, ln.X2, ln.Y2 = x, y, x, y+s
		case GuideDiagonal:
			ln.X1, ln.Y1, ln.X2, ln.Y2 = x, y+s, x+s, y
		case GuideAntiDiagonal:
			ln.X1, ln.Y1, ln.X2, ln.Y2 = x, y, x+s, y+s
		}
		lines = append(lines, ln)
	}
	return lines
}
