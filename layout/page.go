package layout

import (
	"fmt"
	"strings"
)

var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"B5":     {176, 250},
	"LETTER": {215.9, 279.4},
}

// PagePreset 返回预设纸张（单位 mm），landscape 为 true 时交换宽高。
// 留白取 DefaultPadding。
func PagePreset(name string, landscape bool) (PageGeometry, error) {
	base, ok := pagePresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return PageGeometry{}, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	width, height := base[0], base[1]
	if landscape {
		width, height = height, width
	}
	return PageGeometry{Width: MM(width), Height: MM(height), Padding: DefaultPadding}, nil
}
