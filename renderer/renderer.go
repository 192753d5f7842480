package renderer

import (
	"errors"
	"fmt"

	"github.com/ByLCY/zitie/layout"
)

// Renderer 将字帖布局输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误；失败时返回 *RenderError。
type Renderer interface {
	Render(ws *layout.WorksheetLayout, meta Meta) ([]byte, error)
}

// Meta 保存 PDF 元信息。
type Meta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// ErrNoPages 表示布局结果没有任何页面。
var ErrNoPages = errors.New("缺少可渲染的页面")

// RenderError 描述渲染阶段的失败。Page 为出错页序号，文档级错误为 -1。
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("渲染失败: %v", e.Err)
	}
	return fmt.Sprintf("渲染第 %d 页失败: %v", e.Page+1, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
