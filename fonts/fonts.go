package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind distinguishes where a font is loaded from.
type Kind int

const (
	KindFile   Kind = iota // 字体文件路径
	KindSystem             // 系统已安装字体，按名称查找
)

// Source 描述字体来源："system:Noto Serif CJK TC" 或文件路径。
type Source struct {
	Kind Kind
	Name string // KindSystem 时的字体名
	Path string // KindFile 时的路径
}

// DefaultSystemFonts 为未指定字体时依次尝试的繁体中文字体。
var DefaultSystemFonts = []string{
	"Noto Serif CJK TC",
	"Noto Sans CJK TC",
	"Source Han Serif TC",
	"Source Han Sans TC",
	"PingFang TC",
	"Microsoft JhengHei",
	"AR PL UMing TW",
}

// Parse 解析字体来源字符串，空串返回 false。
func Parse(src string) (Source, bool) {
	s := strings.TrimSpace(src)
	if s == "" {
		return Source{}, false
	}
	if name, ok := strings.CutPrefix(s, "system:"); ok {
		return Source{Kind: KindSystem, Name: strings.TrimSpace(name)}, true
	}
	return Source{Kind: KindFile, Path: s}, true
}

// Read 读取文件字体的字节数据，相对路径基于 baseDir。
func (s Source) Read(baseDir string) ([]byte, error) {
	if s.Kind != KindFile {
		return nil, fmt.Errorf("字体 %s 不是文件来源", s)
	}
	path := s.Path
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", s.Path, err)
	}
	return data, nil
}

func (s Source) String() string {
	if s.Kind == KindSystem {
		return "system:" + s.Name
	}
	return s.Path
}
