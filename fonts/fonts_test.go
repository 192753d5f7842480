package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	if _, ok := Parse("  "); ok {
		t.Fatalf("空字符串不应解析成功")
	}
	src, ok := Parse("system: Noto Serif CJK TC")
	if !ok || src.Kind != KindSystem || src.Name != "Noto Serif CJK TC" {
		t.Fatalf("系统字体解析错误: %+v", src)
	}
	src, ok = Parse("fonts/kai.ttf")
	if !ok || src.Kind != KindFile || src.Path != "fonts/kai.ttf" {
		t.Fatalf("文件字体解析错误: %+v", src)
	}
	if src.String() != "fonts/kai.ttf" {
		t.Fatalf("String() = %s", src)
	}
}

func TestReadRelativeToBaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ttf"), []byte("font-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, _ := Parse("a.ttf")
	data, err := src.Read(dir)
	if err != nil {
		t.Fatalf("读取字体失败: %v", err)
	}
	if string(data) != "font-bytes" {
		t.Fatalf("字体内容错误: %q", data)
	}
	if _, err := (Source{Kind: KindSystem, Name: "x"}).Read(dir); err == nil {
		t.Fatalf("系统字体不应支持 Read")
	}
	missing, _ := Parse("missing.ttf")
	if _, err := missing.Read(dir); err == nil {
		t.Fatalf("缺失文件应报错")
	}
}
