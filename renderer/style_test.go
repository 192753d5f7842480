package renderer

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#ccc", Color{0xcc, 0xcc, 0xcc}},
		{"#DDDDDD", Color{0xdd, 0xdd, 0xdd}},
		{"999999", Color{0x99, 0x99, 0x99}},
		{" #0F62FE ", Color{0x0f, 0x62, 0xfe}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
	if _, err := ParseColor("#zzz"); err == nil {
		t.Fatalf("非法颜色应报错")
	}
	if got := (Color{0xcc, 0xcc, 0xcc}).Hex(); got != "#cccccc" {
		t.Fatalf("Hex() = %s", got)
	}
}

func TestRenderErrorUnwraps(t *testing.T) {
	err := error(&RenderError{Page: -1, Err: ErrNoPages})
	if !errors.Is(err, ErrNoPages) {
		t.Fatalf("RenderError 应能展开为原始错误")
	}
	if (&RenderError{Page: 1, Err: ErrNoPages}).Error() == err.Error() {
		t.Fatalf("页级错误信息应包含页码")
	}
}
