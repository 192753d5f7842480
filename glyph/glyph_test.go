package glyph

import (
	"reflect"
	"testing"
)

func TestNormalizeDropsWhitespace(t *testing.T) {
	units := Normalize("A B\n C")
	if got := Values(units); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected units: %q", got)
	}
	for i, u := range units {
		if u.Index != i {
			t.Fatalf("unit %d has index %d", i, u.Index)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if units := Normalize(""); len(units) != 0 {
		t.Fatalf("空字符串应得到空序列，实际 %v", units)
	}
	if units := Normalize(" \t\r\n\u3000"); len(units) != 0 {
		t.Fatalf("纯空白应得到空序列，实际 %v", units)
	}
}

func TestNormalizeKeepsPunctuationAndCJK(t *testing.T) {
	got := Values(Normalize("天地，玄黃。\n宇宙!?"))
	want := []string{"天", "地", "，", "玄", "黃", "。", "宇", "宙", "!", "?"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeDropsInvisibleRunes(t *testing.T) {
	got := Values(Normalize("\ufeff永\u200b字\x00"))
	if !reflect.DeepEqual(got, []string{"永", "字"}) {
		t.Fatalf("unexpected units: %q", got)
	}
}

func TestNormalizeKeepsCombiningMarks(t *testing.T) {
	got := Values(Normalize("e\u0301q\u0307"))
	want := []string{"e\u0301", "q\u0307"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeKeepsVariationSequences(t *testing.T) {
	cases := map[string]string{
		"ideographic variation selector": "\u845b\U000E0100",
		"standardized variation":         "\u4e00\ufe00",
		"emoji presentation":             "\u2764\ufe0f",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got := Values(Normalize(in + "\u6c38"))
			if !reflect.DeepEqual(got, []string{in, "\u6c38"}) {
				t.Fatalf("variation sequence split: %q", got)
			}
		})
	}
}

func TestNormalizeKeepsCodePoints(t *testing.T) {
	// U+F900 是兼容汉字，不能被改写成 U+8C48。
	in := "\uf900\u8c48"
	got := Values(Normalize(in))
	if !reflect.DeepEqual(got, []string{"\uf900", "\u8c48"}) {
		t.Fatalf("code points rewritten: %q", got)
	}
	if Join(Normalize(in)) != in {
		t.Fatalf("Join should reproduce the printable input")
	}
}

func TestNormalizeRecordsOffsets(t *testing.T) {
	units := Normalize("  \u6c38 \u5b57")
	if len(units) != 2 {
		t.Fatalf("unexpected units: %+v", units)
	}
	if units[0].Index != 0 || units[0].Offset != 2 {
		t.Fatalf("first unit = %+v", units[0])
	}
	if units[1].Index != 1 || units[1].Offset != 6 {
		t.Fatalf("second unit = %+v", units[1])
	}
}

func TestJoinRoundTrip(t *testing.T) {
	in := "永 字 八 法"
	if got := Join(Normalize(in)); got != "永字八法" {
		t.Fatalf("Join 结果错误: %q", got)
	}
}
