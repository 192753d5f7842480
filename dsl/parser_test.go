package dsl_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ByLCY/zitie/dsl"
)

const sampleScript = `
// 千字文开篇
worksheet "練字帖" {
  meta {
    title: "千字文"
    author: "周興嗣"
    keywords: ["書法", "練習"]
  }

  page A4 landscape padding 20px

  cell {
    size: 96px; margin: 4px
    guides: tian
  }

  style {
    border: #ccc
    guide: #dddddd
    glyph: #999
    glyph-size: 28px
    font: "system:Noto Serif CJK TC"
  }

  /* 正文 */
  text {
    "天地玄黃，宇宙洪荒。"
    "日月盈昃，辰宿列張。"
  }
}
`

func TestParseScript(t *testing.T) {
	s, err := dsl.ParseString(sampleScript)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s.Name != "練字帖" {
		t.Fatalf("expected worksheet name 練字帖, got %s", s.Name)
	}
	kinds := []string{}
	for _, sec := range s.Sections {
		kinds = append(kinds, sec.Kind())
	}
	if want := []string{"meta", "page", "cell", "style", "text"}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("sections = %v, want %v", kinds, want)
	}

	meta := s.Section("meta").Meta
	if got := meta.Lookup("title").Text(); got != "千字文" {
		t.Fatalf("title = %q", got)
	}
	if got := meta.Lookup("keywords").Strings(); !reflect.DeepEqual(got, []string{"書法", "練習"}) {
		t.Fatalf("keywords = %q", got)
	}

	page := s.Section("page").Page
	if page.Size != "A4" || !reflect.DeepEqual(page.Params, []string{"landscape", "padding", "20px"}) {
		t.Fatalf("unexpected page spec: %+v", page)
	}

	cell := s.Section("cell").Cell
	if got := cell.Lookup("size").Text(); got != "96px" {
		t.Fatalf("size = %q", got)
	}
	if got := cell.Lookup("margin").Text(); got != "4px" {
		t.Fatalf("margin = %q", got)
	}
	if got := cell.Lookup("guides").Text(); got != "tian" {
		t.Fatalf("guides = %q", got)
	}

	style := s.Section("style").Style
	if v := style.Lookup("border"); v == nil || v.Color == nil || *v.Color != "#ccc" {
		t.Fatalf("border color not parsed as color: %+v", v)
	}
	if got := style.Lookup("glyph-size").Text(); got != "28px" {
		t.Fatalf("glyph-size = %q", got)
	}

	if got := s.Text(); got != "天地玄黃，宇宙洪荒。\n日月盈昃，辰宿列張。" {
		t.Fatalf("text = %q", got)
	}
}

func TestParseInlineTextAndIdentName(t *testing.T) {
	s, err := dsl.Parse(strings.NewReader("worksheet demo {\n  text \"永字八法\"\n  text \"\\u5929\"\n}\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s.Name != "demo" {
		t.Fatalf("name = %s", s.Name)
	}
	if got := s.Text(); got != "永字八法\n天" {
		t.Fatalf("text = %q", got)
	}
}

func TestParseNegativeNumber(t *testing.T) {
	s, err := dsl.ParseString("worksheet x { cell { size: -80 } }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := s.Section("cell").Cell.Lookup("size").Text(); got != "-80" {
		t.Fatalf("size = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"worksheet { }",
		"worksheet x { unknown { } }",
		"worksheet x { cell { size 80 } }",
		"worksheet x { style { border: #cccc } }",
	}
	for _, src := range bad {
		if _, err := dsl.ParseString(src); err == nil {
			t.Fatalf("expected error for %q", src)
		}
	}
}

func TestLookupLastWins(t *testing.T) {
	s, err := dsl.ParseString("worksheet x { cell { size: 60; size: 90 } }")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Section("cell").Cell.Lookup("size").Text(); got != "90" {
		t.Fatalf("size = %q", got)
	}
	if s.Section("cell").Cell.Lookup("margin") != nil {
		t.Fatalf("missing key should be nil")
	}
}
