package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:pt|mm|cm|in|px)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_-]*`},
		{Name: "Symbol", Pattern: `[][(),;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// Script is the root AST node of a .zitie worksheet script.
type Script struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     Word           `parser:"Newline* 'worksheet' @(String | Ident)"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level section inside the worksheet block.
type Section struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Meta  *Block         `parser:"  'meta' @@"`
	Page  *PageSpec      `parser:"| 'page' @@"`
	Cell  *Block         `parser:"| 'cell' @@"`
	Style *Block         `parser:"| 'style' @@"`
	Text  *TextBlock     `parser:"| 'text' @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Page != nil:
		return "page"
	case s.Cell != nil:
		return "cell"
	case s.Style != nil:
		return "style"
	case s.Text != nil:
		return "text"
	default:
		return "unknown"
	}
}

// PageSpec stores the page header tokens, eg: `page A4 landscape padding 20px`.
type PageSpec struct {
	Size   string   `parser:"@Ident"`
	Params []string `parser:"@(Ident | Number)*"`
}

// Block is a braced list of key: value assignments.
type Block struct {
	Assignments []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Lookup returns the last assignment for key, or nil.
func (b *Block) Lookup(key string) *Value {
	if b == nil {
		return nil
	}
	var found *Value
	for _, a := range b.Assignments {
		if a.Key == key {
			found = a.Value
		}
	}
	return found
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Value represents a property value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
	Array  *ArrayValue    `parser:"| @@"`
}

// ArrayValue captures `[ ... ]` lists.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( ( ',' | Newline+ ) Newline* @@ )* )? Newline* ']'"`
}

// Text returns the value as a plain string. Arrays are joined with ", ".
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	case v.Array != nil:
		return strings.Join(v.Strings(), ", ")
	}
	return ""
}

// Strings returns array items as strings; a scalar becomes a one-item slice.
func (v *Value) Strings() []string {
	if v == nil {
		return nil
	}
	if v.Array == nil {
		return []string{v.Text()}
	}
	out := make([]string, 0, len(v.Array.Values))
	for _, item := range v.Array.Values {
		out = append(out, item.Text())
	}
	return out
}

// TextBlock holds the practice text, either inline (`text "..."`) or as a
// braced list of string lines.
type TextBlock struct {
	Lines []StringLiteral `parser:"( @String | '{' Newline* ( @String ( ';' | ',' | Newline )* )* '}' )"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Word is an identifier or a quoted string; quotes are removed on capture.
type Word string

// Capture implements participle.Capture.
func (w *Word) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("word capture requires value")
	}
	raw := values[0]
	if strings.HasPrefix(raw, `"`) {
		val, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = val
	}
	*w = Word(raw)
	return nil
}

// Parse parses a worksheet script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses a worksheet script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}

// ParseFile parses a worksheet script, using name in error positions.
func ParseFile(name string, r io.Reader) (*Script, error) {
	return scriptParser.Parse(name, r)
}

// Text concatenates all text sections, one line per string.
func (s *Script) Text() string {
	if s == nil {
		return ""
	}
	var lines []string
	for _, sec := range s.Sections {
		if sec.Text == nil {
			continue
		}
		for _, ln := range sec.Text.Lines {
			lines = append(lines, string(ln))
		}
	}
	return strings.Join(lines, "\n")
}

// Section returns the first section of the given kind, or nil.
func (s *Script) Section(kind string) *Section {
	if s == nil {
		return nil
	}
	for _, sec := range s.Sections {
		if sec.Kind() == kind {
			return sec
		}
	}
	return nil
}
