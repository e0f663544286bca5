package note

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// StripMarkup projects markup to its visible plain text. Markdown
// syntax is dropped, inline and block HTML tags are dropped entirely,
// and fenced code keeps its source text.
func StripMarkup(markup string) string {
	if markup == "" {
		return ""
	}
	src := []byte(markup)
	doc := markdown.Parser().Parse(gmtext.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindRawHTML, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(src))
			}
			return ast.WalkSkipChildren, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// Stats counts the characters and words of a plain-text projection.
func Stats(plain string) (chars, words int) {
	return utf8.RuneCountInString(plain), len(strings.Fields(plain))
}

// ReadingMinutes estimates reading time at 200 words per minute. Any
// non-empty text reads as at least one minute.
func ReadingMinutes(words int) int {
	if words == 0 {
		return 0
	}
	return (words + 199) / 200
}
