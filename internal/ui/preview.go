package ui

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/quick"
	termimg "github.com/blacktop/go-termimg"
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a rich note body for the read-only preview
// pane. On any renderer error the raw markup is shown instead.
func RenderMarkdown(src string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return out
}

// RenderCode syntax-highlights a code note body. Unknown languages
// fall back to chroma's analysis; on error the source is shown plain.
func RenderCode(src, lang string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, lang, "terminal16m", "monokai"); err != nil {
		return src
	}
	return buf.String()
}

// RenderImage renders an image attachment inline using whatever
// graphics protocol the terminal supports.
func RenderImage(path string) (string, error) {
	img, err := termimg.Open(path)
	if err != nil {
		return "", err
	}
	return img.Render()
}
