package services

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders with glamour, picking a style for the terminal
// background.
type GlamourRenderer struct{}

func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

func (GlamourRenderer) Render(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// RenderMarkdown renders content, clamping silly widths.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if width <= 20 {
		width = 80
	}
	return renderer.Render(content, width)
}
