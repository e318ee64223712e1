package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/fastctx/internal/result"
	"github.com/Cyclone1070/fastctx/internal/ui/models"
	"github.com/Cyclone1070/fastctx/internal/ui/services"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, renderer services.MarkdownRenderer) string {
	sections := []string{QueryStyle.Render("Search: " + s.Query)}
	if steps := RenderSteps(s); steps != "" {
		sections = append(sections, steps)
	}
	if s.Result != nil {
		sections = append(sections, "", RenderResult(s.Result, s.Width, renderer))
	} else {
		sections = append(sections, RenderStatus(s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// RenderResult renders the search outcome as markdown, falling back to plain
// text if rendering fails.
func RenderResult(r *result.Result, width int, renderer services.MarkdownRenderer) string {
	out, err := services.RenderMarkdown(result.FormatMarkdown(r), width, renderer)
	if err != nil {
		if r.Err != nil {
			return ErrorStyle.Render(result.FormatText(r))
		}
		return result.FormatText(r)
	}
	return out
}
