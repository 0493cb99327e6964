package tui

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# todopad

A small local to-do list. Tasks persist to a single storage slot and survive
restarts; a deleted task can be undone for five seconds.

## Keys

| Key | Action |
| --- | ------ |
| a | add a task |
| enter / space | toggle complete |
| x | delete (undo with u for 5s) |
| u | undo last delete |
| j/k, up/down | move cursor |
| t | toggle theme (session only) |
| ? | close this help |
| q | quit |

Hook files (*.js) in the hooks directory may define ` + "`decorateTaskRow(task)`" + `
to override how a row is shown.
`

// renderHelp renders the embedded help markdown for the overlay. Falls back
// to the raw markdown if the renderer cannot be built.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return helpMarkdown
	}
	s, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return s
}
