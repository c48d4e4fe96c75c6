package ui

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// SessionSummary collects the facts shown when a session ends.
type SessionSummary struct {
	Question   string
	Difficulty string
	Peer       string
	Duration   string
	Solved     bool
}

// RenderSessionSummary prints the end-of-session stats table.
func RenderSessionSummary(title string, summary SessionSummary) {
	solved := ErrorStyle.Render("not solved")
	if summary.Solved {
		solved = SuccessStyle.Render("solved")
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"Question", summary.Question},
		{"Difficulty", summary.Difficulty},
		{"Peer", summary.Peer},
		{"Duration", summary.Duration},
		{"Result", solved},
	})

	fmt.Println()
	t.Render()
}
