package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ktauqeer04/mock-interview/internal/question"
)

// RoomInfo holds what the creator needs to share with the other participant.
type RoomInfo struct {
	RoomID   string
	RoomLink string
}

func NewRoomInfo(roomID, roomLink string) *RoomInfo {
	return &RoomInfo{
		RoomID:   roomID,
		RoomLink: roomLink,
	}
}

func (r *RoomInfo) View() string {
	content := fmt.Sprintf("%s Room Created!\n\n%s Room ID:    %s\n%s Room Link:  %s",
		IconSuccess,
		IconCopy, BoldStyle.Foreground(Primary).Render(r.RoomID),
		IconWeb, MutedStyle.Render(r.RoomLink),
	)

	return SuccessBoxStyle.Render(content)
}

// QuestionView renders the assigned problem: statement, starter template and
// the visible example cases.
func QuestionView(q *question.Question) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%s)", q.Title, q.Difficulty)))
	b.WriteString("\n")
	b.WriteString(q.Description)
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("Starter template"))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(q.Template))
	b.WriteString("\n\n")
	b.WriteString(ExampleTableView(q))

	return BoxStyle.Render(b.String())
}

// ExampleTableView renders the visible examples as a table.
func ExampleTableView(q *question.Question) string {
	if len(q.Examples) == 0 {
		return MutedStyle.Render("No examples")
	}

	headers := []string{"#", "Input (" + strings.Join(q.ParamNames, ", ") + ")", "Expected"}

	var rows [][]string
	for i, ex := range q.Examples {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			string(ex.Inputs),
			string(ex.Expected),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row%2 == 0:
				return TableRowStyle
			default:
				return TableRowAltStyle
			}
		})

	return tbl.Render()
}
