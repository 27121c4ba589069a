package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quizhost/buzzkit/internal/ui/styles"
)

const minPanelWidth = 14

// View renders the console: header, one panel per player, the phase
// line, and the help footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	buzzed, judging := m.machine.Buzzed()

	panels := make([]string, len(m.scores))
	for i, ps := range m.scores {
		var b strings.Builder

		lit := i < len(m.lamps) && m.lamps[i]
		spotlight := judging && i == buzzed
		b.WriteString(styles.Lamp(lit, spotlight))
		b.WriteString("\n")
		b.WriteString(m.playerName(i))
		b.WriteString("\n")
		b.WriteString(styles.Score(ps.Score))
		if !ps.Active {
			b.WriteString("\n")
			b.WriteString(styles.Locked())
		}

		width := minPanelWidth
		if avail := m.width/len(m.scores) - 2; avail < width {
			width = max(avail, 4)
		}
		panels[i] = styles.Panel(b.String(), width, spotlight)
	}

	var view strings.Builder
	view.WriteString(styles.Title("buzzkit"))
	if judging {
		view.WriteString(styles.Help(fmt.Sprintf("  round: judging %s", m.playerName(buzzed))))
	}
	view.WriteString("\n\n")
	view.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	view.WriteString("\n")
	view.WriteString(styles.Status(m.status))
	view.WriteString("\n\n")
	view.WriteString(m.help.View(m.keymap))

	return lipgloss.NewStyle().
		Width(m.width).
		MaxHeight(m.height).
		Padding(1, 2).
		Render(view.String())
}
